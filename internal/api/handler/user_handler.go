package handler

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/pkg/response"
	"Mosaic/internal/pkg/util"
	"Mosaic/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBind(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&registerDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	if err := s.userSvc.Register(c.Request.Context(), &registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	if err := c.ShouldBind(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")

	profile, err := s.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var profileDTO dto.UpdateProfileDTO
	if err := c.ShouldBind(&profileDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&profileDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	if err := s.userSvc.UpdateProfile(c.Request.Context(), userID, &profileDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) ChangePassword(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var changePasswordDTO dto.ChangePasswordDTO
	if err := c.ShouldBind(&changePasswordDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&changePasswordDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	if err := s.userSvc.ChangePassword(c.Request.Context(), userID, &changePasswordDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetSettings(c *gin.Context) {
	userID := c.GetUint64("user_id")

	settings, err := s.userSvc.GetSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}

func (s *UserHandler) UpdateSettings(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var settingsDTO dto.SettingsDTO
	if err := c.ShouldBind(&settingsDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userSvc.UpdateSettings(c.Request.Context(), userID, &settingsDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) DeleteAccount(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var deleteDTO dto.DeleteAccountDTO
	if err := c.ShouldBind(&deleteDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userSvc.DeleteAccount(c.Request.Context(), userID, &deleteDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

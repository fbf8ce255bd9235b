package handler

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/pkg/response"
	"Mosaic/internal/pkg/util"
	"Mosaic/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SavedHandler struct {
	savedSvc service.SavedService
}

func NewSavedHandler(savedSvc service.SavedService) *SavedHandler {
	return &SavedHandler{
		savedSvc: savedSvc,
	}
}

func (s *SavedHandler) SaveContent(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.SaveContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	if err := s.savedSvc.SaveContent(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SavedHandler) UnsaveContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	if err := s.savedSvc.UnsaveContent(c.Request.Context(), userID, contentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SavedHandler) MoveSaved(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	var req struct {
		CollectionID *uint64 `json:"collection_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.savedSvc.MoveSaved(c.Request.Context(), userID, contentID, req.CollectionID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SavedHandler) GetSavedContents(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	page.Normalize()

	var collectionID *uint64
	if raw := c.Query("collection_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		collectionID = &id
	}

	saved, err := s.savedSvc.GetSavedContents(c.Request.Context(), userID, collectionID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, saved)
}

func (s *SavedHandler) CreateCollection(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.CollectionCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	collection, err := s.savedSvc.CreateCollection(c.Request.Context(), userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, collection)
}

func (s *SavedHandler) DeleteCollection(c *gin.Context) {
	userID := c.GetUint64("user_id")
	collectionID, ok := parseID(c, "collection_id")
	if !ok {
		return
	}

	if err := s.savedSvc.DeleteCollection(c.Request.Context(), userID, collectionID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SavedHandler) GetCollections(c *gin.Context) {
	userID := c.GetUint64("user_id")

	collections, err := s.savedSvc.GetCollections(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, collections)
}

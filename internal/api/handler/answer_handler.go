package handler

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/pkg/response"
	"Mosaic/internal/pkg/util"
	"Mosaic/internal/service"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answerSvc service.AnswerService
}

func NewAnswerHandler(answerSvc service.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		answerSvc: answerSvc,
	}
}

func (s *AnswerHandler) AddAnswer(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.AnswerCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	answer, err := s.answerSvc.AddAnswer(c.Request.Context(), userID, req.ContentID, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, answer)
}

func (s *AnswerHandler) ListAnswers(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	answers, err := s.answerSvc.ListAnswers(c.Request.Context(), contentID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, answers)
}

func (s *AnswerHandler) VoteOnAnswer(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.AnswerVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	score, err := s.answerSvc.VoteOnAnswer(c.Request.Context(), userID, req.AnswerID, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.VoteResultDTO{Score: score})
}

func (s *AnswerHandler) RevokeAnswerVote(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	if err := s.answerSvc.RevokeAnswerVote(c.Request.Context(), userID, contentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

package handler

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/pkg/response"
	"Mosaic/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteSvc service.VoteService
}

func NewVoteHandler(voteSvc service.VoteService) *VoteHandler {
	return &VoteHandler{
		voteSvc: voteSvc,
	}
}

func (s *VoteHandler) CastVote(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	score, err := s.voteSvc.CastVote(c.Request.Context(), userID, req.ContentID, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.VoteResultDTO{Score: score})
}

func (s *VoteHandler) RevokeVote(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	if err := s.voteSvc.RevokeVote(c.Request.Context(), userID, contentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetVoteState 返回计数与当前用户的投票
func (s *VoteHandler) GetVoteState(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	counts, err := s.voteSvc.GetVoteCounts(c.Request.Context(), contentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	state := &dto.VoteStateDTO{
		UpCount:      counts.Up,
		DownCount:    counts.Down,
		SuperUpCount: counts.SuperUp,
	}

	if userID != 0 {
		kind, err := s.voteSvc.GetVote(c.Request.Context(), userID, contentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		state.ViewerVote = kind
	}

	response.Success(c, state)
}

func (s *VoteHandler) GetAllowance(c *gin.Context) {
	userID := c.GetUint64("user_id")

	status, err := s.voteSvc.GetAllowanceStatus(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, status)
}

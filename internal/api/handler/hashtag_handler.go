package handler

import (
	"Mosaic/internal/pkg/response"
	"Mosaic/internal/service"

	"github.com/gin-gonic/gin"
)

type HashtagHandler struct {
	hashtagSvc service.HashtagService
}

func NewHashtagHandler(hashtagSvc service.HashtagService) *HashtagHandler {
	return &HashtagHandler{
		hashtagSvc: hashtagSvc,
	}
}

func (s *HashtagHandler) Follow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	name := c.Param("name")

	if err := s.hashtagSvc.FollowHashtag(c.Request.Context(), userID, name); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *HashtagHandler) Unfollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	name := c.Param("name")

	if err := s.hashtagSvc.UnfollowHashtag(c.Request.Context(), userID, name); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *HashtagHandler) GetFollowing(c *gin.Context) {
	userID := c.GetUint64("user_id")

	hashtags, err := s.hashtagSvc.GetFollowing(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, hashtags)
}

func (s *HashtagHandler) GetOverview(c *gin.Context) {
	userID := c.GetUint64("user_id")
	name := c.Param("name")

	overview, err := s.hashtagSvc.GetHashtagOverview(c.Request.Context(), userID, name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

func (s *HashtagHandler) GetTrending(c *gin.Context) {
	trending, err := s.hashtagSvc.GetTrending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trending)
}

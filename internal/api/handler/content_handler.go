package handler

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/pkg/response"
	"Mosaic/internal/pkg/util"
	"Mosaic/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentSvc service.ContentService
}

func NewContentHandler(contentSvc service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return id, true
}

func (s *ContentHandler) CreateContent(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.ContentBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	content, err := s.contentSvc.CreateContent(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

func (s *ContentHandler) GetContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	content, err := s.contentSvc.GetContentDetail(c.Request.Context(), userID, contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

func (s *ContentHandler) UpdateContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	var req dto.ContentBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	if err := s.contentSvc.UpdateContent(c.Request.Context(), userID, contentID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ContentHandler) DeleteContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	if err := s.contentSvc.DeleteContent(c.Request.Context(), userID, contentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ContentHandler) GetFeed(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.FeedReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	req.Normalize()
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	feed, err := s.contentSvc.GetFeed(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *ContentHandler) GetMyContents(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	page.Normalize()

	feed, err := s.contentSvc.GetMyContents(c.Request.Context(), userID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *ContentHandler) GetRemixes(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	page.Normalize()

	feed, err := s.contentSvc.GetRemixes(c.Request.Context(), userID, contentID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *ContentHandler) GetTrending(c *gin.Context) {
	userID := c.GetUint64("user_id")

	items, err := s.contentSvc.GetTrending(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

func (s *ContentHandler) GetByHashtag(c *gin.Context) {
	userID := c.GetUint64("user_id")
	tag := c.Param("name")

	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	page.Normalize()

	feed, err := s.contentSvc.GetByHashtag(c.Request.Context(), userID, tag, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *ContentHandler) SearchContents(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.SearchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.contentSvc.SearchContents(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ContentHandler) HideContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	if err := s.contentSvc.HideContent(c.Request.Context(), userID, contentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ContentHandler) UnhideContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	if err := s.contentSvc.UnhideContent(c.Request.Context(), userID, contentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ContentHandler) GetHiddenContents(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	page.Normalize()

	feed, err := s.contentSvc.GetHiddenContents(c.Request.Context(), userID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *ContentHandler) ReportContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID, ok := parseID(c, "content_id")
	if !ok {
		return
	}

	var req dto.ReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.contentSvc.ReportContent(c.Request.Context(), userID, contentID, req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

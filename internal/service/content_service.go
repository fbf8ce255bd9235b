package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/model"
	esPkg "Mosaic/internal/pkg/es"
	"Mosaic/internal/pkg/minio"
	"Mosaic/internal/pkg/util"
	"Mosaic/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

const trendingContentLimit = 20

type ContentService interface {
	CreateContent(ctx context.Context, userID uint64, req *dto.ContentBaseDTO) (*dto.ContentDTO, error)
	GetContentDetail(ctx context.Context, viewerID, contentID uint64) (*dto.ContentDTO, error)
	UpdateContent(ctx context.Context, userID, contentID uint64, req *dto.ContentBaseDTO) error
	DeleteContent(ctx context.Context, userID, contentID uint64) error

	GetFeed(ctx context.Context, viewerID uint64, req *dto.FeedReq) (*dto.ContentFeedDTO, error)
	GetMyContents(ctx context.Context, userID uint64, page, pageSize int) (*dto.ContentFeedDTO, error)
	GetRemixes(ctx context.Context, viewerID, contentID uint64, page, pageSize int) (*dto.ContentFeedDTO, error)
	GetTrending(ctx context.Context, viewerID uint64) ([]*dto.ContentDTO, error)
	GetByHashtag(ctx context.Context, viewerID uint64, tag string, page, pageSize int) (*dto.ContentFeedDTO, error)
	SearchContents(ctx context.Context, viewerID uint64, req *dto.SearchReq) (*dto.SearchResultDTO, error)

	HideContent(ctx context.Context, userID, contentID uint64) error
	UnhideContent(ctx context.Context, userID, contentID uint64) error
	GetHiddenContents(ctx context.Context, userID uint64, page, pageSize int) (*dto.ContentFeedDTO, error)
	ReportContent(ctx context.Context, userID, contentID uint64, reason string) error
}

type contentServiceImpl struct {
	db             *gorm.DB
	contentRepo    repository.ContentRepo
	voteRepo       repository.VoteRepo
	userRepo       repository.UserRepo
	hashtagRepo    repository.HashtagRepo
	savedRepo      repository.SavedRepo
	answerRepo     repository.AnswerRepo
	moderationRepo repository.ModerationRepo
	contentESRepo  esPkg.ContentRepo
	scoreService   ScoreService
	notifier       NotificationService

	now func() time.Time
}

func NewContentService(
	db *gorm.DB,
	contentRepo repository.ContentRepo,
	voteRepo repository.VoteRepo,
	userRepo repository.UserRepo,
	hashtagRepo repository.HashtagRepo,
	savedRepo repository.SavedRepo,
	answerRepo repository.AnswerRepo,
	moderationRepo repository.ModerationRepo,
	contentESRepo esPkg.ContentRepo,
	scoreService ScoreService,
	notifier NotificationService,
) ContentService {
	return &contentServiceImpl{
		db:             db,
		contentRepo:    contentRepo,
		voteRepo:       voteRepo,
		userRepo:       userRepo,
		hashtagRepo:    hashtagRepo,
		savedRepo:      savedRepo,
		answerRepo:     answerRepo,
		moderationRepo: moderationRepo,
		contentESRepo:  contentESRepo,
		scoreService:   scoreService,
		notifier:       notifier,
		now:            time.Now,
	}
}

func (s *contentServiceImpl) CreateContent(ctx context.Context, userID uint64, req *dto.ContentBaseDTO) (*dto.ContentDTO, error) {
	contentType := req.ContentType
	if contentType == "" {
		contentType = model.ContentTypeText
	}

	// 二创内容先校验原作存在，类型沿用原作
	var original *model.Content
	if req.RemixOf != nil {
		var err error
		original, err = s.contentRepo.GetContent(ctx, *req.RemixOf)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrContentNotFound
			}
			return nil, err
		}
		if original.ContentType == model.ContentTypeQA {
			return nil, ErrRemixQA
		}
		if original.UserID == userID {
			return nil, ErrSelfRemix
		}
		contentType = original.ContentType
	}

	if contentType == model.ContentTypeQA && utf8.RuneCountInString(req.Description) > 500 {
		return nil, ErrParamInvalid
	}

	hashtags := util.ExtractTags(req.Description)
	if req.RemixOf == nil && contentType != model.ContentTypeQA && len(hashtags) == 0 {
		return nil, ErrHashtagRequired
	}

	content := &model.Content{
		UserID:        userID,
		ContentType:   contentType,
		Title:         req.Title,
		Description:   req.Description,
		IsNSFW:        req.IsNSFW,
		RemixedFromID: req.RemixOf,
		CreatedAt:     s.now(),
		UpdatedAt:     s.now(),
	}

	media := make([]*model.ContentMedia, 0, len(req.Medias))
	for _, m := range req.Medias {
		media = append(media, &model.ContentMedia{
			URL:       m.MediaURL,
			ThumbURL:  m.ThumbURL,
			MimeType:  m.MimeType,
			Position:  m.Position,
			CreatedAt: s.now(),
		})
	}
	// 二创未另传媒体时沿用原作的
	if original != nil && len(media) == 0 {
		for _, m := range original.Media {
			media = append(media, &model.ContentMedia{
				URL:       m.URL,
				ThumbURL:  m.ThumbURL,
				MimeType:  m.MimeType,
				Position:  m.Position,
				CreatedAt: s.now(),
			})
		}
	}

	if err := s.contentRepo.CreateContent(ctx, content, media, hashtags); err != nil {
		return nil, err
	}

	if original != nil {
		if err := s.contentRepo.IncrementRemixCount(ctx, original.ID, 1); err != nil {
			log.WarnContext(ctx, "increment remix count failed", "err", err, "contentID", original.ID)
		}
		if original.UserID != userID {
			if err := s.notifier.NotifyRemix(ctx, original.UserID, userID, content.ID); err != nil {
				log.WarnContext(ctx, "notify remix failed", "err", err, "contentID", content.ID)
			}
		}
	}

	return s.GetContentDetail(ctx, userID, content.ID)
}

// GetContentDetail 详情读取会计入一次浏览，浏览量影响分数所以同步触发重算
func (s *contentServiceImpl) GetContentDetail(ctx context.Context, viewerID, contentID uint64) (*dto.ContentDTO, error) {
	content, err := s.contentRepo.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	if viewerID != content.UserID {
		if err = s.contentRepo.IncrementViewCount(ctx, contentID); err != nil {
			log.WarnContext(ctx, "increment view count failed", "err", err, "contentID", contentID)
		} else {
			content.ViewCount++
			if err = s.scoreService.RecomputeContent(ctx, contentID); err != nil {
				log.WarnContext(ctx, "recompute after view failed", "err", err, "contentID", contentID)
			}
		}
	}

	return s.toContentDTO(ctx, content, viewerID)
}

func (s *contentServiceImpl) UpdateContent(ctx context.Context, userID, contentID uint64, req *dto.ContentBaseDTO) error {
	content, err := s.contentRepo.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}
	if content.UserID != userID {
		return UnauthorizedError
	}

	now := s.now()
	content.Title = req.Title
	content.Description = req.Description
	content.IsNSFW = req.IsNSFW
	content.EditedAt = &now

	media := make([]*model.ContentMedia, 0, len(req.Medias))
	for _, m := range req.Medias {
		media = append(media, &model.ContentMedia{
			ContentID: contentID,
			URL:       m.MediaURL,
			ThumbURL:  m.ThumbURL,
			MimeType:  m.MimeType,
			Position:  m.Position,
			CreatedAt: now,
		})
	}

	return s.contentRepo.UpdateContent(ctx, content, media, util.ExtractTags(req.Description))
}

func (s *contentServiceImpl) DeleteContent(ctx context.Context, userID, contentID uint64) error {
	content, err := s.contentRepo.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}
	if content.UserID != userID {
		return UnauthorizedError
	}

	if content.ContentType == model.ContentTypeQA {
		if err = s.answerRepo.DeleteAnswersByContent(ctx, contentID); err != nil {
			return err
		}
	}

	if err = s.contentRepo.DeleteContent(ctx, contentID); err != nil {
		return err
	}

	if content.RemixedFromID != nil {
		if err = s.contentRepo.IncrementRemixCount(ctx, *content.RemixedFromID, -1); err != nil {
			log.WarnContext(ctx, "decrement remix count failed", "err", err, "contentID", *content.RemixedFromID)
		}
	}

	// 媒体文件异步清理，失败只记日志
	for _, m := range content.Media {
		objectName := minio.ObjectNameFromURL(m.URL)
		if objectName == "" {
			continue
		}
		if err = minio.DeleteFile(ctx, objectName); err != nil {
			log.WarnContext(ctx, "delete media object failed", "err", err, "object", objectName)
		}
	}

	return nil
}

func (s *contentServiceImpl) GetFeed(ctx context.Context, viewerID uint64, req *dto.FeedReq) (*dto.ContentFeedDTO, error) {
	page, pageSize := req.Page, req.PageSize
	sort := req.Sort
	// 浏览量不按人记录，unseen 先按最新返回
	if sort == "unseen" {
		sort = "newest"
	}

	hidden := make(map[uint64]bool)
	showNSFW := false
	if viewerID != 0 {
		hiddenIDs, err := s.moderationRepo.GetHiddenContentIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for _, id := range hiddenIDs {
			hidden[id] = true
		}

		viewer, err := s.userRepo.GetUserByID(ctx, viewerID)
		if err == nil {
			showNSFW = viewer.ShowNSFW
		}
	}

	// 候选多取一页，过滤掉隐藏项后再截断
	fetchLimit := pageSize * 2
	if fetchLimit > 50 {
		fetchLimit = 50
	}
	offset := (page - 1) * pageSize

	contents, err := s.contentRepo.ListFeed(ctx, req.ContentType, sort, fetchLimit+offset, 0)
	if err != nil {
		return nil, err
	}

	filtered := make([]*model.Content, 0, len(contents))
	for _, c := range contents {
		if hidden[c.ID] {
			continue
		}
		if c.IsNSFW && !showNSFW && c.UserID != viewerID {
			continue
		}
		filtered = append(filtered, c)
	}

	return s.paginate(ctx, filtered, viewerID, offset, pageSize)
}

func (s *contentServiceImpl) GetMyContents(ctx context.Context, userID uint64, page, pageSize int) (*dto.ContentFeedDTO, error) {
	contents, err := s.contentRepo.ListByUser(ctx, userID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.paginate(ctx, contents, userID, 0, pageSize)
}

func (s *contentServiceImpl) GetRemixes(ctx context.Context, viewerID, contentID uint64, page, pageSize int) (*dto.ContentFeedDTO, error) {
	if _, err := s.contentRepo.GetContent(ctx, contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	contents, err := s.contentRepo.ListRemixesOf(ctx, contentID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.paginate(ctx, contents, viewerID, 0, pageSize)
}

func (s *contentServiceImpl) GetTrending(ctx context.Context, viewerID uint64) ([]*dto.ContentDTO, error) {
	contents, err := s.contentRepo.ListTopByScore(ctx, trendingContentLimit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ContentDTO, 0, len(contents))
	for _, c := range contents {
		item, err := s.toContentDTO(ctx, c, viewerID)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *contentServiceImpl) GetByHashtag(ctx context.Context, viewerID uint64, tag string, page, pageSize int) (*dto.ContentFeedDTO, error) {
	ids, err := s.hashtagRepo.ListContentIDsByHashtag(ctx, tag, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	contents, err := s.contentRepo.GetContentByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*model.Content, len(contents))
	for _, c := range contents {
		byID[c.ID] = c
	}
	ordered := make([]*model.Content, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok && !c.IsArchived {
			ordered = append(ordered, c)
		}
	}

	return s.paginate(ctx, ordered, viewerID, 0, pageSize)
}

func (s *contentServiceImpl) SearchContents(ctx context.Context, viewerID uint64, req *dto.SearchReq) (*dto.SearchResultDTO, error) {
	size := req.Size
	if size <= 0 || size > 50 {
		size = 20
	}

	sortValues, err := util.DecodeCursor(req.Cursor)
	if err != nil {
		return nil, ErrParamInvalid
	}

	hits, err := s.contentESRepo.SearchContents(ctx, req.Query, sortValues, size)
	if err != nil {
		return nil, err
	}

	result := &dto.SearchResultDTO{Items: make([]*dto.ContentDTO, 0, len(hits))}
	if len(hits) == 0 {
		return result, nil
	}

	ids := make([]uint64, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}

	// 回源 MySQL 拿最新数据，ES 命中只决定顺序和游标
	contents, err := s.contentRepo.GetContentByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Content, len(contents))
	for _, c := range contents {
		byID[c.ID] = c
	}

	for _, hit := range hits {
		c, ok := byID[hit.ID]
		if !ok {
			continue
		}
		item, err := s.toContentDTO(ctx, c, viewerID)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, item)
	}

	if len(hits) == size {
		result.Cursor = util.EncodeCursor(hits[len(hits)-1].Sort)
	}
	return result, nil
}

func (s *contentServiceImpl) HideContent(ctx context.Context, userID, contentID uint64) error {
	if _, err := s.contentRepo.GetContent(ctx, contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}

	err := s.moderationRepo.CreateHide(ctx, &model.ContentHide{
		UserID:    userID,
		ContentID: contentID,
		CreatedAt: s.now(),
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrContentAlreadyHidden
		}
		return err
	}
	return nil
}

func (s *contentServiceImpl) UnhideContent(ctx context.Context, userID, contentID uint64) error {
	return s.moderationRepo.DeleteHide(ctx, userID, contentID)
}

func (s *contentServiceImpl) GetHiddenContents(ctx context.Context, userID uint64, page, pageSize int) (*dto.ContentFeedDTO, error) {
	ids, err := s.moderationRepo.ListHidden(ctx, userID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	contents, err := s.contentRepo.GetContentByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 保持隐藏时间倒序
	byID := make(map[uint64]*model.Content, len(contents))
	for _, c := range contents {
		byID[c.ID] = c
	}
	ordered := make([]*model.Content, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}

	return s.paginate(ctx, ordered, userID, 0, pageSize)
}

func (s *contentServiceImpl) ReportContent(ctx context.Context, userID, contentID uint64, reason string) error {
	if _, err := s.contentRepo.GetContent(ctx, contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}

	err := s.moderationRepo.CreateReport(ctx, &model.ContentReport{
		UserID:    userID,
		ContentID: contentID,
		Reason:    reason,
		CreatedAt: s.now(),
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrReportDuplicate
		}
		return err
	}
	return nil
}

func (s *contentServiceImpl) paginate(ctx context.Context, contents []*model.Content, viewerID uint64, offset, pageSize int) (*dto.ContentFeedDTO, error) {
	if offset > len(contents) {
		return &dto.ContentFeedDTO{Items: []*dto.ContentDTO{}}, nil
	}
	contents = contents[offset:]

	hasMore := len(contents) > pageSize
	if hasMore {
		contents = contents[:pageSize]
	}

	items := make([]*dto.ContentDTO, 0, len(contents))
	for _, c := range contents {
		item, err := s.toContentDTO(ctx, c, viewerID)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &dto.ContentFeedDTO{Items: items, HasMore: hasMore}, nil
}

func (s *contentServiceImpl) toContentDTO(ctx context.Context, content *model.Content, viewerID uint64) (*dto.ContentDTO, error) {
	item := &dto.ContentDTO{
		ID:            content.ID,
		ContentType:   content.ContentType,
		Title:         content.Title,
		Description:   content.Description,
		IsNSFW:        content.IsNSFW,
		IsArchived:    content.IsArchived,
		ViewCount:     content.ViewCount,
		CreatedAt:     content.CreatedAt.Format(time.RFC3339),
		UserID:        content.UserID,
		Username:      content.User.Username,
		RemixedFromID: content.RemixedFromID,
		RemixCount:    content.RemixCount,
	}
	if content.EditedAt != nil {
		item.EditedAt = content.EditedAt.Format(time.RFC3339)
	}
	if item.Username == "" {
		if author, err := s.userRepo.GetUserByID(ctx, content.UserID); err == nil {
			item.Username = author.Username
		}
	}

	// 分数只对作者可见
	if viewerID != 0 && viewerID == content.UserID {
		item.Score = util.PtrFloat64(content.Score)
	}

	if content.RemixedFrom != nil {
		item.RemixedFrom = &dto.ContentRefDTO{
			ID:       content.RemixedFrom.ID,
			Title:    content.RemixedFrom.Title,
			UserID:   content.RemixedFrom.UserID,
			Username: content.RemixedFrom.User.Username,
		}
	}

	item.Medias = make([]*dto.MediaBaseDTO, 0, len(content.Media))
	for _, m := range content.Media {
		item.Medias = append(item.Medias, &dto.MediaBaseDTO{
			MimeType: m.MimeType,
			MediaURL: m.URL,
			ThumbURL: m.ThumbURL,
			Position: m.Position,
		})
	}

	tags, err := s.hashtagRepo.ListHashtagsByContent(ctx, content.ID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = make([]string, 0)
	}
	item.Hashtags = tags

	counts, err := s.voteRepo.CountVotes(ctx, content.ID)
	if err != nil {
		return nil, err
	}
	item.UpCount = counts.Up
	item.DownCount = counts.Down
	item.SuperUpCount = counts.SuperUp

	if content.ContentType == model.ContentTypeQA {
		answerCount, err := s.answerRepo.CountAnswers(ctx, content.ID)
		if err != nil {
			return nil, err
		}
		item.AnswerCount = answerCount
	}

	if viewerID != 0 {
		vote, err := s.voteRepo.GetVote(ctx, viewerID, content.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if vote != nil {
			item.ViewerVote = vote.Kind
		}

		saved, err := s.savedRepo.CheckSavedExists(ctx, viewerID, content.ID)
		if err != nil {
			return nil, err
		}
		item.IsSaved = saved
	}

	return item, nil
}

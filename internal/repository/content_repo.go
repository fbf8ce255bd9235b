package repository

import (
	"Mosaic/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepo interface {
	WithTx(tx *gorm.DB) ContentRepo

	CreateContent(ctx context.Context, content *model.Content, media []*model.ContentMedia, hashtags []string) error
	GetContent(ctx context.Context, id uint64) (*model.Content, error)
	// GetContentForUpdate 加行锁读取，重算期间其它写票事务会被串行化
	GetContentForUpdate(ctx context.Context, id uint64) (*model.Content, error)
	GetContentByIds(ctx context.Context, ids []uint64) ([]*model.Content, error)
	UpdateContent(ctx context.Context, content *model.Content, media []*model.ContentMedia, hashtags []string) error
	DeleteContent(ctx context.Context, id uint64) error

	// UpdateScoreAndArchived 由打分引擎在重算后回写派生字段
	UpdateScoreAndArchived(ctx context.Context, id uint64, score float64, archived bool) error
	IncrementViewCount(ctx context.Context, id uint64) error
	IncrementRemixCount(ctx context.Context, id uint64, delta int) error

	// ListFeed 信息流候选，永不含已归档内容，contentType 为空表示不过滤
	ListFeed(ctx context.Context, contentType, sort string, limit, offset int) ([]*model.Content, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Content, error)
	ListRemixesOf(ctx context.Context, contentID uint64, limit, offset int) ([]*model.Content, error)
	ListTopByScore(ctx context.Context, limit int) ([]*model.Content, error)
	CountByUser(ctx context.Context, userID uint64) (int64, error)
}

type ContentRepoImpl struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepo {
	return &ContentRepoImpl{
		db: db,
	}
}

func (s *ContentRepoImpl) WithTx(tx *gorm.DB) ContentRepo {
	return &ContentRepoImpl{db: tx}
}

func (s *ContentRepoImpl) CreateContent(ctx context.Context, content *model.Content, media []*model.ContentMedia, hashtags []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(content).Error; err != nil {
			return err
		}
		for i := range media {
			media[i].ContentID = content.ID
		}
		if len(media) > 0 {
			if err := tx.Create(media).Error; err != nil {
				return err
			}
		}
		return linkHashtags(tx, content.ID, hashtags)
	})
}

// linkHashtags 先确保标签存在再挂关联，重建时由调用方先清旧关联
func linkHashtags(tx *gorm.DB, contentID uint64, names []string) error {
	for _, name := range names {
		tag := model.Hashtag{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		link := model.ContentHashtag{ContentID: contentID, HashtagID: tag.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *ContentRepoImpl) GetContent(ctx context.Context, id uint64) (*model.Content, error) {
	var content model.Content
	err := s.db.WithContext(ctx).Preload("User").Preload("Media").Preload("RemixedFrom").First(&content, id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (s *ContentRepoImpl) GetContentForUpdate(ctx context.Context, id uint64) (*model.Content, error) {
	var content model.Content
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&content, id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (s *ContentRepoImpl) GetContentByIds(ctx context.Context, ids []uint64) ([]*model.Content, error) {
	var contents []*model.Content
	err := s.db.WithContext(ctx).Preload("User").Preload("Media").Where("id IN ?", ids).Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (s *ContentRepoImpl) UpdateContent(ctx context.Context, content *model.Content, media []*model.ContentMedia, hashtags []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(content).Select("Title", "Description", "IsNSFW", "EditedAt").Updates(content).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ContentMedia{}, "content_id = ?", content.ID).Error; err != nil {
			return err
		}
		if len(media) > 0 {
			for i := range media {
				media[i].ContentID = content.ID
			}
			if err := tx.Create(media).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&model.ContentHashtag{}, "content_id = ?", content.ID).Error; err != nil {
			return err
		}
		return linkHashtags(tx, content.ID, hashtags)
	})
}

func (s *ContentRepoImpl) DeleteContent(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ContentMedia{}, "content_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ContentHashtag{}, "content_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Vote{}, "content_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.SavedContent{}, "content_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Content{}, id).Error
	})
}

func (s *ContentRepoImpl) UpdateScoreAndArchived(ctx context.Context, id uint64, score float64, archived bool) error {
	return s.db.WithContext(ctx).Model(&model.Content{}).Where("id = ?", id).
		Updates(map[string]interface{}{"score": score, "is_archived": archived}).Error
}

func (s *ContentRepoImpl) IncrementViewCount(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Content{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (s *ContentRepoImpl) IncrementRemixCount(ctx context.Context, id uint64, delta int) error {
	return s.db.WithContext(ctx).Model(&model.Content{}).Where("id = ?", id).
		Update("remix_count", gorm.Expr("remix_count + ?", delta)).Error
}

func (s *ContentRepoImpl) ListFeed(ctx context.Context, contentType, sort string, limit, offset int) ([]*model.Content, error) {
	var contents []*model.Content
	query := s.db.WithContext(ctx).Preload("User").Preload("Media").
		Where("is_archived = ?", false)
	if contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}
	switch sort {
	case "score":
		query = query.Order("score DESC, created_at DESC")
	case "oldest":
		query = query.Order("created_at ASC")
	default:
		query = query.Order("created_at DESC")
	}
	err := query.Limit(limit).Offset(offset).Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (s *ContentRepoImpl) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Content, error) {
	var contents []*model.Content
	err := s.db.WithContext(ctx).Preload("Media").
		Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (s *ContentRepoImpl) ListRemixesOf(ctx context.Context, contentID uint64, limit, offset int) ([]*model.Content, error) {
	var contents []*model.Content
	err := s.db.WithContext(ctx).Preload("User").Preload("Media").
		Where("remixed_from_id = ?", contentID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (s *ContentRepoImpl) ListTopByScore(ctx context.Context, limit int) ([]*model.Content, error) {
	var contents []*model.Content
	err := s.db.WithContext(ctx).Preload("User").Preload("Media").
		Where("is_archived = ?", false).
		Order("score DESC").Limit(limit).Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (s *ContentRepoImpl) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Content{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

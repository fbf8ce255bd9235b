package repository

import (
	"Mosaic/internal/model"
	"context"

	"gorm.io/gorm"
)

type HashtagRepo interface {
	GetHashtagByName(ctx context.Context, name string) (*model.Hashtag, error)
	ListHashtagsByContent(ctx context.Context, contentID uint64) ([]string, error)
	ListHashtagsByContents(ctx context.Context, contentIDs []uint64) (map[uint64][]string, error)
	ListContentIDsByHashtag(ctx context.Context, name string, limit, offset int) ([]uint64, error)
	CountContentsByHashtag(ctx context.Context, name string) (int64, error)

	CreateFollow(ctx context.Context, follow *model.HashtagFollow) error
	DeleteFollow(ctx context.Context, userID uint64, hashtag string) error
	CheckFollowExists(ctx context.Context, userID uint64, hashtag string) (bool, error)
	ListFollowing(ctx context.Context, userID uint64) ([]*model.HashtagFollow, error)
	CountFollowers(ctx context.Context, hashtag string) (int64, error)
	DeleteFollowsByUser(ctx context.Context, userID uint64) error

	// RecentUseCounts 统计近期内容里每个标签的使用次数，热榜任务的数据源
	RecentUseCounts(ctx context.Context, sinceDays int, limit int) (map[string]float64, error)
}

type HashtagRepoImpl struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepo {
	return &HashtagRepoImpl{
		db: db,
	}
}

func (s *HashtagRepoImpl) GetHashtagByName(ctx context.Context, name string) (*model.Hashtag, error) {
	var tag model.Hashtag
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *HashtagRepoImpl) ListHashtagsByContent(ctx context.Context, contentID uint64) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&model.ContentHashtag{}).
		Select("hashtags.name").
		Joins("JOIN hashtags ON hashtags.id = content_hashtags.hashtag_id").
		Where("content_hashtags.content_id = ?", contentID).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *HashtagRepoImpl) ListHashtagsByContents(ctx context.Context, contentIDs []uint64) (map[uint64][]string, error) {
	var rows []struct {
		ContentID uint64
		Name      string
	}
	err := s.db.WithContext(ctx).Model(&model.ContentHashtag{}).
		Select("content_hashtags.content_id, hashtags.name").
		Joins("JOIN hashtags ON hashtags.id = content_hashtags.hashtag_id").
		Where("content_hashtags.content_id IN ?", contentIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uint64][]string, len(contentIDs))
	for _, row := range rows {
		result[row.ContentID] = append(result[row.ContentID], row.Name)
	}
	return result, nil
}

func (s *HashtagRepoImpl) ListContentIDsByHashtag(ctx context.Context, name string, limit, offset int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.ContentHashtag{}).
		Select("content_hashtags.content_id").
		Joins("JOIN hashtags ON hashtags.id = content_hashtags.hashtag_id").
		Joins("JOIN contents ON contents.id = content_hashtags.content_id").
		Where("hashtags.name = ?", name).
		Order("contents.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *HashtagRepoImpl) CountContentsByHashtag(ctx context.Context, name string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ContentHashtag{}).
		Joins("JOIN hashtags ON hashtags.id = content_hashtags.hashtag_id").
		Where("hashtags.name = ?", name).
		Count(&count).Error
	return count, err
}

func (s *HashtagRepoImpl) CreateFollow(ctx context.Context, follow *model.HashtagFollow) error {
	return s.db.WithContext(ctx).Create(follow).Error
}

func (s *HashtagRepoImpl) DeleteFollow(ctx context.Context, userID uint64, hashtag string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND hashtag = ?", userID, hashtag).
		Delete(&model.HashtagFollow{}).Error
}

func (s *HashtagRepoImpl) CheckFollowExists(ctx context.Context, userID uint64, hashtag string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.HashtagFollow{}).
		Where("user_id = ? AND hashtag = ?", userID, hashtag).
		Count(&count).Error
	return count > 0, err
}

func (s *HashtagRepoImpl) ListFollowing(ctx context.Context, userID uint64) ([]*model.HashtagFollow, error) {
	var follows []*model.HashtagFollow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	return follows, nil
}

func (s *HashtagRepoImpl) CountFollowers(ctx context.Context, hashtag string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.HashtagFollow{}).
		Where("hashtag = ?", hashtag).
		Count(&count).Error
	return count, err
}

func (s *HashtagRepoImpl) DeleteFollowsByUser(ctx context.Context, userID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.HashtagFollow{}, "user_id = ?", userID).Error
}

func (s *HashtagRepoImpl) RecentUseCounts(ctx context.Context, sinceDays int, limit int) (map[string]float64, error) {
	var rows []struct {
		Name  string
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&model.ContentHashtag{}).
		Select("hashtags.name, COUNT(*) as count").
		Joins("JOIN hashtags ON hashtags.id = content_hashtags.hashtag_id").
		Joins("JOIN contents ON contents.id = content_hashtags.content_id").
		Where("contents.created_at > DATE_SUB(NOW(), INTERVAL ? DAY)", sinceDays).
		Group("hashtags.name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]float64, len(rows))
	for _, row := range rows {
		result[row.Name] = float64(row.Count)
	}
	return result, nil
}

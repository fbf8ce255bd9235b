package repository

import (
	"Mosaic/internal/model"
	"context"

	"gorm.io/gorm"
)

type SavedRepo interface {
	CreateSaved(ctx context.Context, saved *model.SavedContent) error
	DeleteSaved(ctx context.Context, userID, contentID uint64) error
	CheckSavedExists(ctx context.Context, userID, contentID uint64) (bool, error)
	GetSaved(ctx context.Context, userID, contentID uint64) (*model.SavedContent, error)
	ListSaved(ctx context.Context, userID uint64, collectionID *uint64, limit, offset int) ([]*model.SavedContent, error)
	GetSavedContentIDs(ctx context.Context, userID uint64, contentIDs []uint64) (map[uint64]bool, error)
	UpdateSaved(ctx context.Context, userID, contentID uint64, updates map[string]interface{}) error
	DeleteSavedByUser(ctx context.Context, userID uint64) error

	CreateCollection(ctx context.Context, collection *model.Collection) error
	GetCollection(ctx context.Context, id uint64) (*model.Collection, error)
	ListCollections(ctx context.Context, userID uint64) ([]*model.Collection, error)
	DeleteCollection(ctx context.Context, userID, id uint64) error
	CountSavedInCollection(ctx context.Context, collectionID uint64) (int64, error)
}

type SavedRepoImpl struct {
	db *gorm.DB
}

func NewSavedRepository(db *gorm.DB) SavedRepo {
	return &SavedRepoImpl{
		db: db,
	}
}

func (s *SavedRepoImpl) CreateSaved(ctx context.Context, saved *model.SavedContent) error {
	return s.db.WithContext(ctx).Create(saved).Error
}

func (s *SavedRepoImpl) DeleteSaved(ctx context.Context, userID, contentID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&model.SavedContent{}).Error
}

func (s *SavedRepoImpl) CheckSavedExists(ctx context.Context, userID, contentID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.SavedContent{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	return count > 0, err
}

func (s *SavedRepoImpl) GetSaved(ctx context.Context, userID, contentID uint64) (*model.SavedContent, error) {
	var saved model.SavedContent
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *SavedRepoImpl) ListSaved(ctx context.Context, userID uint64, collectionID *uint64, limit, offset int) ([]*model.SavedContent, error) {
	var saved []*model.SavedContent
	query := s.db.WithContext(ctx).
		Preload("Content").Preload("Content.User").Preload("Content.Media").
		Where("user_id = ?", userID)
	if collectionID != nil {
		query = query.Where("collection_id = ?", *collectionID)
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&saved).Error
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *SavedRepoImpl) GetSavedContentIDs(ctx context.Context, userID uint64, contentIDs []uint64) (map[uint64]bool, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.SavedContent{}).
		Select("content_id").
		Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (s *SavedRepoImpl) UpdateSaved(ctx context.Context, userID, contentID uint64, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.SavedContent{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Updates(updates).Error
}

func (s *SavedRepoImpl) DeleteSavedByUser(ctx context.Context, userID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.SavedContent{}, "user_id = ?", userID).Error
}

func (s *SavedRepoImpl) CreateCollection(ctx context.Context, collection *model.Collection) error {
	return s.db.WithContext(ctx).Create(collection).Error
}

func (s *SavedRepoImpl) GetCollection(ctx context.Context, id uint64) (*model.Collection, error) {
	var collection model.Collection
	err := s.db.WithContext(ctx).First(&collection, id).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (s *SavedRepoImpl) ListCollections(ctx context.Context, userID uint64) ([]*model.Collection, error) {
	var collections []*model.Collection
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}

// DeleteCollection 删除收藏夹时收藏项回落到未分组，不级联删除
func (s *SavedRepoImpl) DeleteCollection(ctx context.Context, userID, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.SavedContent{}).
			Where("user_id = ? AND collection_id = ?", userID, id).
			Update("collection_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Where("user_id = ? AND id = ?", userID, id).Delete(&model.Collection{}).Error
	})
}

func (s *SavedRepoImpl) CountSavedInCollection(ctx context.Context, collectionID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.SavedContent{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	return count, err
}

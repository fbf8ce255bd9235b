package repository

import (
	"Mosaic/internal/model"
	"context"

	"gorm.io/gorm"
)

type ModerationRepo interface {
	CreateHide(ctx context.Context, hide *model.ContentHide) error
	DeleteHide(ctx context.Context, userID, contentID uint64) error
	CheckHideExists(ctx context.Context, userID, contentID uint64) (bool, error)
	GetHiddenContentIDs(ctx context.Context, userID uint64) ([]uint64, error)
	ListHidden(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
	DeleteHidesByUser(ctx context.Context, userID uint64) error

	CreateReport(ctx context.Context, report *model.ContentReport) error
	CheckReportExists(ctx context.Context, userID, contentID uint64) (bool, error)
}

type ModerationRepoImpl struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepo {
	return &ModerationRepoImpl{
		db: db,
	}
}

func (s *ModerationRepoImpl) CreateHide(ctx context.Context, hide *model.ContentHide) error {
	return s.db.WithContext(ctx).Create(hide).Error
}

func (s *ModerationRepoImpl) DeleteHide(ctx context.Context, userID, contentID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&model.ContentHide{}).Error
}

func (s *ModerationRepoImpl) CheckHideExists(ctx context.Context, userID, contentID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ContentHide{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	return count > 0, err
}

func (s *ModerationRepoImpl) GetHiddenContentIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.ContentHide{}).
		Select("content_id").
		Where("user_id = ?", userID).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *ModerationRepoImpl) ListHidden(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.ContentHide{}).
		Select("content_id").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *ModerationRepoImpl) DeleteHidesByUser(ctx context.Context, userID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.ContentHide{}, "user_id = ?", userID).Error
}

func (s *ModerationRepoImpl) CreateReport(ctx context.Context, report *model.ContentReport) error {
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *ModerationRepoImpl) CheckReportExists(ctx context.Context, userID, contentID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ContentReport{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	return count > 0, err
}

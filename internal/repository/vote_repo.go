package repository

import (
	"Mosaic/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type VoteRepo interface {
	WithTx(tx *gorm.DB) VoteRepo

	GetVote(ctx context.Context, userID, contentID uint64) (*model.Vote, error)
	CreateVote(ctx context.Context, vote *model.Vote) error
	UpdateVoteKind(ctx context.Context, userID, contentID uint64, kind string) error
	DeleteVote(ctx context.Context, userID, contentID uint64) error

	// CountVotes 全量重扫账本，按类型统计一条内容的票数
	CountVotes(ctx context.Context, contentID uint64) (*model.VoteCounts, error)
	GetVotedContentIDs(ctx context.Context, userID uint64, contentIDs []uint64) (map[uint64]string, error)
	// GetSuperUpvoteSince 查某用户自指定时刻起投出的超级赞，额度详情接口回查账本用
	GetSuperUpvoteSince(ctx context.Context, userID uint64, since time.Time) (*model.Vote, error)
}

type VoteRepoImpl struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepo {
	return &VoteRepoImpl{
		db: db,
	}
}

func (s *VoteRepoImpl) WithTx(tx *gorm.DB) VoteRepo {
	return &VoteRepoImpl{db: tx}
}

func (s *VoteRepoImpl) GetVote(ctx context.Context, userID, contentID uint64) (*model.Vote, error) {
	var vote model.Vote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s *VoteRepoImpl) CreateVote(ctx context.Context, vote *model.Vote) error {
	return s.db.WithContext(ctx).Create(vote).Error
}

func (s *VoteRepoImpl) UpdateVoteKind(ctx context.Context, userID, contentID uint64, kind string) error {
	return s.db.WithContext(ctx).Model(&model.Vote{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Update("kind", kind).Error
}

func (s *VoteRepoImpl) DeleteVote(ctx context.Context, userID, contentID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&model.Vote{}).Error
}

func (s *VoteRepoImpl) CountVotes(ctx context.Context, contentID uint64) (*model.VoteCounts, error) {
	var rows []struct {
		Kind  string
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&model.Vote{}).
		Select("kind, COUNT(*) as count").
		Where("content_id = ?", contentID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := &model.VoteCounts{}
	for _, row := range rows {
		switch row.Kind {
		case model.VoteKindUp:
			counts.Up = row.Count
		case model.VoteKindDown:
			counts.Down = row.Count
		case model.VoteKindSuperUp:
			counts.SuperUp = row.Count
		}
	}
	return counts, nil
}

func (s *VoteRepoImpl) GetSuperUpvoteSince(ctx context.Context, userID uint64, since time.Time) (*model.Vote, error) {
	var vote model.Vote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND created_at >= ?", userID, model.VoteKindSuperUp, since).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s *VoteRepoImpl) GetVotedContentIDs(ctx context.Context, userID uint64, contentIDs []uint64) (map[uint64]string, error) {
	var votes []model.Vote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uint64]string, len(votes))
	for _, v := range votes {
		result[v.ContentID] = v.Kind
	}
	return result, nil
}

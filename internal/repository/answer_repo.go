package repository

import (
	"Mosaic/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepo interface {
	WithTx(tx *gorm.DB) AnswerRepo

	CreateAnswer(ctx context.Context, answer *model.QAAnswer) error
	GetAnswer(ctx context.Context, id uint64) (*model.QAAnswer, error)
	// GetAnswerForUpdate 加行锁读取，答案投票迁移期间串行化并发写
	GetAnswerForUpdate(ctx context.Context, id uint64) (*model.QAAnswer, error)
	GetAnswerByUser(ctx context.Context, contentID, userID uint64) (*model.QAAnswer, error)
	ListAnswers(ctx context.Context, contentID uint64) ([]*model.QAAnswer, error)
	CountAnswers(ctx context.Context, contentID uint64) (int64, error)
	UpdateAnswerScore(ctx context.Context, id uint64, score float64) error
	DeleteAnswersByContent(ctx context.Context, contentID uint64) error

	GetAnswerVote(ctx context.Context, userID, contentID uint64) (*model.QAAnswerVote, error)
	CreateAnswerVote(ctx context.Context, vote *model.QAAnswerVote) error
	DeleteAnswerVote(ctx context.Context, userID, contentID uint64) error
	CountAnswerVotes(ctx context.Context, answerID uint64) (up, down int64, err error)
	GetAnswerVotesByUser(ctx context.Context, userID uint64, contentIDs []uint64) (map[uint64]*model.QAAnswerVote, error)
}

type AnswerRepoImpl struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepo {
	return &AnswerRepoImpl{
		db: db,
	}
}

func (s *AnswerRepoImpl) WithTx(tx *gorm.DB) AnswerRepo {
	return &AnswerRepoImpl{db: tx}
}

func (s *AnswerRepoImpl) CreateAnswer(ctx context.Context, answer *model.QAAnswer) error {
	return s.db.WithContext(ctx).Create(answer).Error
}

func (s *AnswerRepoImpl) GetAnswer(ctx context.Context, id uint64) (*model.QAAnswer, error) {
	var answer model.QAAnswer
	err := s.db.WithContext(ctx).First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *AnswerRepoImpl) GetAnswerForUpdate(ctx context.Context, id uint64) (*model.QAAnswer, error) {
	var answer model.QAAnswer
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *AnswerRepoImpl) GetAnswerByUser(ctx context.Context, contentID, userID uint64) (*model.QAAnswer, error) {
	var answer model.QAAnswer
	err := s.db.WithContext(ctx).
		Where("content_id = ? AND user_id = ?", contentID, userID).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *AnswerRepoImpl) ListAnswers(ctx context.Context, contentID uint64) ([]*model.QAAnswer, error) {
	var answers []*model.QAAnswer
	err := s.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("score DESC, created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (s *AnswerRepoImpl) CountAnswers(ctx context.Context, contentID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.QAAnswer{}).
		Where("content_id = ?", contentID).Count(&count).Error
	return count, err
}

func (s *AnswerRepoImpl) UpdateAnswerScore(ctx context.Context, id uint64, score float64) error {
	return s.db.WithContext(ctx).Model(&model.QAAnswer{}).
		Where("id = ?", id).Update("score", score).Error
}

func (s *AnswerRepoImpl) DeleteAnswersByContent(ctx context.Context, contentID uint64) error {
	if err := s.db.WithContext(ctx).Delete(&model.QAAnswerVote{}, "content_id = ?", contentID).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.QAAnswer{}, "content_id = ?", contentID).Error
}

func (s *AnswerRepoImpl) GetAnswerVote(ctx context.Context, userID, contentID uint64) (*model.QAAnswerVote, error) {
	var vote model.QAAnswerVote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s *AnswerRepoImpl) CreateAnswerVote(ctx context.Context, vote *model.QAAnswerVote) error {
	return s.db.WithContext(ctx).Create(vote).Error
}

func (s *AnswerRepoImpl) DeleteAnswerVote(ctx context.Context, userID, contentID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&model.QAAnswerVote{}).Error
}

func (s *AnswerRepoImpl) CountAnswerVotes(ctx context.Context, answerID uint64) (up, down int64, err error) {
	var rows []struct {
		Kind  string
		Count int64
	}
	err = s.db.WithContext(ctx).Model(&model.QAAnswerVote{}).
		Select("kind, COUNT(*) as count").
		Where("answer_id = ?", answerID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}
	for _, row := range rows {
		switch row.Kind {
		case model.VoteKindUp:
			up = row.Count
		case model.VoteKindDown:
			down = row.Count
		}
	}
	return up, down, nil
}

func (s *AnswerRepoImpl) GetAnswerVotesByUser(ctx context.Context, userID uint64, contentIDs []uint64) (map[uint64]*model.QAAnswerVote, error) {
	var votes []*model.QAAnswerVote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uint64]*model.QAAnswerVote, len(votes))
	for _, v := range votes {
		result[v.ContentID] = v
	}
	return result, nil
}

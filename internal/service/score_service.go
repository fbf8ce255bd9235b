package service

import (
	"Mosaic/internal/model"
	"Mosaic/internal/repository"
	"context"
	"errors"
	"math"

	"gorm.io/gorm"
)

const (
	superUpvoteWeight = 10.0
	downvoteDivisor   = 3.0
	viewBatchSize     = 100.0
	viewBatchWeight   = 0.1

	archiveThreshold   = -10.0
	unarchiveThreshold = 0.0

	answerDownvoteWeight = 0.33
)

// ScoreService 打分引擎，全部派生字段（score、is_archived、答案score）都从这里重算得出
type ScoreService interface {
	// RecomputeContent 在独立事务内重算一条内容
	RecomputeContent(ctx context.Context, contentID uint64) error
	// RecomputeContentWith 使用调用方事务里的仓库实例重算，投票写入和重算共用一个事务，返回新分
	RecomputeContentWith(ctx context.Context, voteRepo repository.VoteRepo, contentRepo repository.ContentRepo, contentID uint64) (float64, error)
	// RecomputeAnswerWith 重算一条问答回答的分数，返回新分
	RecomputeAnswerWith(ctx context.Context, answerRepo repository.AnswerRepo, answerID uint64) (float64, error)
}

type scoreServiceImpl struct {
	db          *gorm.DB
	voteRepo    repository.VoteRepo
	contentRepo repository.ContentRepo
}

func NewScoreService(db *gorm.DB, voteRepo repository.VoteRepo, contentRepo repository.ContentRepo) ScoreService {
	return &scoreServiceImpl{
		db:          db,
		voteRepo:    voteRepo,
		contentRepo: contentRepo,
	}
}

// computeScore 分数公式：净赞 = 赞 + 10*超级赞 - 踩/3，浏览量每满100加0.1，结果保留两位小数
func computeScore(counts *model.VoteCounts, viewCount int64) float64 {
	netLikes := float64(counts.Up) + superUpvoteWeight*float64(counts.SuperUp) - float64(counts.Down)/downvoteDivisor
	viewScore := float64(viewCount) / viewBatchSize * viewBatchWeight
	return roundScore(netLikes + viewScore)
}

// nextArchived 滞回归档：跌破-10才归档，已归档的要回到0以上才解档，
// [-10, 0) 区间内保持原状态不抖动
func nextArchived(score float64, wasArchived bool) bool {
	if score < archiveThreshold {
		return true
	}
	if wasArchived && score >= unarchiveThreshold {
		return false
	}
	return wasArchived
}

// computeAnswerScore 回答分数：赞 - 0.33*踩，保留两位小数
func computeAnswerScore(up, down int64) float64 {
	return roundScore(float64(up) - answerDownvoteWeight*float64(down))
}

func roundScore(raw float64) float64 {
	return math.Round(raw*100) / 100
}

func (s *scoreServiceImpl) RecomputeContent(ctx context.Context, contentID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.RecomputeContentWith(ctx, s.voteRepo.WithTx(tx), s.contentRepo.WithTx(tx), contentID)
		return err
	})
}

func (s *scoreServiceImpl) RecomputeContentWith(ctx context.Context, voteRepo repository.VoteRepo, contentRepo repository.ContentRepo, contentID uint64) (float64, error) {
	content, err := contentRepo.GetContentForUpdate(ctx, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrContentNotFound
		}
		return 0, err
	}

	counts, err := voteRepo.CountVotes(ctx, contentID)
	if err != nil {
		return 0, err
	}

	score := computeScore(counts, content.ViewCount)
	archived := nextArchived(score, content.IsArchived)
	if err = contentRepo.UpdateScoreAndArchived(ctx, contentID, score, archived); err != nil {
		return 0, err
	}
	return score, nil
}

func (s *scoreServiceImpl) RecomputeAnswerWith(ctx context.Context, answerRepo repository.AnswerRepo, answerID uint64) (float64, error) {
	if _, err := answerRepo.GetAnswerForUpdate(ctx, answerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAnswerNotFound
		}
		return 0, err
	}

	up, down, err := answerRepo.CountAnswerVotes(ctx, answerID)
	if err != nil {
		return 0, err
	}
	score := computeAnswerScore(up, down)
	if err = answerRepo.UpdateAnswerScore(ctx, answerID, score); err != nil {
		return 0, err
	}
	return score, nil
}

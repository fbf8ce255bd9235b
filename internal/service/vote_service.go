package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/model"
	"Mosaic/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type VoteService interface {
	// CastVote 投票或改票，写入账本后在同一事务内全量重算分数，返回重算后的新分
	CastVote(ctx context.Context, userID, contentID uint64, kind string) (float64, error)
	// RevokeVote 撤票，超级赞不可撤
	RevokeVote(ctx context.Context, userID, contentID uint64) error
	GetVote(ctx context.Context, userID, contentID uint64) (string, error)
	GetVoteCounts(ctx context.Context, contentID uint64) (*model.VoteCounts, error)
	// GetAllowanceStatus 当日超级赞额度详情，已用时回查账本带出投给的内容和恢复时间
	GetAllowanceStatus(ctx context.Context, userID uint64) (*dto.AllowanceDTO, error)
}

type voteServiceImpl struct {
	db           *gorm.DB
	voteRepo     repository.VoteRepo
	contentRepo  repository.ContentRepo
	userRepo     repository.UserRepo
	scoreService ScoreService

	now  func() time.Time
	inTx func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewVoteService(
	db *gorm.DB,
	voteRepo repository.VoteRepo,
	contentRepo repository.ContentRepo,
	userRepo repository.UserRepo,
	scoreService ScoreService,
) VoteService {
	return &voteServiceImpl{
		db:           db,
		voteRepo:     voteRepo,
		contentRepo:  contentRepo,
		userRepo:     userRepo,
		scoreService: scoreService,
		now:          time.Now,
		inTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
	}
}

func validVoteKind(kind string) bool {
	switch kind {
	case model.VoteKindUp, model.VoteKindDown, model.VoteKindSuperUp:
		return true
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *voteServiceImpl) CastVote(ctx context.Context, userID, contentID uint64, kind string) (float64, error) {
	if !validVoteKind(kind) {
		return 0, ErrParamInvalid
	}

	var newScore float64
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		voteRepo := s.voteRepo.WithTx(tx)
		contentRepo := s.contentRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)

		// 先锁内容行，账本写入与重算期间并发投票会在此排队
		content, err := contentRepo.GetContentForUpdate(ctx, contentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContentNotFound
			}
			return err
		}
		if content.UserID == userID {
			return ErrSelfVote
		}

		existing, err := voteRepo.GetVote(ctx, userID, contentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		switch {
		case existing == nil:
			if kind == model.VoteKindSuperUp {
				if err = s.consumeAllowance(ctx, userRepo, userID); err != nil {
					return err
				}
			}
			err = voteRepo.CreateVote(ctx, &model.Vote{
				UserID:    userID,
				ContentID: contentID,
				Kind:      kind,
				CreatedAt: s.now(),
			})
			if err != nil {
				if isDuplicateError(err) {
					return ErrActionDuplicate
				}
				return err
			}
		case existing.Kind == kind:
			// 同票型重复投是幂等写入，账本不动，照常重算返回当前分
		case existing.Kind == model.VoteKindSuperUp:
			// 超级赞落账后不可更改
			return ErrVoteImmutable
		default:
			if kind == model.VoteKindSuperUp {
				if err = s.consumeAllowance(ctx, userRepo, userID); err != nil {
					return err
				}
			}
			if err = voteRepo.UpdateVoteKind(ctx, userID, contentID, kind); err != nil {
				return err
			}
		}

		newScore, err = s.scoreService.RecomputeContentWith(ctx, voteRepo, contentRepo, contentID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newScore, nil
}

func (s *voteServiceImpl) consumeAllowance(ctx context.Context, userRepo repository.UserRepo, userID uint64) error {
	now := s.now()
	ok, err := userRepo.ConsumeSuperUpvoteAllowance(ctx, userID, startOfDay(now), now)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAllowanceExhausted
	}
	return nil
}

func (s *voteServiceImpl) RevokeVote(ctx context.Context, userID, contentID uint64) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		voteRepo := s.voteRepo.WithTx(tx)
		contentRepo := s.contentRepo.WithTx(tx)

		if _, err := contentRepo.GetContentForUpdate(ctx, contentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContentNotFound
			}
			return err
		}

		existing, err := voteRepo.GetVote(ctx, userID, contentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVoteNotFound
			}
			return err
		}
		if existing.Kind == model.VoteKindSuperUp {
			return ErrVoteImmutable
		}

		if err = voteRepo.DeleteVote(ctx, userID, contentID); err != nil {
			return err
		}
		_, err = s.scoreService.RecomputeContentWith(ctx, voteRepo, contentRepo, contentID)
		return err
	})
}

func (s *voteServiceImpl) GetVote(ctx context.Context, userID, contentID uint64) (string, error) {
	vote, err := s.voteRepo.GetVote(ctx, userID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return vote.Kind, nil
}

func (s *voteServiceImpl) GetVoteCounts(ctx context.Context, contentID uint64) (*model.VoteCounts, error) {
	return s.voteRepo.CountVotes(ctx, contentID)
}

// GetAllowanceStatus 额度按最近一次使用时间与当天零点推导，没有任何重置任务
func (s *voteServiceImpl) GetAllowanceStatus(ctx context.Context, userID uint64) (*dto.AllowanceDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	dayStart := startOfDay(s.now())
	status := &dto.AllowanceDTO{
		ResetsAt: dayStart.AddDate(0, 0, 1).Format(time.RFC3339),
	}
	if user.LastSuperUpvoteAt == nil || user.LastSuperUpvoteAt.Before(dayStart) {
		return status, nil
	}
	status.Used = true

	vote, err := s.voteRepo.GetSuperUpvoteSince(ctx, userID, dayStart)
	if err != nil {
		// 额度已标记消耗但账本里找不到票，只报已用不带明细
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status, nil
		}
		return nil, err
	}
	status.ContentID = &vote.ContentID
	status.UsedAt = vote.CreatedAt.Format(time.RFC3339)
	if content, err := s.contentRepo.GetContent(ctx, vote.ContentID); err == nil {
		status.ContentTitle = content.Title
	}
	return status, nil
}

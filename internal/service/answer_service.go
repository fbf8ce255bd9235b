package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/model"
	"Mosaic/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type AnswerService interface {
	// AddAnswer 回答问题，每个用户对同一问题只能回答一次
	AddAnswer(ctx context.Context, userID, contentID uint64, text string) (*dto.AnswerDTO, error)
	ListAnswers(ctx context.Context, contentID uint64, viewerID uint64) ([]*dto.AnswerDTO, error)
	// VoteOnAnswer 给回答投票，换答案时旧票在同一事务内迁移，两个答案都重算，返回目标答案新分
	VoteOnAnswer(ctx context.Context, userID, answerID uint64, kind string) (float64, error)
	RevokeAnswerVote(ctx context.Context, userID, contentID uint64) error
}

type answerServiceImpl struct {
	db           *gorm.DB
	answerRepo   repository.AnswerRepo
	contentRepo  repository.ContentRepo
	userRepo     repository.UserRepo
	scoreService ScoreService
	notifier     NotificationService

	now  func() time.Time
	inTx func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewAnswerService(
	db *gorm.DB,
	answerRepo repository.AnswerRepo,
	contentRepo repository.ContentRepo,
	userRepo repository.UserRepo,
	scoreService ScoreService,
	notifier NotificationService,
) AnswerService {
	return &answerServiceImpl{
		db:           db,
		answerRepo:   answerRepo,
		contentRepo:  contentRepo,
		userRepo:     userRepo,
		scoreService: scoreService,
		notifier:     notifier,
		now:          time.Now,
		inTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
	}
}

func (s *answerServiceImpl) AddAnswer(ctx context.Context, userID, contentID uint64, text string) (*dto.AnswerDTO, error) {
	content, err := s.contentRepo.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	if content.ContentType != model.ContentTypeQA {
		return nil, ErrNotQuestion
	}

	answer := &model.QAAnswer{
		ContentID: contentID,
		UserID:    userID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err = s.answerRepo.CreateAnswer(ctx, answer); err != nil {
		if isDuplicateError(err) {
			return nil, ErrAlreadyAnswered
		}
		return nil, err
	}

	if content.UserID != userID {
		if err = s.notifier.NotifyQAAnswer(ctx, content.UserID, userID, contentID); err != nil {
			log.WarnContext(ctx, "notify qa answer failed", "err", err, "contentID", contentID)
		}
	}

	return s.toAnswerDTO(ctx, answer, "")
}

func (s *answerServiceImpl) ListAnswers(ctx context.Context, contentID uint64, viewerID uint64) ([]*dto.AnswerDTO, error) {
	content, err := s.contentRepo.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	if content.ContentType != model.ContentTypeQA {
		return nil, ErrNotQuestion
	}

	answers, err := s.answerRepo.ListAnswers(ctx, contentID)
	if err != nil {
		return nil, err
	}

	var viewerVote *model.QAAnswerVote
	if viewerID != 0 {
		viewerVote, err = s.answerRepo.GetAnswerVote(ctx, viewerID, contentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	result := make([]*dto.AnswerDTO, 0, len(answers))
	for _, answer := range answers {
		voted := ""
		if viewerVote != nil && viewerVote.AnswerID == answer.ID {
			voted = viewerVote.Kind
		}
		item, err := s.toAnswerDTO(ctx, answer, voted)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *answerServiceImpl) toAnswerDTO(ctx context.Context, answer *model.QAAnswer, viewerVote string) (*dto.AnswerDTO, error) {
	item := &dto.AnswerDTO{}
	if err := copier.Copy(item, answer); err != nil {
		return nil, err
	}
	item.CreatedAt = answer.CreatedAt.Format(time.RFC3339)
	user, err := s.userRepo.GetUserByID(ctx, answer.UserID)
	if err == nil {
		item.Username = user.Username
	}
	item.ViewerVote = viewerVote
	return item, nil
}

func (s *answerServiceImpl) VoteOnAnswer(ctx context.Context, userID, answerID uint64, kind string) (float64, error) {
	if kind != model.VoteKindUp && kind != model.VoteKindDown {
		return 0, ErrParamInvalid
	}

	var newScore float64
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		answerRepo := s.answerRepo.WithTx(tx)

		answer, err := answerRepo.GetAnswerForUpdate(ctx, answerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAnswerNotFound
			}
			return err
		}

		existing, err := answerRepo.GetAnswerVote(ctx, userID, answer.ContentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 同一问题下旧票先迁出，旧答案重算后新票才落账；
		// 同答案同票型是幂等写入，账本不动只重算
		if existing != nil && !(existing.AnswerID == answer.ID && existing.Kind == kind) {
			if err = answerRepo.DeleteAnswerVote(ctx, userID, answer.ContentID); err != nil {
				return err
			}
			if existing.AnswerID != answer.ID {
				if _, err = s.scoreService.RecomputeAnswerWith(ctx, answerRepo, existing.AnswerID); err != nil {
					return err
				}
			}
			existing = nil
		}

		if existing == nil {
			err = answerRepo.CreateAnswerVote(ctx, &model.QAAnswerVote{
				UserID:    userID,
				ContentID: answer.ContentID,
				AnswerID:  answer.ID,
				Kind:      kind,
				CreatedAt: s.now(),
			})
			if err != nil {
				if isDuplicateError(err) {
					return ErrActionDuplicate
				}
				return err
			}
		}

		newScore, err = s.scoreService.RecomputeAnswerWith(ctx, answerRepo, answer.ID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newScore, nil
}

func (s *answerServiceImpl) RevokeAnswerVote(ctx context.Context, userID, contentID uint64) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		answerRepo := s.answerRepo.WithTx(tx)

		existing, err := answerRepo.GetAnswerVote(ctx, userID, contentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVoteNotFound
			}
			return err
		}
		if err = answerRepo.DeleteAnswerVote(ctx, userID, contentID); err != nil {
			return err
		}
		_, err = s.scoreService.RecomputeAnswerWith(ctx, answerRepo, existing.AnswerID)
		return err
	})
}

package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/model"
	"context"
	"testing"
	"time"

	"gorm.io/gorm"
)

type stubNotificationService struct {
	qaAnswerCalls int
	remixCalls    int
}

func (s *stubNotificationService) NotifyRemix(ctx context.Context, recipientID, actorID, contentID uint64) error {
	s.remixCalls++
	return nil
}

func (s *stubNotificationService) NotifyQAAnswer(ctx context.Context, recipientID, actorID, contentID uint64) error {
	s.qaAnswerCalls++
	return nil
}

func (s *stubNotificationService) GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error) {
	return nil, nil
}

func (s *stubNotificationService) GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error) {
	return &dto.NotificationUnreadDTO{}, nil
}

func (s *stubNotificationService) MarkRead(ctx context.Context, userID uint64, msgID string) error {
	return nil
}

func (s *stubNotificationService) MarkAllRead(ctx context.Context, userID uint64) error {
	return nil
}

func newTestAnswerService(answerRepo *fakeAnswerRepo, contentRepo *fakeContentRepo, userRepo *fakeUserRepo, notifier NotificationService) *answerServiceImpl {
	return &answerServiceImpl{
		answerRepo:   answerRepo,
		contentRepo:  contentRepo,
		userRepo:     userRepo,
		scoreService: &scoreServiceImpl{},
		notifier:     notifier,
		now:          func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) },
		inTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
	}
}

func TestAddAnswer(t *testing.T) {
	ctx := context.Background()

	userRepo := newFakeUserRepo(&model.User{ID: 1, Username: "asker"}, &model.User{ID: 2, Username: "helper"})
	contentRepo := newFakeContentRepo(
		&model.Content{ID: 10, UserID: 1, ContentType: model.ContentTypeQA},
		&model.Content{ID: 11, UserID: 1, ContentType: model.ContentTypeText},
	)
	answerRepo := newFakeAnswerRepo()
	notifier := &stubNotificationService{}
	svc := newTestAnswerService(answerRepo, contentRepo, userRepo, notifier)

	if _, err := svc.AddAnswer(ctx, 2, 99, "hi"); err != ErrContentNotFound {
		t.Errorf("不存在的问题 err = %v, want ErrContentNotFound", err)
	}
	if _, err := svc.AddAnswer(ctx, 2, 11, "hi"); err != ErrNotQuestion {
		t.Errorf("非问答内容 err = %v, want ErrNotQuestion", err)
	}

	answer, err := svc.AddAnswer(ctx, 2, 10, "try turning it off and on")
	if err != nil {
		t.Fatalf("AddAnswer() error = %v", err)
	}
	if answer.Username != "helper" {
		t.Errorf("username = %q, want helper", answer.Username)
	}
	if notifier.qaAnswerCalls != 1 {
		t.Errorf("应通知提问者一次, got %d", notifier.qaAnswerCalls)
	}

	// 同一用户对同一问题只能回答一次
	if _, err = svc.AddAnswer(ctx, 2, 10, "second try"); err != ErrAlreadyAnswered {
		t.Errorf("重复回答 err = %v, want ErrAlreadyAnswered", err)
	}

	// 提问者自答不发通知
	if _, err = svc.AddAnswer(ctx, 1, 10, "answering my own question"); err != nil {
		t.Fatalf("AddAnswer() error = %v", err)
	}
	if notifier.qaAnswerCalls != 1 {
		t.Errorf("自答不应再通知, got %d", notifier.qaAnswerCalls)
	}
}

func TestVoteOnAnswerMigration(t *testing.T) {
	ctx := context.Background()

	userRepo := newFakeUserRepo(&model.User{ID: 1}, &model.User{ID: 2}, &model.User{ID: 3}, &model.User{ID: 4})
	contentRepo := newFakeContentRepo(&model.Content{ID: 10, UserID: 1, ContentType: model.ContentTypeQA})
	answerRepo := newFakeAnswerRepo(
		&model.QAAnswer{ID: 100, ContentID: 10, UserID: 2},
		&model.QAAnswer{ID: 101, ContentID: 10, UserID: 3},
	)
	svc := newTestAnswerService(answerRepo, contentRepo, userRepo, &stubNotificationService{})

	if _, err := svc.VoteOnAnswer(ctx, 4, 100, model.VoteKindSuperUp); err != ErrParamInvalid {
		t.Errorf("回答不支持超级赞 err = %v, want ErrParamInvalid", err)
	}
	if _, err := svc.VoteOnAnswer(ctx, 4, 999, model.VoteKindUp); err != ErrAnswerNotFound {
		t.Errorf("不存在的回答 err = %v, want ErrAnswerNotFound", err)
	}

	// 给自己的回答投票没有限制
	score, err := svc.VoteOnAnswer(ctx, 2, 100, model.VoteKindUp)
	if err != nil {
		t.Fatalf("自己给自己的回答投票 error = %v", err)
	}
	if score != 1 {
		t.Errorf("score = %v, want 1", score)
	}

	score, err = svc.VoteOnAnswer(ctx, 4, 100, model.VoteKindUp)
	if err != nil {
		t.Fatalf("VoteOnAnswer() error = %v", err)
	}
	if score != 2 {
		t.Errorf("score = %v, want 2", score)
	}
	first, _ := answerRepo.GetAnswer(ctx, 100)
	if first.Score != 2 {
		t.Errorf("score = %v, want 2", first.Score)
	}

	// 同一答案同票型重复投是幂等写入，照常返回当前分
	score, err = svc.VoteOnAnswer(ctx, 4, 100, model.VoteKindUp)
	if err != nil {
		t.Fatalf("重复投票 err = %v, want nil", err)
	}
	if score != 2 {
		t.Errorf("重复投后 score = %v, want 2", score)
	}

	// 换答案投票：旧票迁出，两个答案都重算
	score, err = svc.VoteOnAnswer(ctx, 4, 101, model.VoteKindUp)
	if err != nil {
		t.Fatalf("VoteOnAnswer() error = %v", err)
	}
	if score != 1 {
		t.Errorf("新答案 score = %v, want 1", score)
	}
	first, _ = answerRepo.GetAnswer(ctx, 100)
	second, _ := answerRepo.GetAnswer(ctx, 101)
	if first.Score != 1 {
		t.Errorf("旧答案 score = %v, want 1", first.Score)
	}
	if second.Score != 1 {
		t.Errorf("新答案 score = %v, want 1", second.Score)
	}

	// 同一答案换票型
	score, err = svc.VoteOnAnswer(ctx, 4, 101, model.VoteKindDown)
	if err != nil {
		t.Fatalf("VoteOnAnswer() error = %v", err)
	}
	if score != -0.33 {
		t.Errorf("改踩后 score = %v, want -0.33", score)
	}
	second, _ = answerRepo.GetAnswer(ctx, 101)
	if second.Score != -0.33 {
		t.Errorf("改踩后 score = %v, want -0.33", second.Score)
	}
}

func TestRevokeAnswerVote(t *testing.T) {
	ctx := context.Background()

	userRepo := newFakeUserRepo(&model.User{ID: 1}, &model.User{ID: 2}, &model.User{ID: 4})
	contentRepo := newFakeContentRepo(&model.Content{ID: 10, UserID: 1, ContentType: model.ContentTypeQA})
	answerRepo := newFakeAnswerRepo(&model.QAAnswer{ID: 100, ContentID: 10, UserID: 2})
	svc := newTestAnswerService(answerRepo, contentRepo, userRepo, &stubNotificationService{})

	if err := svc.RevokeAnswerVote(ctx, 4, 10); err != ErrVoteNotFound {
		t.Errorf("无票可撤 err = %v, want ErrVoteNotFound", err)
	}

	if _, err := svc.VoteOnAnswer(ctx, 4, 100, model.VoteKindDown); err != nil {
		t.Fatalf("VoteOnAnswer() error = %v", err)
	}
	if err := svc.RevokeAnswerVote(ctx, 4, 10); err != nil {
		t.Fatalf("RevokeAnswerVote() error = %v", err)
	}
	answer, _ := answerRepo.GetAnswer(ctx, 100)
	if answer.Score != 0 {
		t.Errorf("撤票后 score = %v, want 0", answer.Score)
	}
}

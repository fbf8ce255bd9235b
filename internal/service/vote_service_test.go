package service

import (
	"Mosaic/internal/model"
	"context"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTestVoteService(userRepo *fakeUserRepo, contentRepo *fakeContentRepo, voteRepo *fakeVoteRepo, now time.Time) *voteServiceImpl {
	return &voteServiceImpl{
		voteRepo:     voteRepo,
		contentRepo:  contentRepo,
		userRepo:     userRepo,
		scoreService: &scoreServiceImpl{},
		now:          func() time.Time { return now },
		inTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
	}
}

func TestCastVoteBasics(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	userRepo := newFakeUserRepo(&model.User{ID: 1}, &model.User{ID: 2})
	contentRepo := newFakeContentRepo(&model.Content{ID: 10, UserID: 1})
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(userRepo, contentRepo, voteRepo, now)

	if _, err := svc.CastVote(ctx, 2, 10, "sideways"); err != ErrParamInvalid {
		t.Errorf("非法票型 err = %v, want ErrParamInvalid", err)
	}
	if _, err := svc.CastVote(ctx, 2, 99, model.VoteKindUp); err != ErrContentNotFound {
		t.Errorf("不存在的内容 err = %v, want ErrContentNotFound", err)
	}
	if _, err := svc.CastVote(ctx, 1, 10, model.VoteKindUp); err != ErrSelfVote {
		t.Errorf("自投 err = %v, want ErrSelfVote", err)
	}

	score, err := svc.CastVote(ctx, 2, 10, model.VoteKindUp)
	if err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if score != 1 {
		t.Errorf("score = %v, want 1", score)
	}

	// 同票型重复投是幂等写入，照常返回当前分
	score, err = svc.CastVote(ctx, 2, 10, model.VoteKindUp)
	if err != nil {
		t.Fatalf("重复投 err = %v, want nil", err)
	}
	if score != 1 {
		t.Errorf("重复投后 score = %v, want 1", score)
	}

	// 改票后重算
	score, err = svc.CastVote(ctx, 2, 10, model.VoteKindDown)
	if err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if score != -0.33 {
		t.Errorf("score = %v, want -0.33", score)
	}
}

func TestCastVoteSuperUpvoteImmutable(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	userRepo := newFakeUserRepo(&model.User{ID: 1}, &model.User{ID: 2})
	contentRepo := newFakeContentRepo(&model.Content{ID: 10, UserID: 1})
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(userRepo, contentRepo, voteRepo, now)

	score, err := svc.CastVote(ctx, 2, 10, model.VoteKindSuperUp)
	if err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if score != 10 {
		t.Errorf("score = %v, want 10", score)
	}

	// 重复投同样的超级赞是幂等写入，不再扣额度
	score, err = svc.CastVote(ctx, 2, 10, model.VoteKindSuperUp)
	if err != nil {
		t.Fatalf("重复超级赞 err = %v, want nil", err)
	}
	if score != 10 {
		t.Errorf("score = %v, want 10", score)
	}

	// 超级赞不可改不可撤
	if _, err = svc.CastVote(ctx, 2, 10, model.VoteKindDown); err != ErrVoteImmutable {
		t.Errorf("改超级赞 err = %v, want ErrVoteImmutable", err)
	}
	if err = svc.RevokeVote(ctx, 2, 10); err != ErrVoteImmutable {
		t.Errorf("撤超级赞 err = %v, want ErrVoteImmutable", err)
	}
}

func TestCastVoteDailyAllowance(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)

	userRepo := newFakeUserRepo(&model.User{ID: 1}, &model.User{ID: 2})
	contentRepo := newFakeContentRepo(
		&model.Content{ID: 10, UserID: 1, Title: "今日最佳"},
		&model.Content{ID: 11, UserID: 1},
	)
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(userRepo, contentRepo, voteRepo, now)

	if _, err := svc.CastVote(ctx, 2, 10, model.VoteKindSuperUp); err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}

	// 当天额度已用完
	if _, err := svc.CastVote(ctx, 2, 11, model.VoteKindSuperUp); err != ErrAllowanceExhausted {
		t.Errorf("当日第二次超级赞 err = %v, want ErrAllowanceExhausted", err)
	}
	status, err := svc.GetAllowanceStatus(ctx, 2)
	if err != nil {
		t.Fatalf("GetAllowanceStatus() error = %v", err)
	}
	if !status.Used {
		t.Errorf("当日额度应显示已用")
	}
	if status.ContentID == nil || *status.ContentID != 10 {
		t.Errorf("ContentID = %v, want 10", status.ContentID)
	}
	if status.ContentTitle != "今日最佳" {
		t.Errorf("ContentTitle = %q, want 今日最佳", status.ContentTitle)
	}
	if status.UsedAt != "2026-08-29T23:59:59Z" {
		t.Errorf("UsedAt = %q, want 2026-08-29T23:59:59Z", status.UsedAt)
	}
	if status.ResetsAt != "2026-08-30T00:00:00Z" {
		t.Errorf("ResetsAt = %q, want 2026-08-30T00:00:00Z", status.ResetsAt)
	}

	// 跨过零点后额度恢复，无需任何重置任务
	svc.now = func() time.Time {
		return time.Date(2026, 8, 30, 0, 0, 1, 0, time.UTC)
	}
	status, err = svc.GetAllowanceStatus(ctx, 2)
	if err != nil {
		t.Fatalf("GetAllowanceStatus() error = %v", err)
	}
	if status.Used {
		t.Errorf("次日额度应恢复")
	}
	if status.ContentID != nil || status.UsedAt != "" {
		t.Errorf("额度未用时不应带使用明细")
	}
	if status.ResetsAt != "2026-08-31T00:00:00Z" {
		t.Errorf("ResetsAt = %q, want 2026-08-31T00:00:00Z", status.ResetsAt)
	}
	if _, err = svc.CastVote(ctx, 2, 11, model.VoteKindSuperUp); err != nil {
		t.Errorf("次日超级赞 err = %v, want nil", err)
	}
}

func TestCastVoteUpgradeToSuperConsumesAllowance(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	userRepo := newFakeUserRepo(&model.User{ID: 1}, &model.User{ID: 2})
	contentRepo := newFakeContentRepo(&model.Content{ID: 10, UserID: 1})
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(userRepo, contentRepo, voteRepo, now)

	if _, err := svc.CastVote(ctx, 2, 10, model.VoteKindUp); err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	score, err := svc.CastVote(ctx, 2, 10, model.VoteKindSuperUp)
	if err != nil {
		t.Fatalf("升级为超级赞 error = %v", err)
	}

	user, _ := userRepo.GetUserByID(ctx, 2)
	if user.LastSuperUpvoteAt == nil || !user.LastSuperUpvoteAt.Equal(now) {
		t.Errorf("升级为超级赞也应消耗当日额度")
	}
	if score != 10 {
		t.Errorf("score = %v, want 10", score)
	}
}

func TestRevokeVote(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	userRepo := newFakeUserRepo(&model.User{ID: 1}, &model.User{ID: 2})
	contentRepo := newFakeContentRepo(&model.Content{ID: 10, UserID: 1})
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(userRepo, contentRepo, voteRepo, now)

	if err := svc.RevokeVote(ctx, 2, 10); err != ErrVoteNotFound {
		t.Errorf("无票可撤 err = %v, want ErrVoteNotFound", err)
	}

	if _, err := svc.CastVote(ctx, 2, 10, model.VoteKindDown); err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if err := svc.RevokeVote(ctx, 2, 10); err != nil {
		t.Fatalf("RevokeVote() error = %v", err)
	}

	content, _ := contentRepo.GetContent(ctx, 10)
	if content.Score != 0 {
		t.Errorf("撤票后 score = %v, want 0", content.Score)
	}
	if kind, _ := svc.GetVote(ctx, 2, 10); kind != "" {
		t.Errorf("撤票后 kind = %q, want 空", kind)
	}
}

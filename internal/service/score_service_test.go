package service

import (
	"Mosaic/internal/model"
	"context"
	"testing"
)

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name      string
		counts    model.VoteCounts
		viewCount int64
		want      float64
	}{
		{
			name: "零票零浏览",
			want: 0,
		},
		{
			name:   "普通赞踩",
			counts: model.VoteCounts{Up: 5, Down: 3},
			want:   4,
		},
		{
			name:   "超级赞十倍权重",
			counts: model.VoteCounts{Up: 2, SuperUp: 1},
			want:   12,
		},
		{
			name:   "单踩三分之一权重保留两位",
			counts: model.VoteCounts{Down: 1},
			want:   -0.33,
		},
		{
			name:      "浏览量每满100加0.1",
			counts:    model.VoteCounts{Up: 5, SuperUp: 1, Down: 3},
			viewCount: 250,
			want:      14.25,
		},
		{
			name:      "不足100的浏览按比例计入",
			viewCount: 50,
			want:      0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeScore(&tt.counts, tt.viewCount)
			if got != tt.want {
				t.Errorf("computeScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextArchived(t *testing.T) {
	tests := []struct {
		name        string
		score       float64
		wasArchived bool
		want        bool
	}{
		{name: "跌破-10归档", score: -10.01, wasArchived: false, want: true},
		{name: "恰好-10不归档", score: -10, wasArchived: false, want: false},
		{name: "死区内未归档保持", score: -5, wasArchived: false, want: false},
		{name: "死区内已归档保持", score: -5, wasArchived: true, want: true},
		{name: "回到0解档", score: 0, wasArchived: true, want: false},
		{name: "负一仍不解档", score: -1, wasArchived: true, want: true},
		{name: "正分未归档不变", score: 3.5, wasArchived: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextArchived(tt.score, tt.wasArchived)
			if got != tt.want {
				t.Errorf("nextArchived(%v, %v) = %v, want %v", tt.score, tt.wasArchived, got, tt.want)
			}
		})
	}
}

func TestComputeAnswerScore(t *testing.T) {
	tests := []struct {
		name string
		up   int64
		down int64
		want float64
	}{
		{name: "零票", want: 0},
		{name: "只有赞", up: 4, want: 4},
		{name: "踩按0.33权重", up: 3, down: 2, want: 2.34},
		{name: "负分保留两位", down: 3, want: -0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeAnswerScore(tt.up, tt.down)
			if got != tt.want {
				t.Errorf("computeAnswerScore(%v, %v) = %v, want %v", tt.up, tt.down, got, tt.want)
			}
		})
	}
}

func TestRecomputeContentWith(t *testing.T) {
	ctx := context.Background()

	voteRepo := newFakeVoteRepo()
	contentRepo := newFakeContentRepo(&model.Content{ID: 1, UserID: 100})

	for i := uint64(1); i <= 5; i++ {
		_ = voteRepo.CreateVote(ctx, &model.Vote{UserID: i, ContentID: 1, Kind: model.VoteKindDown})
	}

	svc := &scoreServiceImpl{}
	score, err := svc.RecomputeContentWith(ctx, voteRepo, contentRepo, 1)
	if err != nil {
		t.Fatalf("RecomputeContentWith() error = %v", err)
	}
	if score != -1.67 {
		t.Errorf("返回分 = %v, want -1.67", score)
	}

	content, _ := contentRepo.GetContent(ctx, 1)
	if content.Score != -1.67 {
		t.Errorf("score = %v, want -1.67", content.Score)
	}
	if content.IsArchived {
		t.Errorf("5票踩不应触发归档")
	}

	// 继续踩到30票之后越过归档阈值
	for i := uint64(6); i <= 31; i++ {
		_ = voteRepo.CreateVote(ctx, &model.Vote{UserID: i, ContentID: 1, Kind: model.VoteKindDown})
	}
	score, err = svc.RecomputeContentWith(ctx, voteRepo, contentRepo, 1)
	if err != nil {
		t.Fatalf("RecomputeContentWith() error = %v", err)
	}
	if score != -10.33 {
		t.Errorf("返回分 = %v, want -10.33", score)
	}
	content, _ = contentRepo.GetContent(ctx, 1)
	if content.Score != -10.33 {
		t.Errorf("score = %v, want -10.33", content.Score)
	}
	if !content.IsArchived {
		t.Errorf("跌破-10应归档")
	}

	// 撤掉一票回到死区，归档状态保持
	_ = voteRepo.DeleteVote(ctx, 31, 1)
	if _, err = svc.RecomputeContentWith(ctx, voteRepo, contentRepo, 1); err != nil {
		t.Fatalf("RecomputeContentWith() error = %v", err)
	}
	content, _ = contentRepo.GetContent(ctx, 1)
	if content.Score != -10 {
		t.Errorf("score = %v, want -10", content.Score)
	}
	if !content.IsArchived {
		t.Errorf("死区内已归档内容不应解档")
	}

	// 超级赞把分数拉回0以上才解档
	_ = voteRepo.CreateVote(ctx, &model.Vote{UserID: 200, ContentID: 1, Kind: model.VoteKindSuperUp})
	if _, err = svc.RecomputeContentWith(ctx, voteRepo, contentRepo, 1); err != nil {
		t.Fatalf("RecomputeContentWith() error = %v", err)
	}
	content, _ = contentRepo.GetContent(ctx, 1)
	if content.Score != 0 {
		t.Errorf("score = %v, want 0", content.Score)
	}
	if content.IsArchived {
		t.Errorf("回到0应解档")
	}
}

func TestRecomputeContentWithMissingContent(t *testing.T) {
	svc := &scoreServiceImpl{}
	_, err := svc.RecomputeContentWith(context.Background(), newFakeVoteRepo(), newFakeContentRepo(), 99)
	if err != ErrContentNotFound {
		t.Errorf("err = %v, want ErrContentNotFound", err)
	}
}

package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/model"
	"context"
	"strings"
	"testing"
	"time"
)

func TestCreateContentRules(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	contentRepo := newFakeContentRepo(
		&model.Content{ID: 10, UserID: 1, ContentType: model.ContentTypeImage},
		&model.Content{ID: 11, UserID: 1, ContentType: model.ContentTypeQA},
	)
	svc := &contentServiceImpl{
		contentRepo: contentRepo,
		now:         func() time.Time { return now },
	}

	missing := uint64(99)
	qa := uint64(11)
	own := uint64(10)

	cases := []struct {
		name    string
		userID  uint64
		req     *dto.ContentBaseDTO
		wantErr error
	}{
		{
			name:    "二创原作不存在",
			userID:  2,
			req:     &dto.ContentBaseDTO{Description: "remix #tag", RemixOf: &missing},
			wantErr: ErrContentNotFound,
		},
		{
			name:    "问答不能二创",
			userID:  2,
			req:     &dto.ContentBaseDTO{Description: "remix #tag", RemixOf: &qa},
			wantErr: ErrRemixQA,
		},
		{
			name:    "不能二创自己的内容",
			userID:  1,
			req:     &dto.ContentBaseDTO{Description: "remix #tag", RemixOf: &own},
			wantErr: ErrSelfRemix,
		},
		{
			name:   "问答描述过长",
			userID: 2,
			req: &dto.ContentBaseDTO{
				ContentType: model.ContentTypeQA,
				Description: strings.Repeat("问", 501),
			},
			wantErr: ErrParamInvalid,
		},
		{
			name:    "普通内容必须带标签",
			userID:  2,
			req:     &dto.ContentBaseDTO{Description: "no tags here"},
			wantErr: ErrHashtagRequired,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := svc.CreateContent(ctx, c.userID, c.req); err != c.wantErr {
				t.Errorf("CreateContent() err = %v, want %v", err, c.wantErr)
			}
		})
	}
}

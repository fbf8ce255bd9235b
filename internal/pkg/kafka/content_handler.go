package kafka

import (
	"Mosaic/internal/pkg/es"
	"Mosaic/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// ContentsHandler 消费 contents 表的 Canal 变更，同步到 ES 搜索索引
type ContentsHandler struct {
	userDBRepo    repository.UserRepo
	hashtagDBRepo repository.HashtagRepo
	contentESRepo es.ContentRepo
}

func NewContentsHandler(userDBRepo repository.UserRepo, hashtagDBRepo repository.HashtagRepo, contentESRepo es.ContentRepo) *ContentsHandler {
	return &ContentsHandler{
		userDBRepo:    userDBRepo,
		hashtagDBRepo: hashtagDBRepo,
		contentESRepo: contentESRepo,
	}
}

func (s *ContentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("content consumer setup")
	return nil
}

func (s *ContentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("content consumer cleanup")
	return nil
}

func (s *ContentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-content consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-content process batch error", "err", err)
		return err
	}
	log.Info("topic-content consume claim end")
	return nil
}

func (s *ContentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "contents")
	if err != nil {
		return err
	}

	if canalMsg.Type == DELETE {
		return s.contentESRepo.DeleteContent(ctx, StrToUint64(canalMsg.Data[0]["id"]))
	}
	if canalMsg.Type != INSERT && canalMsg.Type != UPDATE {
		return nil
	}

	content := s.toESModel(canalMsg)

	tags, err := s.hashtagDBRepo.ListHashtagsByContent(ctx, content.ID)
	if err != nil {
		return err
	}
	if tags == nil {
		tags = make([]string, 0)
	}
	content.Hashtags = tags

	user, err := s.userDBRepo.GetUserByID(ctx, content.UserID)
	if err != nil {
		return errors.Wrap(err, "content index: load author failed")
	}
	content.Username = user.Username

	return s.contentESRepo.IndexContent(ctx, content, canalMsg.TS)
}

func (s *ContentsHandler) toESModel(message *CanalMessage) *es.ContentES {
	row := message.Data[0]

	return &es.ContentES{
		ID:          StrToUint64(row["id"]),
		UserID:      StrToUint64(row["user_id"]),
		ContentType: StrToString(row["content_type"]),
		Title:       StrToString(row["title"]),
		Description: StrToString(row["description"]),
		Score:       StrToFloat64(row["score"]),
		ViewCount:   StrToInt64(row["view_count"]),
		IsArchived:  StrToBool(row["is_archived"]),
		IsNSFW:      StrToBool(row["is_nsfw"]),
		CreatedAt:   StrToDateTime(row["created_at"]),
		UpdatedAt:   StrToDateTime(row["updated_at"]),
	}
}

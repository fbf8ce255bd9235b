package kafka

import (
	"Mosaic/internal/pkg/es"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// UsersHandler 消费 users 表的 Canal 变更，把用户名改动回填到内容索引
type UsersHandler struct {
	contentESRepo es.ContentRepo
}

func NewUsersHandler(contentESRepo es.ContentRepo) *UsersHandler {
	return &UsersHandler{
		contentESRepo: contentESRepo,
	}
}

func (s *UsersHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer setup")
	return nil
}

func (s *UsersHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer cleanup")
	return nil
}

func (s *UsersHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-user process batch error", "err", err)
		return err
	}
	log.Info("topic-user consume claim end")
	return nil
}

func (s *UsersHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "users")
	if err != nil {
		return err
	}

	if canalMsg.Type != UPDATE || len(canalMsg.Old) == 0 {
		return nil
	}

	// 只关心用户名变更
	if _, changed := canalMsg.Old[0]["username"]; !changed {
		return nil
	}

	row := canalMsg.Data[0]
	userID := StrToUint64(row["id"])
	newUsername := StrToString(row["username"])

	log.InfoContext(ctx, "username changed, sync content index", "userID", userID)
	return s.contentESRepo.UpdateContentUsername(ctx, userID, newUsername)
}

package kafka

import (
	"Mosaic/internal/api/config"
	"Mosaic/internal/pkg/es"
	"Mosaic/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	contentConsumer sarama.ConsumerGroup
	contentHandler  sarama.ConsumerGroupHandler

	userConsumer sarama.ConsumerGroup
	userHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	contentESRepo es.ContentRepo,
	userDBRepo repository.UserRepo,
	hashtagDBRepo repository.HashtagRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	contentConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaContentConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	contentHandler := NewContentsHandler(userDBRepo, hashtagDBRepo, contentESRepo)

	userConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaUserConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	userHandler := NewUsersHandler(contentESRepo)

	return &ConsumerManager{
		contentConsumer: contentConsumer,
		contentHandler:  contentHandler,
		userConsumer:    userConsumer,
		userHandler:     userHandler,
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 取消
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaContentConsumer.Topic
		log.Info("Content consumer started", "topic", topic)
		for {
			if err := m.contentConsumer.Consume(ctx, []string{topic}, m.contentHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		topic := cfg.KafkaUserConsumer.Topic
		log.Info("User consumer started", "topic", topic)
		for {
			if err := m.userConsumer.Consume(ctx, []string{topic}, m.userHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.contentConsumer.Close(); err != nil {
		log.Error("Failed to close content consumer", "err", err)
	}
	if err := m.userConsumer.Close(); err != nil {
		log.Error("Failed to close user consumer", "err", err)
	}

	return nil
}

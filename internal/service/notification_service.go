package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/pkg/consts"
	"Mosaic/internal/pkg/mongo"
	"Mosaic/internal/pkg/redis"
	"Mosaic/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	// NotifyRemix 内容被二创时通知原作者，作者关掉该偏好则跳过
	NotifyRemix(ctx context.Context, recipientID, actorID, contentID uint64) error
	// NotifyQAAnswer 问题有新回答时通知提问者
	NotifyQAAnswer(ctx context.Context, recipientID, actorID, contentID uint64) error

	GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error)
	MarkRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notificationRepo mongo.NotificationRepo
	userRepo         repository.UserRepo
	contentRepo      repository.ContentRepo
}

func NewNotificationService(notificationRepo mongo.NotificationRepo, userRepo repository.UserRepo, contentRepo repository.ContentRepo) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		contentRepo:      contentRepo,
	}
}

func (s *notificationServiceImpl) NotifyRemix(ctx context.Context, recipientID, actorID, contentID uint64) error {
	return s.notify(ctx, recipientID, actorID, contentID, consts.NotificationTypeRemix)
}

func (s *notificationServiceImpl) NotifyQAAnswer(ctx context.Context, recipientID, actorID, contentID uint64) error {
	return s.notify(ctx, recipientID, actorID, contentID, consts.NotificationTypeQAAnswer)
}

func (s *notificationServiceImpl) notify(ctx context.Context, recipientID, actorID, contentID uint64, notifyType int8) error {
	recipient, err := s.userRepo.GetUserByID(ctx, recipientID)
	if err != nil {
		return err
	}
	switch notifyType {
	case consts.NotificationTypeRemix:
		if !recipient.NotifyOnRemix {
			return nil
		}
	case consts.NotificationTypeQAAnswer:
		if !recipient.NotifyOnQAAnswer {
			return nil
		}
	}

	err = s.notificationRepo.CreateNotification(ctx, &mongo.NotificationModel{
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        notifyType,
		ContentID:   contentID,
		IsRead:      false,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return err
	}

	// 未读数缓存失效，下次查询回源重建
	key := consts.NotificationUnreadKey + strconv.FormatUint(recipientID, 10)
	if err = redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "invalidate unread cache failed", "err", err, "key", key)
	}
	return nil
}

// GetNotificationList 获取通知列表并补全用户信息
func (s *notificationServiceImpl) GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error) {
	limit := int64(pageSize)
	offset := int64((page - 1) * pageSize)

	list, err := s.notificationRepo.GetNotificationList(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, m := range list {
		d := &dto.NotificationDTO{}
		_ = copier.Copy(d, m)
		d.ID = m.ID.Hex()
		d.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)

		if m.ActorID > 0 {
			actor, err := s.userRepo.GetUserByID(ctx, m.ActorID)
			if err == nil && actor != nil {
				d.ActorName = actor.Username
			}
		}
		// 内容可能已删除，标题补不上就留空
		if content, err := s.contentRepo.GetContent(ctx, m.ContentID); err == nil {
			d.ContentTitle = content.Title
		}

		res = append(res, d)
	}

	return res, nil
}

// GetUnreadCount 获取未读数，短缓存挡住轮询
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error) {
	key := consts.NotificationUnreadKey + strconv.FormatUint(userID, 10)
	if cached, err := redis.GetInt64(ctx, key); err == nil {
		return &dto.NotificationUnreadDTO{UnreadCount: cached}, nil
	}

	count, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err = redis.SetWithExpiration(ctx, key, count, time.Minute); err != nil {
		log.WarnContext(ctx, "cache unread count failed", "err", err, "key", key)
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 标记单条已读
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID uint64, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return ErrParamInvalid
	}

	notice, err := s.notificationRepo.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		return err
	}

	if notice.RecipientID != userID {
		return UnauthorizedError
	}

	if notice.IsRead {
		return nil
	}

	if err = s.notificationRepo.MarkAsRead(ctx, userID, msgID); err != nil {
		return err
	}
	return redis.DeleteKey(ctx, consts.NotificationUnreadKey+strconv.FormatUint(userID, 10))
}

// MarkAllRead 一键已读
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	return redis.DeleteKey(ctx, consts.NotificationUnreadKey+strconv.FormatUint(userID, 10))
}

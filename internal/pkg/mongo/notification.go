package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationModel 通知模型
type NotificationModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID uint64             `bson:"recipient_id" json:"recipientId"` // 消息接收者ID
	ActorID     uint64             `bson:"actor_id" json:"actorId"`         // 动作发起者ID
	Type        int8               `bson:"type" json:"type"`                // 通知类型: 1-二创, 2-问答回答
	ContentID   uint64             `bson:"content_id" json:"contentId"`     // 关联的内容ID
	IsRead      bool               `bson:"is_read" json:"isRead"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

package dto

// NotificationDTO 通知返回对象
type NotificationDTO struct {
	ID        string `json:"id"`
	ActorID   uint64 `json:"actor_id"`
	ActorName string `json:"actor_name"`
	Type         int8   `json:"type"` // 1-二创, 2-问答回答
	ContentID    uint64 `json:"content_id"`
	ContentTitle string `json:"content_title,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// NotificationUnreadDTO 未读数返回
type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

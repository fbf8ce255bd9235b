package model

import (
	"time"
)

type ContentMedia struct {
	ID        uint64    `gorm:"primaryKey"`
	ContentID uint64    `gorm:"not null;index:idx_content_id" json:"contentId"`
	URL       string    `gorm:"type:varchar(512);not null" json:"url"`
	ThumbURL  *string   `gorm:"type:varchar(512)" json:"thumbUrl"`
	MimeType  string    `gorm:"type:varchar(64)" json:"mimeType"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ContentMedia) TableName() string {
	return "content_media"
}

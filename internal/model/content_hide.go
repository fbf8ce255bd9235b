package model

import (
	"time"
)

type ContentHide struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	ContentID uint64    `gorm:"primaryKey;index:idx_content_id" json:"contentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ContentHide) TableName() string {
	return "content_hides"
}

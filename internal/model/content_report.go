package model

import (
	"time"
)

type ContentReport struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	ContentID uint64    `gorm:"primaryKey;index:idx_content_id" json:"contentId"`
	Reason    string    `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ContentReport) TableName() string {
	return "content_reports"
}

package model

import (
	"time"
)

type QAAnswer struct {
	ID        uint64    `gorm:"primaryKey"`
	ContentID uint64    `gorm:"not null;uniqueIndex:idx_content_user" json:"contentId"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_content_user" json:"userId"`
	Text      string    `gorm:"type:varchar(440);not null" json:"text"`
	Score     float64   `gorm:"type:decimal(10,2);not null;default:0" json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

func (QAAnswer) TableName() string {
	return "qa_answers"
}

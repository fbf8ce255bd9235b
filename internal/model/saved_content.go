package model

import (
	"time"
)

type SavedContent struct {
	ID           uint64    `gorm:"primaryKey"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_user_content" json:"userId"`
	ContentID    uint64    `gorm:"not null;uniqueIndex:idx_user_content;index:idx_content_id" json:"contentId"`
	CollectionID *uint64   `gorm:"index:idx_collection_id" json:"collectionId"`
	Note         string    `gorm:"type:varchar(255)" json:"note"`
	CreatedAt    time.Time `json:"savedAt"`

	Content    Content     `gorm:"foreignKey:ContentID;references:ID"`
	Collection *Collection `gorm:"foreignKey:CollectionID;references:ID"`
}

func (SavedContent) TableName() string {
	return "saved_contents"
}

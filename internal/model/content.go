package model

import (
	"time"
)

const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
	ContentTypeQA    = "qa"
)

type Content struct {
	ID          uint64 `gorm:"primaryKey"`
	UserID      uint64 `gorm:"not null;index:idx_user_id" json:"user_id"`
	ContentType string `gorm:"type:varchar(16);not null;default:'text'" json:"content_type"`
	Title       string `gorm:"type:varchar(200)" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	// Score 与 IsArchived 均由打分引擎派生，不允许绕开重算直接改写
	Score      float64 `gorm:"type:decimal(10,2);not null;default:0" json:"score"`
	ViewCount  int64   `gorm:"not null;default:0" json:"view_count"`
	IsArchived bool    `gorm:"type:tinyint(1);not null;default:0;index:idx_archived" json:"is_archived"`

	IsNSFW        bool       `gorm:"type:tinyint(1);not null;default:0" json:"is_nsfw"`
	RemixedFromID *uint64    `gorm:"index:idx_remixed_from" json:"remixed_from_id"`
	RemixCount    int        `gorm:"not null;default:0" json:"remix_count"`
	EditedAt      *time.Time `json:"edited_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// 关联关系
	User        User           `gorm:"foreignKey:UserID;references:ID"`
	Media       []ContentMedia `gorm:"foreignKey:ContentID;references:ID"`
	RemixedFrom *Content       `gorm:"foreignKey:RemixedFromID;references:ID"`
}

func (Content) TableName() string {
	return "contents"
}

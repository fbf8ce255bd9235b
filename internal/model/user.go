package model

import (
	"time"
)

type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(20);not null;uniqueIndex:idx_username" json:"username"`
	Email        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null" json:"-"`

	// 每日超级赞额度：只记录最近一次使用时间，是否可用由读取方按当天零点推导
	LastSuperUpvoteAt *time.Time `json:"lastSuperUpvoteAt"`

	NotifyOnRemix     bool `gorm:"type:tinyint(1);not null;default:1" json:"notifyOnRemix"`
	NotifyOnQAAnswer  bool `gorm:"type:tinyint(1);not null;default:1" json:"notifyOnQAAnswer"`
	HideArchivedPosts bool `gorm:"type:tinyint(1);not null;default:0" json:"hideArchivedPosts"`
	AutoLoadImages    bool `gorm:"type:tinyint(1);not null;default:1" json:"autoLoadImages"`
	ShowNSFW          bool `gorm:"type:tinyint(1);not null;default:0" json:"showNSFW"`
	BlurNSFW          bool `gorm:"type:tinyint(1);not null;default:1" json:"blurNSFW"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

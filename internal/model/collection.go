package model

import (
	"time"
)

type Collection struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_name" json:"userId"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_name" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Collection) TableName() string {
	return "collections"
}

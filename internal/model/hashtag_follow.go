package model

import (
	"time"
)

// HashtagFollow 按标签文本关注，标签不必已有内容
type HashtagFollow struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	Hashtag   string    `gorm:"primaryKey;type:varchar(50);index:idx_hashtag" json:"hashtag"`
	CreatedAt time.Time `json:"createdAt"`
}

func (HashtagFollow) TableName() string {
	return "hashtag_follows"
}

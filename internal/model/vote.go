package model

import (
	"time"
)

const (
	VoteKindUp      = "upvote"
	VoteKindDown    = "downvote"
	VoteKindSuperUp = "super_upvote"
)

// Vote 一条投票账本记录，(user_id, content_id) 联合主键保证一人一票
type Vote struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	ContentID uint64    `gorm:"primaryKey;index:idx_content_id" json:"contentId"`
	Kind      string    `gorm:"type:varchar(16);not null" json:"kind"`
	CreatedAt time.Time `gorm:"index:idx_created_at" json:"createdAt"`
}

func (Vote) TableName() string {
	return "votes"
}

// VoteCounts 按类型统计的票数，打分引擎的输入
type VoteCounts struct {
	Up      int64
	Down    int64
	SuperUp int64
}

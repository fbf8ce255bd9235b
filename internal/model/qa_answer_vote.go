package model

import (
	"time"
)

// QAAnswerVote 问答票：主键按 (user_id, content_id)，即一个问题下每人只有一票，
// 换答案投票时旧票会被迁移而不是并存
type QAAnswerVote struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	ContentID uint64    `gorm:"primaryKey" json:"contentId"`
	AnswerID  uint64    `gorm:"not null;index:idx_answer_id" json:"answerId"`
	Kind      string    `gorm:"type:varchar(16);not null" json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

func (QAAnswerVote) TableName() string {
	return "qa_answer_votes"
}

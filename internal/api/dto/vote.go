package dto

// VoteReq 投票请求
type VoteReq struct {
	ContentID uint64 `json:"content_id" binding:"required"`
	Kind      string `json:"kind" binding:"required,oneof=upvote downvote super_upvote"`
}

// VoteResultDTO 投票落账并重算后的新分
type VoteResultDTO struct {
	Score float64 `json:"score"`
}

// VoteStateDTO 一条内容的投票状态
type VoteStateDTO struct {
	UpCount      int64  `json:"up_count"`
	DownCount    int64  `json:"down_count"`
	SuperUpCount int64  `json:"super_up_count"`
	ViewerVote   string `json:"viewer_vote,omitempty"`
}

// AllowanceDTO 当日超级赞额度状态，已用时带上投给了哪条内容
type AllowanceDTO struct {
	Used         bool    `json:"used"`
	ContentID    *uint64 `json:"content_id,omitempty"`
	ContentTitle string  `json:"content_title,omitempty"`
	UsedAt       string  `json:"used_at,omitempty"`
	ResetsAt     string  `json:"resets_at"`
}

// AnswerCreateDTO 回答问题请求
type AnswerCreateDTO struct {
	ContentID uint64 `json:"content_id" binding:"required"`
	Text      string `json:"text" binding:"required" validate:"min=1,max=440"`
}

// AnswerVoteReq 回答投票请求，只有赞和踩
type AnswerVoteReq struct {
	AnswerID uint64 `json:"answer_id" binding:"required"`
	Kind     string `json:"kind" binding:"required,oneof=upvote downvote"`
}

// AnswerDTO 回答详情
type AnswerDTO struct {
	ID         uint64  `json:"id"`
	ContentID  uint64  `json:"content_id"`
	UserID     uint64  `json:"user_id"`
	Username   string  `json:"username"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	CreatedAt  string  `json:"created_at"`
	ViewerVote string  `json:"viewer_vote,omitempty"`
}

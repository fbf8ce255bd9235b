package dto

// ContentBaseDTO 内容 - 新增或修改，话题标签从描述文本中提取
type ContentBaseDTO struct {
	ContentType string          `json:"content_type" validate:"omitempty,oneof=text image video qa"`
	Title       string          `json:"title" validate:"max=200"`
	Description string          `json:"description" binding:"required" validate:"min=1,max=1000"`
	IsNSFW      bool            `json:"is_nsfw"`
	Medias      []*MediaBaseDTO `json:"medias" validate:"max=9"`
	RemixOf     *uint64         `json:"remix_of,omitempty"`
}

// MediaBaseDTO 媒体 - 基础
type MediaBaseDTO struct {
	MimeType string  `json:"mime_type" binding:"required" validate:"min=1,max=64"`
	MediaURL string  `json:"url" binding:"required" validate:"min=1,max=512"`
	ThumbURL *string `json:"thumb_url,omitempty"`
	Position int     `json:"position"`
}

// ContentDTO 内容详情
type ContentDTO struct {
	ID          uint64 `json:"id"`
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsNSFW      bool   `json:"is_nsfw"`
	IsArchived  bool   `json:"is_archived"`
	ViewCount   int64  `json:"view_count"`
	CreatedAt   string `json:"created_at"`
	EditedAt    string `json:"edited_at,omitempty"`

	// Score 只对作者本人可见
	Score *float64 `json:"score,omitempty"`

	Medias   []*MediaBaseDTO `json:"medias"`
	Hashtags []string        `json:"hashtags"`

	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`

	RemixedFromID *uint64        `json:"remixed_from_id,omitempty"`
	RemixedFrom   *ContentRefDTO `json:"remixed_from,omitempty"`
	RemixCount    int            `json:"remix_count"`

	UpCount      int64 `json:"up_count"`
	DownCount    int64 `json:"down_count"`
	SuperUpCount int64 `json:"super_up_count"`
	AnswerCount  int64 `json:"answer_count,omitempty"`

	ViewerVote string `json:"viewer_vote,omitempty"`
	IsSaved    bool   `json:"is_saved"`
	IsHidden   bool   `json:"is_hidden,omitempty"`
}

// ContentRefDTO 被二创内容的摘要引用
type ContentRefDTO struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
}

// FeedReq 信息流查询
type FeedReq struct {
	PageReq
	Sort        string `form:"sort" validate:"omitempty,oneof=score newest oldest unseen"`
	ContentType string `form:"type" validate:"omitempty,oneof=text image video qa"`
}

// ContentFeedDTO 信息流分页返回
type ContentFeedDTO struct {
	Items   []*ContentDTO `json:"items"`
	HasMore bool          `json:"has_more"`
}

// ReportDTO 举报请求
type ReportDTO struct {
	Reason string `json:"reason" validate:"max=255"`
}

// SearchReq 全文搜索请求
type SearchReq struct {
	Query  string `form:"q" binding:"required"`
	Cursor string `form:"cursor"`
	Size   int    `form:"size"`
}

// SearchResultDTO 搜索返回，cursor 为空表示翻完
type SearchResultDTO struct {
	Items  []*ContentDTO `json:"items"`
	Cursor string        `json:"cursor,omitempty"`
}

package es

import "time"

// ContentES 写入 ES 的完整文档
type ContentES struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Username    string    `json:"username"`
	ContentType string    `json:"content_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Hashtags    []string  `json:"hashtags"`
	Score       float64   `json:"score"`
	ViewCount   int64     `json:"view_count"`
	IsArchived  bool      `json:"is_archived"`
	IsNSFW      bool      `json:"is_nsfw"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Sort 承载 search_after 游标值，不落入文档
	Sort []interface{} `json:"-"`
}

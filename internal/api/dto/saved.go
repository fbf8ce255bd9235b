package dto

// SaveContentReq 收藏请求
type SaveContentReq struct {
	ContentID    uint64  `json:"content_id" binding:"required"`
	CollectionID *uint64 `json:"collection_id,omitempty"`
	Note         string  `json:"note" validate:"max=255"`
}

// SavedContentDTO 收藏条目
type SavedContentDTO struct {
	Content      *ContentDTO `json:"content"`
	CollectionID *uint64     `json:"collection_id,omitempty"`
	Note         string      `json:"note,omitempty"`
	SavedAt      string      `json:"saved_at"`
}

// CollectionCreateDTO 新建收藏夹
type CollectionCreateDTO struct {
	Name string `json:"name" binding:"required" validate:"min=1,max=50"`
}

// CollectionDTO 收藏夹
type CollectionDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	SavedCount int64  `json:"saved_count"`
	CreatedAt  string `json:"created_at"`
}

package model

type ContentHashtag struct {
	ContentID uint64 `gorm:"primaryKey" json:"contentId"`
	HashtagID uint64 `gorm:"primaryKey;index:idx_hashtag_id" json:"hashtagId"`
}

func (ContentHashtag) TableName() string {
	return "content_hashtags"
}

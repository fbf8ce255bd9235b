package dto

// HashtagDTO 话题概览
type HashtagDTO struct {
	Name          string `json:"name"`
	ContentCount  int64  `json:"content_count"`
	FollowerCount int64  `json:"follower_count"`
	IsFollowing   bool   `json:"is_following"`
}

// TrendingHashtagDTO 热榜条目
type TrendingHashtagDTO struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

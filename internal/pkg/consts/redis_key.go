package consts

const (
	ContentVoteCountKey    = "content:vote:count:"
	ContentViewCountKey    = "content:view:count:"
	ContentAnswerCountKey  = "content:answer:count:"
	HashtagTrendingUseKey  = "hashtag:trending:use"
	HashtagTrendingFlwKey  = "hashtag:trending:follow"
	HashtagPostCountKey    = "hashtag:post:count:"
	UserProfileKey         = "user:profile:"
	NotificationUnreadKey  = "notification:unread:"
)

const (
	TrendingRefreshLock = "lock:hashtag:trending"
)

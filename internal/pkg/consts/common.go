package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
)

const (
	NotificationTypeRemix    int8 = 1
	NotificationTypeQAAnswer int8 = 2
)

const (
	TrendingHashtagLimit = 10
	FeedFetchLimit       = 50
	FeedPageLimit        = 20
	NotificationLimit    = 20
)

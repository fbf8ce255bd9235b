package job

import (
	"Mosaic/internal/pkg/consts"
	"Mosaic/internal/pkg/logger"
	"Mosaic/internal/pkg/redis"
	"Mosaic/internal/repository"
	"context"
	log "log/slog"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/google/uuid"
)

const trendingWindowDays = 7

// TrendingHashtagJob 定时刷新话题热榜，结果落到 Redis ZSet
type TrendingHashtagJob struct {
	hashtagRepo repository.HashtagRepo
}

func NewTrendingHashtagJob(hashtagRepo repository.HashtagRepo) *TrendingHashtagJob {
	return &TrendingHashtagJob{
		hashtagRepo: hashtagRepo,
	}
}

func (s *TrendingHashtagJob) Run() {
	traceID := "job-trending-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	// 分布式锁防止多实例重复刷新
	lockValue := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.TrendingRefreshLock, lockValue, 5*time.Minute)
	if err != nil {
		log.ErrorContext(ctx, "acquire trending lock error", "err", err)
		return
	}
	if !locked {
		return
	}
	defer redis.UnLock(ctx, consts.TrendingRefreshLock, lockValue)

	counts, err := s.hashtagRepo.RecentUseCounts(ctx, trendingWindowDays, consts.TrendingHashtagLimit*5)
	if err != nil {
		log.ErrorContext(ctx, "fetch recent hashtag counts error", "err", err)
		return
	}

	members := make([]redisv9.Z, 0, len(counts))
	for name, useCount := range counts {
		followers, err := s.hashtagRepo.CountFollowers(ctx, name)
		if err != nil {
			log.WarnContext(ctx, "count hashtag followers error", "hashtag", name, "err", err)
			followers = 0
		}
		// 热度 = 近期使用量 + 关注数的一半
		members = append(members, redisv9.Z{
			Score:  useCount + float64(followers)*0.5,
			Member: name,
		})
	}

	if len(members) == 0 {
		log.InfoContext(ctx, "trending hashtag job: nothing to rank")
		return
	}

	if err = redis.ZAddBatch(ctx, consts.HashtagTrendingUseKey, members); err != nil {
		log.ErrorContext(ctx, "write trending zset error", "err", err)
		return
	}

	log.InfoContext(ctx, "trending hashtag job finished", "hashtag_count", len(members))
}

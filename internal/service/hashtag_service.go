package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/model"
	"Mosaic/internal/pkg/consts"
	"Mosaic/internal/pkg/redis"
	"Mosaic/internal/repository"
	"context"
	"sort"
	"strings"
	"time"
)

type HashtagService interface {
	// FollowHashtag 按标签文本关注，标签还没有内容也可以关注
	FollowHashtag(ctx context.Context, userID uint64, hashtag string) error
	UnfollowHashtag(ctx context.Context, userID uint64, hashtag string) error
	IsFollowing(ctx context.Context, userID uint64, hashtag string) (bool, error)
	GetFollowing(ctx context.Context, userID uint64) ([]*dto.HashtagDTO, error)
	GetHashtagOverview(ctx context.Context, userID uint64, hashtag string) (*dto.HashtagDTO, error)
	GetTrending(ctx context.Context) ([]*dto.TrendingHashtagDTO, error)
}

type hashtagServiceImpl struct {
	hashtagRepo repository.HashtagRepo

	now func() time.Time
}

func NewHashtagService(hashtagRepo repository.HashtagRepo) HashtagService {
	return &hashtagServiceImpl{
		hashtagRepo: hashtagRepo,
		now:         time.Now,
	}
}

func normalizeHashtag(hashtag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hashtag), "#"))
}

func (s *hashtagServiceImpl) FollowHashtag(ctx context.Context, userID uint64, hashtag string) error {
	name := normalizeHashtag(hashtag)
	if name == "" {
		return ErrParamInvalid
	}

	err := s.hashtagRepo.CreateFollow(ctx, &model.HashtagFollow{
		UserID:    userID,
		Hashtag:   name,
		CreatedAt: s.now(),
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrHashtagFollowExist
		}
		return err
	}
	return nil
}

func (s *hashtagServiceImpl) UnfollowHashtag(ctx context.Context, userID uint64, hashtag string) error {
	return s.hashtagRepo.DeleteFollow(ctx, userID, normalizeHashtag(hashtag))
}

func (s *hashtagServiceImpl) IsFollowing(ctx context.Context, userID uint64, hashtag string) (bool, error) {
	return s.hashtagRepo.CheckFollowExists(ctx, userID, normalizeHashtag(hashtag))
}

func (s *hashtagServiceImpl) GetFollowing(ctx context.Context, userID uint64) ([]*dto.HashtagDTO, error) {
	follows, err := s.hashtagRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.HashtagDTO, 0, len(follows))
	for _, f := range follows {
		item, err := s.buildOverview(ctx, f.Hashtag)
		if err != nil {
			return nil, err
		}
		item.IsFollowing = true
		result = append(result, item)
	}
	return result, nil
}

func (s *hashtagServiceImpl) GetHashtagOverview(ctx context.Context, userID uint64, hashtag string) (*dto.HashtagDTO, error) {
	name := normalizeHashtag(hashtag)
	if name == "" {
		return nil, ErrParamInvalid
	}

	item, err := s.buildOverview(ctx, name)
	if err != nil {
		return nil, err
	}

	if userID != 0 {
		following, err := s.hashtagRepo.CheckFollowExists(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		item.IsFollowing = following
	}
	return item, nil
}

func (s *hashtagServiceImpl) buildOverview(ctx context.Context, name string) (*dto.HashtagDTO, error) {
	contentCount, err := s.hashtagRepo.CountContentsByHashtag(ctx, name)
	if err != nil {
		return nil, err
	}
	followerCount, err := s.hashtagRepo.CountFollowers(ctx, name)
	if err != nil {
		return nil, err
	}
	return &dto.HashtagDTO{
		Name:          name,
		ContentCount:  contentCount,
		FollowerCount: followerCount,
	}, nil
}

// GetTrending 从定时任务刷新的 Redis ZSet 读取热榜，缓存为空时回源数据库
func (s *hashtagServiceImpl) GetTrending(ctx context.Context) ([]*dto.TrendingHashtagDTO, error) {
	members, err := redis.ZRevRangeWithScores(ctx, consts.HashtagTrendingUseKey, 0, int64(consts.TrendingHashtagLimit-1))
	if err == nil && len(members) > 0 {
		result := make([]*dto.TrendingHashtagDTO, 0, len(members))
		for _, m := range members {
			name, ok := m.Member.(string)
			if !ok {
				continue
			}
			result = append(result, &dto.TrendingHashtagDTO{
				Name:  name,
				Score: m.Score,
			})
		}
		return result, nil
	}

	counts, err := s.hashtagRepo.RecentUseCounts(ctx, 7, consts.TrendingHashtagLimit)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.TrendingHashtagDTO, 0, len(counts))
	for name, score := range counts {
		result = append(result, &dto.TrendingHashtagDTO{Name: name, Score: score})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Score > result[j].Score })
	return result, nil
}

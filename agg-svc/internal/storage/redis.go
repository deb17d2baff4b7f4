package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Densingh-123/Home-Services/agg-svc/internal/domain"
	"github.com/Densingh-123/Home-Services/leaderboard"
)

// RedisStore maintains the snapshot hashes and ranking sets that
// directory-svc reads for its popular and trending lists.
type RedisStore struct {
	rdb         *redis.Client
	snapshotTTL time.Duration
	activityTTL time.Duration
	now         func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		rdb:         rdb,
		snapshotTTL: leaderboard.SnapshotTTL,
		activityTTL: leaderboard.ActivityTTL,
		now:         time.Now,
	}
}

func (s *RedisStore) UpdateSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	key := leaderboard.SnapshotKey(snapshot.BusinessID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			leaderboard.FieldLikeCount:   snapshot.LikeCount,
			leaderboard.FieldRatingCount: snapshot.RatingCount,
			leaderboard.FieldLastUpdated: s.now().Unix(),
		})
		pipe.ZAdd(ctx, leaderboard.PopularByLikes, redis.Z{
			Score:  float64(snapshot.LikeCount),
			Member: snapshot.BusinessID,
		})
		if snapshot.AverageRating != nil {
			pipe.HSet(ctx, key, leaderboard.FieldAvgRating, strconv.FormatFloat(*snapshot.AverageRating, 'f', -1, 64))
			pipe.ZAdd(ctx, leaderboard.PopularByRating, redis.Z{
				Score:  *snapshot.AverageRating,
				Member: snapshot.BusinessID,
			})
		} else {
			pipe.HDel(ctx, key, leaderboard.FieldAvgRating)
			pipe.ZRem(ctx, leaderboard.PopularByRating, snapshot.BusinessID)
		}
		pipe.Expire(ctx, key, s.snapshotTTL)
		return nil
	})
	return err
}

func (s *RedisStore) RecordActivity(ctx context.Context, businessID string, at time.Time) error {
	key := leaderboard.DailyActivityKey(at)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, key, 1, businessID)
		pipe.Expire(ctx, key, s.activityTTL)
		return nil
	})
	return err
}

// Remove drops a business from every ranking, including today's activity.
func (s *RedisStore) Remove(ctx context.Context, businessID string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, leaderboard.PopularByLikes, businessID)
		pipe.ZRem(ctx, leaderboard.PopularByRating, businessID)
		pipe.ZRem(ctx, leaderboard.DailyActivityKey(s.now()), businessID)
		pipe.Del(ctx, leaderboard.SnapshotKey(businessID))
		return nil
	})
	return err
}

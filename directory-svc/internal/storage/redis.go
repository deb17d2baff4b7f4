package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Densingh-123/Home-Services/directory-svc/internal/domain"
	"github.com/Densingh-123/Home-Services/leaderboard"
)

type RedisLeaderboard struct {
	Client *redis.Client
	now    func() time.Time
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{Client: client, now: time.Now}
}

func (l *RedisLeaderboard) TopByLikes(ctx context.Context, limit int) ([]domain.RankedEntry, error) {
	return l.top(ctx, leaderboard.PopularByLikes, limit)
}

func (l *RedisLeaderboard) TopByRating(ctx context.Context, limit int) ([]domain.RankedEntry, error) {
	return l.top(ctx, leaderboard.PopularByRating, limit)
}

func (l *RedisLeaderboard) TrendingToday(ctx context.Context, limit int) ([]domain.RankedEntry, error) {
	return l.top(ctx, leaderboard.DailyActivityKey(l.now()), limit)
}

func (l *RedisLeaderboard) top(ctx context.Context, key string, limit int) ([]domain.RankedEntry, error) {
	members, err := l.Client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	pipe := l.Client.Pipeline()
	snapshots := make([]*redis.MapStringStringCmd, len(members))
	for i, m := range members {
		snapshots[i] = pipe.HGetAll(ctx, leaderboard.SnapshotKey(m.Member.(string)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	entries := make([]domain.RankedEntry, 0, len(members))
	for i, m := range members {
		entry := domain.RankedEntry{BusinessID: m.Member.(string), Score: m.Score}
		snapshot := snapshots[i].Val()
		entry.LikeCount, _ = strconv.Atoi(snapshot[leaderboard.FieldLikeCount])
		if count, _ := strconv.Atoi(snapshot[leaderboard.FieldRatingCount]); count > 0 {
			if avg, err := strconv.ParseFloat(snapshot[leaderboard.FieldAvgRating], 64); err == nil {
				entry.AverageRating = &avg
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

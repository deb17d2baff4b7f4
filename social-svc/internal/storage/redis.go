package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisToggleGuard is a short-lived per (business, user) lock. TTL bounds how
// long a crashed holder can block the pair.
type RedisToggleGuard struct {
	Client        *redis.Client
	TTL           time.Duration
	RetryInterval time.Duration
}

func NewRedisToggleGuard(client *redis.Client, ttl time.Duration) *RedisToggleGuard {
	return &RedisToggleGuard{Client: client, TTL: ttl, RetryInterval: 25 * time.Millisecond}
}

func (g *RedisToggleGuard) LockKey(businessID, userID string) string {
	return "like-lock:" + businessID + ":" + userID
}

// Acquire blocks until the lock is held or ctx is done.
func (g *RedisToggleGuard) Acquire(ctx context.Context, businessID, userID string) (func(), error) {
	key := g.LockKey(businessID, userID)
	token := uuid.NewString()

	for {
		ok, err := g.Client.SetNX(ctx, key, token, g.TTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				_ = releaseScript.Run(context.Background(), g.Client, []string{key}, token).Err()
			}, nil
		}

		timer := time.NewTimer(g.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

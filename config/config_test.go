package config

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/docstore/memstore"
	"github.com/Densingh-123/Home-Services/docstore/redisstore"
)

func TestLoad_Defaults(t *testing.T) {
	var cfg struct {
		Common
		Store
		Kafka
	}
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendMongo, cfg.Backend)
	assert.Equal(t, "home_services", cfg.MongoDB)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, "engagement", cfg.EngagementTopic)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DOCSTORE_BACKEND", "redis")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("LOG_LEVEL", "debug")

	var cfg struct {
		Common
		Store
		Kafka
	}
	require.NoError(t, Load(&cfg))

	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger("production", "shouting")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestMustOpenStore(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	store, closeFn := MustOpenStore(ctx, Store{Backend: BackendMemory}, nil, logger)
	defer closeFn()
	assert.IsType(t, &memstore.Store{}, store)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store, closeFn = MustOpenStore(ctx, Store{Backend: BackendRedis}, rdb, logger)
	defer closeFn()
	assert.IsType(t, &redisstore.Store{}, store)
}

package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Densingh-123/Home-Services/docstore"
	"github.com/Densingh-123/Home-Services/docstore/memstore"
	"github.com/Densingh-123/Home-Services/social-svc/cmd/admin-cli/commands"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
	"github.com/Densingh-123/Home-Services/social-svc/internal/service"
	"github.com/Densingh-123/Home-Services/social-svc/internal/storage"
)

func seededStore(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Set(ctx, storage.BusinessCollection, "b1", docstore.Document{
		"name":  "Acme",
		"likes": []any{"alice@example.com", "bob@example.com", "alice@example.com"},
	}, false))
	require.NoError(t, store.Set(ctx, storage.BusinessCollection, "b2", docstore.Document{
		"name":  "Sparkle",
		"likes": 7,
	}, false))
	require.NoError(t, store.Set(ctx, storage.LikesCollection, "legacy-b2", docstore.Document{
		"businessId": "b2",
		"users":      []any{"carol@example.com"},
	}, false))
	require.NoError(t, store.Set(ctx, storage.LikesCollection, storage.PairID("b1", "bob@example.com"), docstore.Document{
		"businessId": "b1",
		"userId":     "bob@example.com",
		"likedAt":    "2024-01-01T00:00:00Z",
	}, false))
	require.NoError(t, store.Set(ctx, storage.RatingsCollection, "r1", docstore.Document{
		"businessId": "b1", "userId": "alice@example.com", "rating": 4,
	}, false))
	return store
}

func run(t *testing.T, store docstore.Store, args ...string) (string, error) {
	t.Helper()
	open := func(context.Context) (docstore.Store, func(), error) {
		return store, func() {}, nil
	}
	cmd := commands.NewRootCommand(open, domain.RatingPolicyAppend, nil)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateLikes_DryRunWritesNothing(t *testing.T) {
	store := seededStore(t)
	before := store.IDs(storage.LikesCollection)

	out, err := run(t, store, "migrate-likes", "--dry-run")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, true, report["dryRun"])
	assert.Equal(t, 2.0, report["businessesScanned"])
	assert.Equal(t, 2.0, report["pairsCreated"])
	assert.Equal(t, 1.0, report["pairsExisting"])
	assert.Equal(t, 1.0, report["arraysCleared"])
	assert.Equal(t, 1.0, report["legacyDocsRemoved"])
	assert.Equal(t, before, store.IDs(storage.LikesCollection))
}

func TestMigrateLikes_PreservesMetricsAndIsIdempotent(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	svc := service.NewMetricsService(service.Dependencies{
		Businesses: storage.NewBusinessRepository(store),
		Likes:      storage.NewLikeRepository(store),
		Ratings:    storage.NewRatingRepository(store),
		Comments:   storage.NewCommentRepository(store),
	}, domain.RatingPolicyAppend)

	beforeB1, err := svc.GetMetrics(ctx, "b1", "alice@example.com")
	require.NoError(t, err)
	beforeB2, err := svc.GetMetrics(ctx, "b2", "carol@example.com")
	require.NoError(t, err)

	_, err = run(t, store, "migrate-likes")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		storage.PairID("b1", "alice@example.com"),
		storage.PairID("b1", "bob@example.com"),
		storage.PairID("b2", "carol@example.com"),
	}, store.IDs(storage.LikesCollection))

	b1, err := store.Get(ctx, storage.BusinessCollection, "b1")
	require.NoError(t, err)
	assert.Empty(t, b1["likes"])
	b2, err := store.Get(ctx, storage.BusinessCollection, "b2")
	require.NoError(t, err)
	assert.Equal(t, 7.0, b2["likes"])

	afterB1, err := svc.GetMetrics(ctx, "b1", "alice@example.com")
	require.NoError(t, err)
	afterB2, err := svc.GetMetrics(ctx, "b2", "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, beforeB1.LikeCount, afterB1.LikeCount)
	assert.Equal(t, 2, afterB1.LikeCount)
	assert.True(t, afterB1.LikedByCaller)
	assert.Equal(t, beforeB2.LikeCount, afterB2.LikeCount)
	assert.True(t, afterB2.LikedByCaller)

	out, err := run(t, store, "migrate-likes")
	require.NoError(t, err)
	var report storage.MigrationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, storage.MigrationReport{BusinessesScanned: 2}, report)
}

func TestMetricsCommand(t *testing.T) {
	store := seededStore(t)

	out, err := run(t, store, "metrics", "b1", "--as", "bob@example.com")
	require.NoError(t, err)

	var metrics domain.Metrics
	require.NoError(t, json.Unmarshal([]byte(out), &metrics))
	assert.Equal(t, "b1", metrics.BusinessID)
	assert.Equal(t, 2, metrics.LikeCount)
	assert.True(t, metrics.LikedByCaller)
	require.NotNil(t, metrics.AverageRating)
	assert.Equal(t, 4.0, *metrics.AverageRating)

	_, err = run(t, store, "metrics", "missing")
	assert.True(t, errors.Is(err, service.ErrNotFound))

	_, err = run(t, store, "metrics")
	assert.Error(t, err)
}

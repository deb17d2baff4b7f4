package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Densingh-123/Home-Services/docstore"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := New(client)
	tick := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	return store, mr
}

func TestStore_GetNotFound(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Get(context.Background(), "BusinessList", "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestStore_SetMergeAndReplace(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "BusinessList", "b1", docstore.Document{"name": "Spark", "category": "Electrician"}, false))
	require.NoError(t, store.Set(ctx, "BusinessList", "b1", docstore.Document{"about": "24/7"}, true))

	doc, err := store.Get(ctx, "BusinessList", "b1")
	require.NoError(t, err)
	assert.Equal(t, "Spark", doc["name"])
	assert.Equal(t, "24/7", doc["about"])
	assert.True(t, mr.Exists("doc:BusinessList:b1"))

	require.NoError(t, store.Set(ctx, "BusinessList", "b1", docstore.Document{"name": "Only"}, false))
	doc, err = store.Get(ctx, "BusinessList", "b1")
	require.NoError(t, err)
	assert.Equal(t, docstore.Document{"id": "b1", "name": "Only"}, doc)
}

func TestStore_UpdateArrayOps(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "BusinessList", "b1", docstore.Document{"likes": []any{"a@x.com"}}, false))
	require.NoError(t, store.Update(ctx, "BusinessList", "b1", docstore.ArrayUnion("likes", "a@x.com", "b@x.com")))
	require.NoError(t, store.Update(ctx, "BusinessList", "b1", docstore.ArrayRemove("likes", "a@x.com")))

	doc, err := store.Get(ctx, "BusinessList", "b1")
	require.NoError(t, err)
	assert.Equal(t, []any{"b@x.com"}, doc["likes"])

	err = store.Update(ctx, "BusinessList", "missing", docstore.ArrayUnion("likes", "a"))
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestStore_QueryListDelete(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "Cart", "a_b1", docstore.Document{"userEmail": "a@x.com", "businessId": "b1"}, false))
	require.NoError(t, store.Set(ctx, "Cart", "a_b2", docstore.Document{"userEmail": "a@x.com", "businessId": "b2"}, false))
	require.NoError(t, store.Set(ctx, "Cart", "c_b1", docstore.Document{"userEmail": "c@x.com", "businessId": "b1"}, false))

	docs, err := store.QueryEquals(ctx, "Cart", "userEmail", "a@x.com")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a_b1", docs[0]["id"])
	assert.Equal(t, "a_b2", docs[1]["id"])

	docs, err = store.List(ctx, "Cart", 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a_b1", docs[0]["id"])

	require.NoError(t, store.Delete(ctx, "Cart", "a_b1"))
	docs, err = store.List(ctx, "Cart", 0)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestStore_QueryEqualsFieldIndex(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "Likes", "b1_a", docstore.Document{"businessId": "b1", "userId": "a", "rank": 1}, false))
	require.NoError(t, store.Set(ctx, "Likes", "b2_a", docstore.Document{"businessId": "b2", "userId": "a", "rank": 2}, false))
	require.NoError(t, store.Set(ctx, "Likes", "b1_c", docstore.Document{"businessId": "b1", "userId": "c", "tags": []any{"x"}}, false))

	members, err := mr.Members(`idx:Likes:businessId:"b1"`)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b1_a", "b1_c"}, members)
	assert.True(t, mr.Exists("idx:Likes:rank:1"))

	tests := []struct {
		name  string
		field string
		value any
		want  []string
	}{
		{name: "string_field", field: "businessId", value: "b1", want: []string{"b1_a", "b1_c"}},
		{name: "number_field", field: "rank", value: 2, want: []string{"b2_a"}},
		{name: "number_does_not_match_string", field: "rank", value: "2", want: nil},
		{name: "array_falls_back_to_scan", field: "tags", value: []any{"x"}, want: []string{"b1_c"}},
		{name: "missing_value", field: "userId", value: "nobody", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := store.QueryEquals(ctx, "Likes", tt.field, tt.value)
			require.NoError(t, err)
			var got []string
			for _, doc := range docs {
				got = append(got, doc["id"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("replace_moves_index_entry", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "Likes", "b1_a", docstore.Document{"businessId": "b3", "userId": "a"}, false))

		docs, err := store.QueryEquals(ctx, "Likes", "businessId", "b1")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "b1_c", docs[0]["id"])

		docs, err = store.QueryEquals(ctx, "Likes", "businessId", "b3")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "b1_a", docs[0]["id"])
		assert.False(t, mr.Exists("idx:Likes:rank:1"))
	})

	t.Run("update_moves_index_entry", func(t *testing.T) {
		require.NoError(t, store.Update(ctx, "Likes", "b2_a", docstore.SetField("userId", "d")))

		docs, err := store.QueryEquals(ctx, "Likes", "userId", "a")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "b1_a", docs[0]["id"])
	})

	t.Run("delete_clears_index_entries", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "Likes", "b1_c"))

		docs, err := store.QueryEquals(ctx, "Likes", "businessId", "b1")
		require.NoError(t, err)
		assert.Empty(t, docs)
		assert.False(t, mr.Exists(`idx:Likes:userId:"c"`))
	})
}

// Package redisstore implements docstore.Store on Redis: one JSON string per
// document under doc:<collection>:<id>, an ordered index of ids per
// collection, and one set per scalar field value under
// idx:<collection>:<field>:<value>. Read-modify-write operations use
// WATCH/MULTI.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Densingh-123/Home-Services/docstore"
)

const maxTxRetries = 8

type Store struct {
	Client *redis.Client
	now    func() time.Time
}

func New(client *redis.Client) *Store {
	return &Store{Client: client, now: time.Now}
}

var _ docstore.Store = (*Store)(nil)

func docKey(collection, id string) string {
	return "doc:" + collection + ":" + id
}

// indexKey is a sorted set scored by first-write time.
func indexKey(collection string) string {
	return "docs:" + collection
}

// fieldKey names the set of ids whose field holds value. Values are JSON
// encoded so "1" and 1 land in different sets.
func fieldKey(collection, field string, value any) (string, bool) {
	switch v := docstore.Normalize(value).(type) {
	case string, bool, float64:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return "idx:" + collection + ":" + field + ":" + string(raw), true
	}
	return "", false
}

// fieldKeys lists the field index sets doc belongs to.
func fieldKeys(collection string, doc docstore.Document) map[string]struct{} {
	keys := make(map[string]struct{}, len(doc))
	for field, value := range doc {
		if field == docstore.IDField {
			continue
		}
		if key, ok := fieldKey(collection, field, value); ok {
			keys[key] = struct{}{}
		}
	}
	return keys
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	raw, err := s.Client.Get(ctx, docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis get %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s/%s: %w", collection, id, err)
	}
	return decode(id, raw)
}

func (s *Store) Set(ctx context.Context, collection, id string, fields docstore.Document, merge bool) error {
	incoming := docstore.Clone(fields, "")
	delete(incoming, docstore.IDField)
	key := docKey(collection, id)

	err := s.transact(ctx, key, func(tx *redis.Tx) (docstore.Document, error) {
		if !merge {
			return incoming, nil
		}
		existing, err := s.load(ctx, tx, key)
		if errors.Is(err, redis.Nil) {
			return incoming, nil
		}
		if err != nil {
			return nil, err
		}
		for k, v := range incoming {
			existing[k] = v
		}
		return existing, nil
	}, collection, id)
	if err != nil {
		return fmt.Errorf("redis set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, updates ...docstore.Update) error {
	key := docKey(collection, id)
	err := s.transact(ctx, key, func(tx *redis.Tx) (docstore.Document, error) {
		existing, err := s.load(ctx, tx, key)
		if errors.Is(err, redis.Nil) {
			return nil, docstore.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if err := docstore.Apply(existing, updates...); err != nil {
			return nil, err
		}
		return existing, nil
	}, collection, id)
	if err != nil {
		return fmt.Errorf("redis update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	key := docKey(collection, id)
	err := s.watch(ctx, key, func(tx *redis.Tx) error {
		existing, err := s.load(ctx, tx, key)
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, indexKey(collection), id)
			for k := range fieldKeys(collection, existing) {
				pipe.SRem(ctx, k, id)
			}
			return nil
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("redis delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// QueryEquals reads the field index set for scalar values and falls back to
// a collection scan for arrays and objects. Results keep first-write order.
func (s *Store) QueryEquals(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	idxKey, ok := fieldKey(collection, field, value)
	if !ok {
		return s.scan(ctx, collection, field, value)
	}

	ids, err := s.Client.SMembers(ctx, idxKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis query %s.%s: %w", collection, field, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	scores := make([]*redis.FloatCmd, len(ids))
	_, err = s.Client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			scores[i] = pipe.ZScore(ctx, indexKey(collection), id)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis query %s.%s: %w", collection, field, err)
	}
	order := make(map[string]float64, len(ids))
	for i, id := range ids {
		order[id] = scores[i].Val()
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if order[ids[i]] != order[ids[j]] {
			return order[ids[i]] < order[ids[j]]
		}
		return ids[i] < ids[j]
	})

	docs, err := s.fetch(ctx, collection, ids)
	if err != nil {
		return nil, fmt.Errorf("redis query %s.%s: %w", collection, field, err)
	}
	out := make([]docstore.Document, 0, len(docs))
	for _, doc := range docs {
		if docstore.Matches(doc, field, value) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *Store) scan(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	docs, err := s.List(ctx, collection, 0)
	if err != nil {
		return nil, err
	}
	var out []docstore.Document
	for _, doc := range docs {
		if docstore.Matches(doc, field, value) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *Store) List(ctx context.Context, collection string, limit int) ([]docstore.Document, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := s.Client.ZRange(ctx, indexKey(collection), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list %s: %w", collection, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	docs, err := s.fetch(ctx, collection, ids)
	if err != nil {
		return nil, fmt.Errorf("redis list %s: %w", collection, err)
	}
	return docs, nil
}

// fetch loads ids in order, skipping any deleted since they were listed.
func (s *Store) fetch(ctx context.Context, collection string, ids []string) ([]docstore.Document, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKey(collection, id)
	}
	values, err := s.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	docs := make([]docstore.Document, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		doc, err := decode(ids[i], []byte(raw))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) load(ctx context.Context, tx *redis.Tx, key string) (docstore.Document, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	return decode("", raw)
}

// transact runs mutate under WATCH on key and writes the result along with
// its field index sets, retrying when another client touched the key in
// between.
func (s *Store) transact(ctx context.Context, key string, mutate func(tx *redis.Tx) (docstore.Document, error), collection, id string) error {
	return s.watch(ctx, key, func(tx *redis.Tx) error {
		previous, err := s.load(ctx, tx, key)
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		doc, err := mutate(tx)
		if err != nil {
			return err
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		stale := fieldKeys(collection, previous)
		current := fieldKeys(collection, doc)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, body, 0)
			pipe.ZAddNX(ctx, indexKey(collection), redis.Z{
				Score:  float64(s.now().UnixNano()),
				Member: id,
			})
			for k := range stale {
				if _, ok := current[k]; !ok {
					pipe.SRem(ctx, k, id)
				}
			}
			for k := range current {
				pipe.SAdd(ctx, k, id)
			}
			return nil
		})
		return err
	})
}

func (s *Store) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for i := 0; i < maxTxRetries; i++ {
		err := s.Client.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

func decode(id string, raw []byte) (docstore.Document, error) {
	doc := docstore.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("redis decode %s: %w", id, err)
	}
	if id != "" {
		doc[docstore.IDField] = id
	}
	return doc, nil
}

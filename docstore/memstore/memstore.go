// Package memstore is an in-process docstore.Store used by tests and by
// DOCSTORE_BACKEND=memory for local development.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Densingh-123/Home-Services/docstore"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]map[string]docstore.Document
	// order keeps insertion order per collection so List and QueryEquals are
	// deterministic.
	order map[string][]string

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func New() *Store {
	return &Store{
		collections: make(map[string]map[string]docstore.Document),
		order:       make(map[string][]string),
	}
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) Get(_ context.Context, collection, id string) (docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("memstore get %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	return docstore.Clone(doc, id), nil
}

func (s *Store) Set(_ context.Context, collection, id string, fields docstore.Document, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	incoming := docstore.Clone(fields, "")
	delete(incoming, docstore.IDField)

	col := s.collection(collection)
	existing, ok := col[id]
	if !ok {
		s.order[collection] = append(s.order[collection], id)
	}
	if merge && ok {
		for k, v := range incoming {
			existing[k] = v
		}
		return nil
	}
	col[id] = incoming
	return nil
}

func (s *Store) Update(_ context.Context, collection, id string, updates ...docstore.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	doc, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("memstore update %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	working := docstore.Clone(doc, "")
	if err := docstore.Apply(working, updates...); err != nil {
		return err
	}
	s.collections[collection][id] = working
	return nil
}

func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if _, ok := s.collections[collection][id]; !ok {
		return nil
	}
	delete(s.collections[collection], id)
	ids := s.order[collection]
	for i, existing := range ids {
		if existing == id {
			s.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) QueryEquals(_ context.Context, collection, field string, value any) ([]docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var out []docstore.Document
	for _, id := range s.order[collection] {
		doc := s.collections[collection][id]
		if docstore.Matches(doc, field, value) {
			out = append(out, docstore.Clone(doc, id))
		}
	}
	return out, nil
}

func (s *Store) List(_ context.Context, collection string, limit int) ([]docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var out []docstore.Document
	for _, id := range s.order[collection] {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, docstore.Clone(s.collections[collection][id], id))
	}
	return out, nil
}

// IDs returns the ids stored in collection, sorted.
func (s *Store) IDs(collection string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.collections[collection]))
	for id := range s.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) collection(name string) map[string]docstore.Document {
	col, ok := s.collections[name]
	if !ok {
		col = make(map[string]docstore.Document)
		s.collections[name] = col
	}
	return col
}

// Package pgstore implements docstore.Store on a single PostgreSQL jsonb
// table. Field updates run as a transactional read-modify-write under a row
// lock, so array union/remove never interleave for the same document.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/Densingh-123/Home-Services/docstore"
)

const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		body       JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (collection, id)
	)`

type Store struct {
	DB *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

var _ docstore.Store = (*Store)(nil)

// Migrate creates the documents table if missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var body []byte
	err := s.DB.QueryRowContext(ctx, `
		SELECT body FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("postgres get %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %s/%s: %w", collection, id, err)
	}
	return decodeBody(id, body)
}

func (s *Store) Set(ctx context.Context, collection, id string, fields docstore.Document, merge bool) error {
	incoming := docstore.Clone(fields, "")
	delete(incoming, docstore.IDField)
	body, err := json.Marshal(incoming)
	if err != nil {
		return fmt.Errorf("postgres set %s/%s: %w", collection, id, err)
	}

	query := `
		INSERT INTO documents (collection, id, body)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id)
		DO UPDATE SET body = EXCLUDED.body, updated_at = now()`
	if merge {
		query = `
		INSERT INTO documents (collection, id, body)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id)
		DO UPDATE SET body = documents.body || EXCLUDED.body, updated_at = now()`
	}
	if _, err := s.DB.ExecContext(ctx, query, collection, id, string(body)); err != nil {
		return fmt.Errorf("postgres set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, updates ...docstore.Update) (err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres update %s/%s: begin: %w", collection, id, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var body []byte
	err = tx.QueryRowContext(ctx, `
		SELECT body FROM documents
		WHERE collection = $1 AND id = $2
		FOR UPDATE
	`, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("postgres update %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("postgres update %s/%s: %w", collection, id, err)
	}

	doc, err := decodeBody("", body)
	if err != nil {
		return err
	}
	delete(doc, docstore.IDField)
	if err = docstore.Apply(doc, updates...); err != nil {
		return err
	}
	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("postgres update %s/%s: %w", collection, id, err)
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE documents
		SET body = $3::jsonb, updated_at = now()
		WHERE collection = $1 AND id = $2
	`, collection, id, string(updated)); err != nil {
		return fmt.Errorf("postgres update %s/%s: %w", collection, id, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("postgres update %s/%s: commit: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.DB.ExecContext(ctx, `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, id); err != nil {
		return fmt.Errorf("postgres delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) QueryEquals(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	if field == docstore.IDField {
		doc, err := s.Get(ctx, collection, fmt.Sprint(value))
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []docstore.Document{doc}, nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("postgres query %s: %w", collection, err)
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, body FROM documents
		WHERE collection = $1 AND body -> $2 = $3::jsonb
		ORDER BY created_at, id
	`, collection, field, string(encoded))
	if err != nil {
		return nil, fmt.Errorf("postgres query %s: %w", collection, err)
	}
	return scanDocuments(rows)
}

func (s *Store) List(ctx context.Context, collection string, limit int) ([]docstore.Document, error) {
	query := `
		SELECT id, body FROM documents
		WHERE collection = $1
		ORDER BY created_at, id`
	args := []any{collection}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres list %s: %w", collection, err)
	}
	return scanDocuments(rows)
}

func scanDocuments(rows *sql.Rows) ([]docstore.Document, error) {
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("postgres scan: %w", err)
		}
		doc, err := decodeBody(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres rows: %w", err)
	}
	return docs, nil
}

func decodeBody(id string, body []byte) (docstore.Document, error) {
	doc := docstore.Document{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("postgres decode %s: %w", id, err)
	}
	if id != "" {
		doc[docstore.IDField] = id
	}
	return doc, nil
}

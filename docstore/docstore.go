// Package docstore is the document store contract shared by every service:
// get/set/update/delete a document by id and query documents by field
// equality within a named collection.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotFound is returned by Get and Update when the document does not exist.
var ErrNotFound = errors.New("document not found")

// IDField is injected into every document returned by a Store.
const IDField = "id"

// Document is a schema-less JSON-like document.
type Document map[string]any

// Op identifies the kind of a field update.
type Op int

const (
	OpSet Op = iota
	OpArrayUnion
	OpArrayRemove
)

// Update is a single field update applied by Store.Update.
type Update struct {
	Field    string
	Op       Op
	Value    any
	Elements []any
}

// SetField replaces the value of field.
func SetField(field string, value any) Update {
	return Update{Field: field, Op: OpSet, Value: value}
}

// ArrayUnion adds each element to the array field unless already present.
func ArrayUnion(field string, elements ...any) Update {
	return Update{Field: field, Op: OpArrayUnion, Elements: elements}
}

// ArrayRemove removes every occurrence of each element from the array field.
func ArrayRemove(field string, elements ...any) Update {
	return Update{Field: field, Op: OpArrayRemove, Elements: elements}
}

var idPartEscaper = strings.NewReplacer("%", "%25", "_", "%5F")

// CompositeID joins parts with "_" after escaping "%" and "_" inside each
// part, so distinct part tuples never share an id. Parts without either
// character produce the plain "<a>_<b>" form.
func CompositeID(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = idPartEscaper.Replace(p)
	}
	return strings.Join(escaped, "_")
}

// Store is implemented by every backend.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	// Set writes fields under id. With merge, existing fields not named in
	// fields are kept; without it the document is replaced.
	Set(ctx context.Context, collection, id string, fields Document, merge bool) error
	Update(ctx context.Context, collection, id string, updates ...Update) error
	// Delete is a no-op when the document does not exist.
	Delete(ctx context.Context, collection, id string) error
	QueryEquals(ctx context.Context, collection, field string, value any) ([]Document, error)
	// List returns up to limit documents of a collection; limit <= 0 means all.
	List(ctx context.Context, collection string, limit int) ([]Document, error)
}

// Apply mutates doc in place. Backends without native array operators run
// updates through it inside their own read-modify-write transaction.
func Apply(doc Document, updates ...Update) error {
	for _, u := range updates {
		if u.Field == "" || u.Field == IDField {
			return fmt.Errorf("docstore: invalid update field %q", u.Field)
		}
		switch u.Op {
		case OpSet:
			doc[u.Field] = Normalize(u.Value)
		case OpArrayUnion:
			current, err := arrayField(doc, u.Field)
			if err != nil {
				return err
			}
			for _, el := range u.Elements {
				el = Normalize(el)
				if indexOf(current, el) < 0 {
					current = append(current, el)
				}
			}
			doc[u.Field] = current
		case OpArrayRemove:
			current, err := arrayField(doc, u.Field)
			if err != nil {
				return err
			}
			kept := make([]any, 0, len(current))
			for _, item := range current {
				if !containsAny(u.Elements, item) {
					kept = append(kept, item)
				}
			}
			doc[u.Field] = kept
		default:
			return fmt.Errorf("docstore: unknown update op %d", u.Op)
		}
	}
	return nil
}

// Matches reports whether doc[field] equals value after normalization.
func Matches(doc Document, field string, value any) bool {
	got, ok := doc[field]
	if !ok {
		return false
	}
	return reflect.DeepEqual(Normalize(got), Normalize(value))
}

// Normalize converts v to its JSON data model (map[string]any, []any,
// float64, string, bool, nil) so values compare the same way regardless of
// the Go types they were written with.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil, string, bool, float64:
		return t
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// Encode converts a tagged struct into a Document.
func Encode(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("docstore: encode: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("docstore: encode: %w", err)
	}
	return doc, nil
}

// Decode fills the struct pointed to by out from doc.
func Decode(doc Document, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore: decode: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("docstore: decode: %w", err)
	}
	return nil
}

// Clone returns a deep copy of doc with id set.
func Clone(doc Document, id string) Document {
	out, _ := Normalize(map[string]any(doc)).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	if id != "" {
		out[IDField] = id
	}
	return Document(out)
}

func arrayField(doc Document, field string) ([]any, error) {
	v, ok := doc[field]
	if !ok || v == nil {
		return []any{}, nil
	}
	arr, ok := Normalize(v).([]any)
	if !ok {
		return nil, fmt.Errorf("docstore: field %q is not an array", field)
	}
	return arr, nil
}

func indexOf(arr []any, el any) int {
	for i, item := range arr {
		if reflect.DeepEqual(item, el) {
			return i
		}
	}
	return -1
}

func containsAny(elements []any, item any) bool {
	for _, el := range elements {
		if reflect.DeepEqual(Normalize(el), item) {
			return true
		}
	}
	return false
}

// Package mongostore implements docstore.Store on MongoDB. Document ids map
// to _id; array updates use $addToSet and $pull so concurrent callers never
// lose each other's elements.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Densingh-123/Home-Services/docstore"
)

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mongo get %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get %s/%s: %w", collection, id, err)
	}
	return fromBSON(raw), nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields docstore.Document, merge bool) error {
	body := toBSON(fields)
	delete(body, docstore.IDField)
	delete(body, "_id")

	var err error
	if merge {
		_, err = s.db.Collection(collection).UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": body},
			options.Update().SetUpsert(true),
		)
	} else {
		_, err = s.db.Collection(collection).ReplaceOne(ctx,
			bson.M{"_id": id},
			body,
			options.Replace().SetUpsert(true),
		)
	}
	if err != nil {
		return fmt.Errorf("mongo set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, updates ...docstore.Update) error {
	update, err := buildUpdate(updates)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mongo update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongo update %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) QueryEquals(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	if field == docstore.IDField {
		field = "_id"
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.find(ctx, collection, bson.M{field: value}, opts)
}

func (s *Store) List(ctx context.Context, collection string, limit int) ([]docstore.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return s.find(ctx, collection, bson.M{}, opts)
}

func (s *Store) find(ctx context.Context, collection string, filter bson.M, opts *options.FindOptions) ([]docstore.Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("mongo decode %s: %w", collection, err)
	}
	out := make([]docstore.Document, 0, len(raws))
	for _, raw := range raws {
		out = append(out, fromBSON(raw))
	}
	return out, nil
}

func buildUpdate(updates []docstore.Update) (bson.M, error) {
	set := bson.M{}
	addToSet := bson.M{}
	pull := bson.M{}
	for _, u := range updates {
		if u.Field == "" || u.Field == docstore.IDField {
			return nil, fmt.Errorf("mongo update: invalid field %q", u.Field)
		}
		switch u.Op {
		case docstore.OpSet:
			set[u.Field] = toBSONValue(u.Value)
		case docstore.OpArrayUnion:
			addToSet[u.Field] = bson.M{"$each": toBSONArray(u.Elements)}
		case docstore.OpArrayRemove:
			pull[u.Field] = bson.M{"$in": toBSONArray(u.Elements)}
		default:
			return nil, fmt.Errorf("mongo update: unknown op %d", u.Op)
		}
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(addToSet) > 0 {
		update["$addToSet"] = addToSet
	}
	if len(pull) > 0 {
		update["$pull"] = pull
	}
	if len(update) == 0 {
		return nil, errors.New("mongo update: no updates")
	}
	return update, nil
}

func toBSON(doc docstore.Document) bson.M {
	out := bson.M{}
	for k, v := range doc {
		out[k] = toBSONValue(v)
	}
	return out
}

func toBSONArray(elements []any) bson.A {
	out := make(bson.A, 0, len(elements))
	for _, el := range elements {
		out = append(out, toBSONValue(el))
	}
	return out
}

// toBSONValue runs values through the JSON data model first so a map literal
// and a decoded document of the same shape are stored identically, which is
// what $addToSet and $pull compare on.
func toBSONValue(v any) any {
	switch t := docstore.Normalize(v).(type) {
	case map[string]any:
		return toBSON(t)
	case []any:
		return toBSONArray(t)
	default:
		return t
	}
}

func fromBSON(raw bson.M) docstore.Document {
	doc := docstore.Document{}
	for k, v := range raw {
		if k == "_id" {
			doc[docstore.IDField] = idString(v)
			continue
		}
		doc[k] = fromBSONValue(v)
	}
	return doc
}

func fromBSONValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		return map[string]any(fromBSON(t))
	case bson.D:
		return map[string]any(fromBSON(t.Map()))
	case bson.A:
		out := make([]any, 0, len(t))
		for _, item := range t {
			out = append(out, fromBSONValue(item))
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case primitive.ObjectID:
		return t.Hex()
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return t
	}
}

func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case primitive.ObjectID:
		return t.Hex()
	default:
		return fmt.Sprint(t)
	}
}

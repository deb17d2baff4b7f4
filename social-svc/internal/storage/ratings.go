package storage

import (
	"context"
	"sort"
	"time"

	"github.com/Densingh-123/Home-Services/docstore"
	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
)

type RatingRepository struct {
	Store docstore.Store
}

func NewRatingRepository(store docstore.Store) *RatingRepository {
	return &RatingRepository{Store: store}
}

func (r *RatingRepository) List(ctx context.Context, business *domain.Business) ([]domain.Rating, error) {
	docs, err := r.Store.QueryEquals(ctx, RatingsCollection, "businessId", business.ID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Rating, 0, len(docs))
	for _, doc := range docs {
		var rating domain.Rating
		if err := docstore.Decode(doc, &rating); err != nil {
			return nil, err
		}
		rating.UserID = identity.Normalize(rating.UserID)
		records = append(records, rating)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return createdBefore(records[i].CreatedAt, records[i].ID, records[j].CreatedAt, records[j].ID)
	})

	return append(append([]domain.Rating{}, business.LegacyRatings...), records...), nil
}

// Save writes the rating under its id; an existing record with the same id
// is replaced.
func (r *RatingRepository) Save(ctx context.Context, rating *domain.Rating) error {
	doc, err := docstore.Encode(rating)
	if err != nil {
		return err
	}
	delete(doc, docstore.IDField)
	return r.Store.Set(ctx, RatingsCollection, rating.ID, doc, false)
}

func createdBefore(a *time.Time, aID string, b *time.Time, bID string) bool {
	var at, bt time.Time
	if a != nil {
		at = *a
	}
	if b != nil {
		bt = *b
	}
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	return aID < bID
}

package storage

import (
	"context"
	"sort"
	"time"

	"github.com/Densingh-123/Home-Services/docstore"
	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
)

// LikeRepository stores likes as one Likes document per (business, user)
// with id docstore.CompositeID(businessId, userId). It also reads the two legacy shapes: the
// embedded BusinessList.likes array and per-business Likes documents with a
// users array. Removal clears all three.
type LikeRepository struct {
	Store docstore.Store
}

func NewLikeRepository(store docstore.Store) *LikeRepository {
	return &LikeRepository{Store: store}
}

func PairID(businessID, userID string) string {
	return docstore.CompositeID(businessID, userID)
}

func (r *LikeRepository) Members(ctx context.Context, business *domain.Business) ([]string, error) {
	docs, err := r.Store.QueryEquals(ctx, LikesCollection, "businessId", business.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	members := make([]string, 0, len(business.LegacyLikes)+len(docs))
	add := func(id string) {
		id = identity.Normalize(id)
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}

	for _, id := range business.LegacyLikes {
		add(id)
	}
	for _, doc := range docs {
		if users, ok := doc["users"]; ok {
			for _, id := range legacyLikes(users) {
				add(id)
			}
			continue
		}
		add(stringValue(doc["userId"]))
	}
	return members, nil
}

func (r *LikeRepository) Add(ctx context.Context, business *domain.Business, userID string, at time.Time) error {
	doc, err := docstore.Encode(domain.Like{
		BusinessID: business.ID,
		UserID:     userID,
		LikedAt:    at,
	})
	if err != nil {
		return err
	}
	return r.Store.Set(ctx, LikesCollection, PairID(business.ID, userID), doc, false)
}

func (r *LikeRepository) Remove(ctx context.Context, business *domain.Business, userID string) error {
	if err := r.Store.Delete(ctx, LikesCollection, PairID(business.ID, userID)); err != nil {
		return err
	}

	for _, id := range business.LegacyLikes {
		if identity.Normalize(id) == userID {
			if err := r.Store.Update(ctx, BusinessCollection, business.ID, docstore.ArrayRemove("likes", id)); err != nil {
				return err
			}
		}
	}

	docs, err := r.Store.QueryEquals(ctx, LikesCollection, "businessId", business.ID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		users, ok := doc["users"]
		if !ok {
			continue
		}
		for _, id := range legacyLikes(users) {
			if identity.Normalize(id) != userID {
				continue
			}
			docID := stringValue(doc[docstore.IDField])
			if err := r.Store.Update(ctx, LikesCollection, docID, docstore.ArrayRemove("users", id)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListByUser returns the caller's canonical like records, oldest first.
func (r *LikeRepository) ListByUser(ctx context.Context, userID string) ([]domain.Like, error) {
	docs, err := r.Store.QueryEquals(ctx, LikesCollection, "userId", userID)
	if err != nil {
		return nil, err
	}

	likes := make([]domain.Like, 0, len(docs))
	for _, doc := range docs {
		var like domain.Like
		if err := docstore.Decode(doc, &like); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	sort.SliceStable(likes, func(i, j int) bool {
		return likes[i].LikedAt.Before(likes[j].LikedAt)
	})
	return likes, nil
}

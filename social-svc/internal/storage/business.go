package storage

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Densingh-123/Home-Services/docstore"
	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
)

const (
	BusinessCollection = "BusinessList"
	LikesCollection    = "Likes"
	RatingsCollection  = "Ratings"
	CommentsCollection = "Comments"
)

type BusinessRepository struct {
	Store docstore.Store
}

func NewBusinessRepository(store docstore.Store) *BusinessRepository {
	return &BusinessRepository{Store: store}
}

func (r *BusinessRepository) GetBusiness(ctx context.Context, id string) (*domain.Business, error) {
	doc, err := r.Store.Get(ctx, BusinessCollection, id)
	if err != nil {
		return nil, err
	}

	var business domain.Business
	if err := docstore.Decode(doc, &business); err != nil {
		return nil, err
	}
	business.ID = id
	business.LegacyLikes = legacyLikes(doc["likes"])
	business.LegacyRatings = legacyRatings(id, doc["ratings"])
	business.LegacyComments = legacyComments(id, doc["comments"])
	return &business, nil
}

// Older clients stored likes either as an array of identifiers or as a bare
// counter. A counter carries no membership and is ignored, as are blank and
// placeholder identifiers. Kept entries are returned as stored so they can be
// removed by value.
func legacyLikes(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && identity.Normalize(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func legacyRatings(businessID string, v any) []domain.Rating {
	items, _ := v.([]any)
	out := make([]domain.Rating, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		stars, ok := intValue(m["rating"])
		if !ok || stars < 1 || stars > 5 {
			continue
		}
		out = append(out, domain.Rating{
			BusinessID: businessID,
			UserID:     identity.Normalize(stringValue(m["userId"])),
			Rating:     stars,
		})
	}
	return out
}

func legacyComments(businessID string, v any) []domain.Comment {
	items, _ := v.([]any)
	out := make([]domain.Comment, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		text := strings.TrimSpace(stringValue(m["comment"]))
		if text == "" {
			continue
		}
		stars, _ := intValue(m["rating"])
		out = append(out, domain.Comment{
			BusinessID: businessID,
			UserID:     identity.Normalize(stringValue(m["userId"])),
			Comment:    text,
			Rating:     stars,
			CreatedAt:  timeValue(m["timestamp"]),
		})
	}
	return out
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	}
	return 0, false
}

func timeValue(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

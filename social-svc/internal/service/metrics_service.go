package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/docstore"
	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
)

// Dependencies are the collaborators of MetricsService. Guard and Publisher
// may be nil.
type Dependencies struct {
	Businesses BusinessReader
	Likes      LikeRepository
	Ratings    RatingRepository
	Comments   CommentRepository
	Guard      ToggleGuard
	Publisher  EngagementPublisher
	Logger     *zap.Logger
}

type MetricsService struct {
	businesses BusinessReader
	likes      LikeRepository
	ratings    RatingRepository
	comments   CommentRepository
	guard      ToggleGuard
	publisher  EngagementPublisher
	policy     domain.RatingPolicy
	logger     *zap.Logger
	now        func() time.Time
}

func NewMetricsService(deps Dependencies, policy domain.RatingPolicy) *MetricsService {
	if !policy.Valid() {
		policy = domain.RatingPolicyAppend
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsService{
		businesses: deps.Businesses,
		likes:      deps.Likes,
		ratings:    deps.Ratings,
		comments:   deps.Comments,
		guard:      deps.Guard,
		publisher:  deps.Publisher,
		policy:     policy,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the timestamp source. Used by tests.
func (s *MetricsService) WithClock(now func() time.Time) *MetricsService {
	s.now = now
	return s
}

func (s *MetricsService) GetMetrics(ctx context.Context, businessID, callerID string) (*domain.Metrics, error) {
	callerID = identity.Normalize(callerID)
	business, err := s.business(ctx, businessID)
	if err != nil {
		return nil, err
	}

	members, err := s.likes.Members(ctx, business)
	if err != nil {
		return nil, storeError("read likes", err)
	}
	ratings, err := s.currentRatings(ctx, business)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.List(ctx, business)
	if err != nil {
		return nil, storeError("read comments", err)
	}
	for i := range comments {
		comments[i].Author = identity.DisplayName(comments[i].UserID)
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	return &domain.Metrics{
		BusinessID:    business.ID,
		LikeCount:     len(members),
		LikedByCaller: callerID != "" && contains(members, callerID),
		AverageRating: averageOf(ratings),
		RatingCount:   len(ratings),
		Comments:      comments,
	}, nil
}

// ToggleLike flips the caller's membership and returns the new state.
func (s *MetricsService) ToggleLike(ctx context.Context, businessID, callerID string) (bool, error) {
	callerID = identity.Normalize(callerID)
	if callerID == "" {
		return false, ErrUnauthenticated
	}

	if s.guard != nil {
		release, err := s.guard.Acquire(ctx, businessID, callerID)
		if err != nil {
			return false, &StoreError{Op: "acquire like guard", Err: err}
		}
		defer release()
	}

	business, err := s.business(ctx, businessID)
	if err != nil {
		return false, err
	}
	members, err := s.likes.Members(ctx, business)
	if err != nil {
		return false, storeError("read likes", err)
	}

	event := domain.EngagementEvent{BusinessID: businessID, UserID: callerID, Timestamp: s.now()}
	liked := contains(members, callerID)
	if liked {
		if err := s.likes.Remove(ctx, business, callerID); err != nil {
			return false, storeError("remove like", err)
		}
		event.Type = domain.EventLikeRemoved
	} else {
		if err := s.likes.Add(ctx, business, callerID, event.Timestamp); err != nil {
			return false, storeError("add like", err)
		}
		event.Type = domain.EventLikeAdded
	}

	s.publish(ctx, event)
	return !liked, nil
}

// AddRating records stars for the caller and returns the recomputed average.
func (s *MetricsService) AddRating(ctx context.Context, businessID, callerID string, stars int) (float64, error) {
	callerID = identity.Normalize(callerID)
	if callerID == "" {
		return 0, ErrUnauthenticated
	}
	if stars < 1 || stars > 5 {
		return 0, invalidArgument("rating must be between 1 and 5")
	}

	business, err := s.business(ctx, businessID)
	if err != nil {
		return 0, err
	}

	createdAt := s.now()
	rating := &domain.Rating{
		BusinessID: businessID,
		UserID:     callerID,
		Rating:     stars,
		CreatedAt:  &createdAt,
	}
	if s.policy == domain.RatingPolicyReplace {
		rating.ID = docstore.CompositeID(businessID, callerID)
	} else if rating.ID, err = newID(); err != nil {
		return 0, err
	}
	if err := s.ratings.Save(ctx, rating); err != nil {
		return 0, storeError("save rating", err)
	}

	ratings, err := s.currentRatings(ctx, business)
	if err != nil {
		return 0, err
	}
	average := float64(stars)
	// nil only when the record just written is not visible to the query yet.
	if avg := averageOf(ratings); avg != nil {
		average = *avg
	}

	s.publish(ctx, domain.EngagementEvent{
		Type:       domain.EventRatingAdded,
		BusinessID: businessID,
		UserID:     callerID,
		Rating:     stars,
		Timestamp:  createdAt,
	})
	return average, nil
}

// AddComment appends a comment and returns its id. stars of 0 means the
// comment carries no rating.
func (s *MetricsService) AddComment(ctx context.Context, businessID, callerID, text string, stars int) (string, error) {
	callerID = identity.Normalize(callerID)
	if callerID == "" {
		return "", ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalidArgument("please write a comment")
	}
	if stars < 0 || stars > 5 {
		return "", invalidArgument("rating must be between 1 and 5")
	}

	if _, err := s.business(ctx, businessID); err != nil {
		return "", err
	}

	id, err := newID()
	if err != nil {
		return "", err
	}
	createdAt := s.now()
	comment := &domain.Comment{
		ID:         id,
		BusinessID: businessID,
		UserID:     callerID,
		Comment:    text,
		Rating:     stars,
		CreatedAt:  &createdAt,
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return "", storeError("save comment", err)
	}

	s.publish(ctx, domain.EngagementEvent{
		Type:       domain.EventCommentAdded,
		BusinessID: businessID,
		UserID:     callerID,
		Rating:     stars,
		Timestamp:  createdAt,
	})
	return id, nil
}

// LikedBusinesses lists what the caller likes, most recent first. Businesses
// deleted since are skipped.
func (s *MetricsService) LikedBusinesses(ctx context.Context, callerID string) ([]domain.LikedBusiness, error) {
	callerID = identity.Normalize(callerID)
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	likes, err := s.likes.ListByUser(ctx, callerID)
	if err != nil {
		return nil, storeError("list likes", err)
	}

	result := make([]domain.LikedBusiness, 0, len(likes))
	for _, like := range likes {
		business, err := s.business(ctx, like.BusinessID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		members, err := s.likes.Members(ctx, business)
		if err != nil {
			return nil, storeError("read likes", err)
		}
		ratings, err := s.currentRatings(ctx, business)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.LikedBusiness{
			BusinessID:    business.ID,
			Name:          business.Name,
			Image:         business.Image,
			Category:      business.Category,
			LikeCount:     len(members),
			AverageRating: averageOf(ratings),
			LikedAt:       like.LikedAt,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LikedAt.After(result[j].LikedAt)
	})
	return result, nil
}

func (s *MetricsService) business(ctx context.Context, id string) (*domain.Business, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	business, err := s.businesses.GetBusiness(ctx, id)
	if err != nil {
		return nil, storeError("read business", err)
	}
	return business, nil
}

// currentRatings applies the rating policy to the raw rating history.
func (s *MetricsService) currentRatings(ctx context.Context, business *domain.Business) ([]domain.Rating, error) {
	ratings, err := s.ratings.List(ctx, business)
	if err != nil {
		return nil, storeError("read ratings", err)
	}
	if s.policy != domain.RatingPolicyReplace {
		return ratings, nil
	}

	// Anonymous ratings cannot be attributed to one rater, so each is kept.
	latest := make(map[string]int, len(ratings))
	for i, r := range ratings {
		if r.UserID != "" {
			latest[r.UserID] = i
		}
	}
	kept := make([]domain.Rating, 0, len(ratings))
	for i, r := range ratings {
		if r.UserID == "" || latest[r.UserID] == i {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

func (s *MetricsService) publish(ctx context.Context, event domain.EngagementEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish engagement event",
			zap.String("type", event.Type),
			zap.String("business_id", event.BusinessID),
			zap.Error(err),
		)
	}
}

// averageOf is the mean rounded to one decimal, or nil for no ratings.
func averageOf(ratings []domain.Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10
	return &avg
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", &StoreError{Op: "generate id", Err: err}
	}
	return id.String(), nil
}

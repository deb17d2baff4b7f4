package service

import (
	"context"
	"time"

	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
)

type MetricsServiceInterface interface {
	GetMetrics(ctx context.Context, businessID, callerID string) (*domain.Metrics, error)
	ToggleLike(ctx context.Context, businessID, callerID string) (bool, error)
	AddRating(ctx context.Context, businessID, callerID string, stars int) (float64, error)
	AddComment(ctx context.Context, businessID, callerID, text string, stars int) (string, error)
	LikedBusinesses(ctx context.Context, callerID string) ([]domain.LikedBusiness, error)
}

type BusinessReader interface {
	GetBusiness(ctx context.Context, id string) (*domain.Business, error)
}

// LikeRepository hides every storage shape of like membership behind the
// canonical (business, user) record.
type LikeRepository interface {
	// Members returns the deduplicated identifiers that like business.
	Members(ctx context.Context, business *domain.Business) ([]string, error)
	Add(ctx context.Context, business *domain.Business, userID string, at time.Time) error
	// Remove clears userID from every shape, so no legacy copy revives the like.
	Remove(ctx context.Context, business *domain.Business, userID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Like, error)
}

type RatingRepository interface {
	// List returns legacy embedded ratings followed by records in creation order.
	List(ctx context.Context, business *domain.Business) ([]domain.Rating, error)
	Save(ctx context.Context, rating *domain.Rating) error
}

type CommentRepository interface {
	// List returns legacy embedded comments followed by records in creation order.
	List(ctx context.Context, business *domain.Business) ([]domain.Comment, error)
	Save(ctx context.Context, comment *domain.Comment) error
}

// ToggleGuard serializes like toggles of one caller on one business.
type ToggleGuard interface {
	Acquire(ctx context.Context, businessID, userID string) (release func(), err error)
}

type EngagementPublisher interface {
	Publish(ctx context.Context, event domain.EngagementEvent) error
}

var _ MetricsServiceInterface = (*MetricsService)(nil)

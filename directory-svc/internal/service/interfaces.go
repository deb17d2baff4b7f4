package service

import (
	"context"

	"github.com/Densingh-123/Home-Services/directory-svc/internal/domain"
)

type BusinessRepository interface {
	CreateBusiness(ctx context.Context, business *domain.Business) error
	GetBusiness(ctx context.Context, id string) (*domain.Business, error)
	ListBusinesses(ctx context.Context, field, value string) ([]domain.Business, error)
	FirstBusinesses(ctx context.Context, limit int) ([]domain.Business, error)
	DeleteBusiness(ctx context.Context, id string) error
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category *domain.Category) error
}

type SliderRepository interface {
	ListSlides(ctx context.Context) ([]domain.Slide, error)
}

type CartRepository interface {
	SaveItem(ctx context.Context, item *domain.CartItem) error
	ListItems(ctx context.Context, userEmail string) ([]domain.CartItem, error)
	DeleteItem(ctx context.Context, userEmail, businessID string) error
	DeleteByBusiness(ctx context.Context, businessID string) error
}

// Leaderboard reads the rankings agg-svc maintains.
type Leaderboard interface {
	TopByLikes(ctx context.Context, limit int) ([]domain.RankedEntry, error)
	TopByRating(ctx context.Context, limit int) ([]domain.RankedEntry, error)
	TrendingToday(ctx context.Context, limit int) ([]domain.RankedEntry, error)
}

type EventPublisher interface {
	PublishDirectoryEvent(ctx context.Context, event domain.DirectoryEvent) error
}

type BusinessServiceInterface interface {
	Create(ctx context.Context, ownerID string, input domain.BusinessInput) (*domain.Business, error)
	Get(ctx context.Context, id string) (*domain.Business, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Business, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Business, error)
	Delete(ctx context.Context, ownerID, id string) error
	Popular(ctx context.Context, limit int) ([]domain.PopularBusiness, error)
	Trending(ctx context.Context, limit int) ([]domain.PopularBusiness, error)
	TopRated(ctx context.Context, limit int) ([]domain.PopularBusiness, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
}

type CategoryServiceInterface interface {
	List(ctx context.Context) ([]domain.Category, error)
	Add(ctx context.Context, category *domain.Category) error
}

type SliderServiceInterface interface {
	List(ctx context.Context) ([]domain.Slide, error)
}

type CartServiceInterface interface {
	Add(ctx context.Context, userEmail, businessID string) (*domain.CartItem, error)
	List(ctx context.Context, userEmail string) ([]domain.CartItem, error)
	Remove(ctx context.Context, userEmail, businessID string) error
}

var (
	_ BusinessServiceInterface = (*BusinessService)(nil)
	_ CategoryServiceInterface = (*CategoryService)(nil)
	_ SliderServiceInterface   = (*SliderService)(nil)
	_ CartServiceInterface     = (*CartService)(nil)
)

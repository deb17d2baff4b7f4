package service

import (
	"context"
	"strings"
	"time"

	"github.com/Densingh-123/Home-Services/directory-svc/internal/domain"
	"github.com/Densingh-123/Home-Services/docstore"
)

type CartService struct {
	repo       CartRepository
	businesses BusinessRepository
	now        func() time.Time
}

func NewCartService(repo CartRepository, businesses BusinessRepository) *CartService {
	return &CartService{
		repo:       repo,
		businesses: businesses,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Add saves a copy of the business for the user. Adding the same business
// again overwrites the earlier copy.
func (s *CartService) Add(ctx context.Context, userEmail, businessID string) (*domain.CartItem, error) {
	if userEmail == "" {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(businessID) == "" {
		return nil, ErrNotFound
	}
	business, err := s.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, storeError("read business", err)
	}

	item := &domain.CartItem{
		Business:   *business,
		ID:         CartItemID(userEmail, businessID),
		UserEmail:  userEmail,
		BusinessID: businessID,
		AddedAt:    s.now(),
	}
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, storeError("save cart item", err)
	}
	return item, nil
}

func (s *CartService) List(ctx context.Context, userEmail string) ([]domain.CartItem, error) {
	if userEmail == "" {
		return nil, ErrUnauthenticated
	}
	items, err := s.repo.ListItems(ctx, userEmail)
	if err != nil {
		return nil, storeError("list cart", err)
	}
	return items, nil
}

// Remove is a no-op when the business is not in the cart.
func (s *CartService) Remove(ctx context.Context, userEmail, businessID string) error {
	if userEmail == "" {
		return ErrUnauthenticated
	}
	if err := s.repo.DeleteItem(ctx, userEmail, businessID); err != nil {
		return storeError("remove cart item", err)
	}
	return nil
}

func CartItemID(userEmail, businessID string) string {
	return docstore.CompositeID(userEmail, businessID)
}

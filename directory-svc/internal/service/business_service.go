package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/directory-svc/internal/domain"
)

// DefaultPopularLimit matches what the home screen shows.
const DefaultPopularLimit = 10

type BusinessService struct {
	repo        BusinessRepository
	carts       CartRepository
	leaderboard Leaderboard
	publisher   EventPublisher
	qrEncoder   QRGenerator
	logger      *zap.Logger
	now         func() time.Time
}

func NewBusinessService(repo BusinessRepository, carts CartRepository, leaderboard Leaderboard, publisher EventPublisher, qr QRGenerator, logger *zap.Logger) *BusinessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BusinessService{
		repo:        repo,
		carts:       carts,
		leaderboard: leaderboard,
		publisher:   publisher,
		qrEncoder:   qr,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *BusinessService) Create(ctx context.Context, ownerID string, input domain.BusinessInput) (*domain.Business, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, &StoreError{Op: "generate id", Err: err}
	}
	business := &domain.Business{
		ID:        id.String(),
		Name:      input.Name,
		Category:  input.Category,
		Image:     input.Image,
		Address:   input.Address,
		Contact:   input.Contact,
		Website:   input.Website,
		About:     input.About,
		OwnerID:   ownerID,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateBusiness(ctx, business); err != nil {
		return nil, storeError("create business", err)
	}

	s.publish(ctx, domain.EventBusinessCreated, business.ID, ownerID)
	return business, nil
}

func (s *BusinessService) Get(ctx context.Context, id string) (*domain.Business, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	business, err := s.repo.GetBusiness(ctx, id)
	if err != nil {
		return nil, storeError("read business", err)
	}
	return business, nil
}

func (s *BusinessService) ListByCategory(ctx context.Context, category string) ([]domain.Business, error) {
	if strings.TrimSpace(category) == "" {
		return nil, invalidArgument("category is required")
	}
	businesses, err := s.repo.ListBusinesses(ctx, "category", category)
	if err != nil {
		return nil, storeError("list businesses", err)
	}
	return businesses, nil
}

func (s *BusinessService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Business, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	businesses, err := s.repo.ListBusinesses(ctx, "ownerId", ownerID)
	if err != nil {
		return nil, storeError("list businesses", err)
	}
	return businesses, nil
}

// Delete removes a business the caller owns along with every saved cart copy
// of it.
func (s *BusinessService) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}
	business, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if business.OwnerID != ownerID {
		return ErrForbidden
	}

	if err := s.repo.DeleteBusiness(ctx, id); err != nil {
		return storeError("delete business", err)
	}
	if err := s.carts.DeleteByBusiness(ctx, id); err != nil {
		return storeError("delete cart items", err)
	}

	s.publish(ctx, domain.EventBusinessDeleted, id, ownerID)
	return nil
}

// Popular ranks businesses by likes. When the leaderboard is empty or
// unreachable it falls back to the first businesses in the store.
func (s *BusinessService) Popular(ctx context.Context, limit int) ([]domain.PopularBusiness, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if s.leaderboard != nil {
		entries, err := s.leaderboard.TopByLikes(ctx, limit)
		if err != nil {
			s.logger.Warn("leaderboard unavailable, using store order", zap.Error(err))
		} else if ranked := s.resolve(ctx, entries); len(ranked) > 0 {
			return ranked, nil
		}
	}
	return s.fallback(ctx, limit)
}

// Trending ranks businesses by today's engagement events.
func (s *BusinessService) Trending(ctx context.Context, limit int) ([]domain.PopularBusiness, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if s.leaderboard != nil {
		entries, err := s.leaderboard.TrendingToday(ctx, limit)
		if err != nil {
			s.logger.Warn("trending unavailable, falling back to popular", zap.Error(err))
		} else if ranked := s.resolve(ctx, entries); len(ranked) > 0 {
			return ranked, nil
		}
	}
	return s.Popular(ctx, limit)
}

// TopRated ranks businesses by average rating. Businesses without ratings
// are never listed, so an empty leaderboard yields an empty result.
func (s *BusinessService) TopRated(ctx context.Context, limit int) ([]domain.PopularBusiness, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if s.leaderboard == nil {
		return []domain.PopularBusiness{}, nil
	}
	entries, err := s.leaderboard.TopByRating(ctx, limit)
	if err != nil {
		return nil, &StoreError{Op: "read rating leaderboard", Err: err}
	}
	return s.resolve(ctx, entries), nil
}

func (s *BusinessService) QRCode(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if s.qrEncoder == nil {
		return nil, errors.New("qr code generation is not configured")
	}
	return s.qrEncoder.Generate(id)
}

// resolve loads the ranked businesses, dropping ids that no longer exist.
func (s *BusinessService) resolve(ctx context.Context, entries []domain.RankedEntry) []domain.PopularBusiness {
	ranked := make([]domain.PopularBusiness, 0, len(entries))
	for _, entry := range entries {
		business, err := s.repo.GetBusiness(ctx, entry.BusinessID)
		if err != nil {
			continue
		}
		ranked = append(ranked, domain.PopularBusiness{
			Business:      *business,
			LikeCount:     entry.LikeCount,
			AverageRating: entry.AverageRating,
			Score:         entry.Score,
		})
	}
	return ranked
}

func (s *BusinessService) fallback(ctx context.Context, limit int) ([]domain.PopularBusiness, error) {
	businesses, err := s.repo.FirstBusinesses(ctx, limit)
	if err != nil {
		return nil, storeError("list businesses", err)
	}
	out := make([]domain.PopularBusiness, 0, len(businesses))
	for _, b := range businesses {
		out = append(out, domain.PopularBusiness{Business: b})
	}
	return out, nil
}

func (s *BusinessService) publish(ctx context.Context, eventType, businessID, userID string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishDirectoryEvent(ctx, domain.DirectoryEvent{
		Type:       eventType,
		BusinessID: businessID,
		UserID:     userID,
		Timestamp:  s.now(),
	})
	if err != nil {
		s.logger.Warn("failed to publish directory event",
			zap.String("type", eventType),
			zap.String("business_id", businessID),
			zap.Error(err),
		)
	}
}

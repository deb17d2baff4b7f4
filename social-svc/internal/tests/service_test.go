package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Densingh-123/Home-Services/docstore"
	"github.com/Densingh-123/Home-Services/docstore/memstore"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
	"github.com/Densingh-123/Home-Services/social-svc/internal/mocks"
	"github.com/Densingh-123/Home-Services/social-svc/internal/service"
	"github.com/Densingh-123/Home-Services/social-svc/internal/storage"
)

const businessID = "b1"

type fixture struct {
	ctx   context.Context
	store *memstore.Store
	svc   *service.MetricsService
}

func newFixture(t *testing.T, policy domain.RatingPolicy, publisher service.EngagementPublisher, guard service.ToggleGuard) *fixture {
	t.Helper()
	store := memstore.New()
	svc := service.NewMetricsService(service.Dependencies{
		Businesses: storage.NewBusinessRepository(store),
		Likes:      storage.NewLikeRepository(store),
		Ratings:    storage.NewRatingRepository(store),
		Comments:   storage.NewCommentRepository(store),
		Guard:      guard,
		Publisher:  publisher,
	}, policy)

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	f := &fixture{ctx: context.Background(), store: store, svc: svc}
	f.seedBusiness(t, businessID, docstore.Document{"name": "Acme Plumbing", "category": "Plumber"})
	return f
}

func (f *fixture) seedBusiness(t *testing.T, id string, doc docstore.Document) {
	t.Helper()
	require.NoError(t, f.store.Set(f.ctx, storage.BusinessCollection, id, doc, false))
}

func TestGetMetrics_NoRatingsIsNil(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	metrics, err := f.svc.GetMetrics(f.ctx, businessID, "")
	require.NoError(t, err)
	assert.Nil(t, metrics.AverageRating)
	assert.Equal(t, 0, metrics.RatingCount)
	assert.Equal(t, 0, metrics.LikeCount)
	assert.False(t, metrics.LikedByCaller)
	assert.NotNil(t, metrics.Comments)
	assert.Empty(t, metrics.Comments)
}

func TestGetMetrics_NotFound(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	_, err := f.svc.GetMetrics(f.ctx, "missing", "jane@example.com")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.svc.GetMetrics(f.ctx, "  ", "jane@example.com")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAddRating_AverageOfThree(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	for _, r := range []struct {
		user  string
		stars int
	}{{"u1", 5}, {"u2", 3}, {"u3", 4}} {
		_, err := f.svc.AddRating(f.ctx, businessID, r.user, r.stars)
		require.NoError(t, err)
	}

	metrics, err := f.svc.GetMetrics(f.ctx, businessID, "u1")
	require.NoError(t, err)
	require.NotNil(t, metrics.AverageRating)
	assert.Equal(t, 4.0, *metrics.AverageRating)
	assert.Equal(t, 3, metrics.RatingCount)
}

func TestAddRating_AverageIsOrderIndependent(t *testing.T) {
	orders := [][]int{
		{5, 4, 4, 1},
		{1, 4, 5, 4},
		{4, 1, 4, 5},
	}

	for _, order := range orders {
		f := newFixture(t, domain.RatingPolicyAppend, nil, nil)
		var last float64
		for _, stars := range order {
			avg, err := f.svc.AddRating(f.ctx, businessID, "u1", stars)
			require.NoError(t, err)
			last = avg
		}
		// (5+4+4+1)/4 = 3.5
		assert.Equal(t, 3.5, last)
	}
}

func TestAddRating_RoundsToOneDecimal(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	_, err := f.svc.AddRating(f.ctx, businessID, "u1", 5)
	require.NoError(t, err)
	_, err = f.svc.AddRating(f.ctx, businessID, "u2", 4)
	require.NoError(t, err)
	avg, err := f.svc.AddRating(f.ctx, businessID, "u3", 4)
	require.NoError(t, err)

	assert.Equal(t, 4.3, avg)
}

func TestAddRating_Validation(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	tests := []struct {
		name          string
		businessID    string
		caller        string
		stars         int
		expectedError error
	}{
		{name: "zero_stars", businessID: businessID, caller: "u1", stars: 0, expectedError: service.ErrInvalidArgument},
		{name: "six_stars", businessID: businessID, caller: "u1", stars: 6, expectedError: service.ErrInvalidArgument},
		{name: "no_caller", businessID: businessID, caller: "", stars: 3, expectedError: service.ErrUnauthenticated},
		{name: "unknown_business", businessID: "missing", caller: "u1", stars: 3, expectedError: service.ErrNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := f.svc.AddRating(f.ctx, testCase.businessID, testCase.caller, testCase.stars)
			assert.ErrorIs(t, err, testCase.expectedError)
		})
	}
	assert.Empty(t, f.store.IDs(storage.RatingsCollection))
}

func TestAddRating_Policies(t *testing.T) {
	tests := []struct {
		name          string
		policy        domain.RatingPolicy
		expectedAvg   float64
		expectedCount int
	}{
		{name: "append_keeps_history", policy: domain.RatingPolicyAppend, expectedAvg: 3.0, expectedCount: 3},
		{name: "replace_keeps_latest_per_user", policy: domain.RatingPolicyReplace, expectedAvg: 2.0, expectedCount: 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t, testCase.policy, nil, nil)
			_, err := f.svc.AddRating(f.ctx, businessID, "u1", 5)
			require.NoError(t, err)
			_, err = f.svc.AddRating(f.ctx, businessID, "u2", 3)
			require.NoError(t, err)
			avg, err := f.svc.AddRating(f.ctx, businessID, "u1", 1)
			require.NoError(t, err)

			assert.Equal(t, testCase.expectedAvg, avg)
			metrics, err := f.svc.GetMetrics(f.ctx, businessID, "")
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedCount, metrics.RatingCount)
		})
	}
}

func TestAddRating_IncludesLegacyEmbeddedRatings(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)
	f.seedBusiness(t, "legacy", docstore.Document{
		"name": "Old Sparks",
		"ratings": []any{
			map[string]any{"userId": "old@example.com", "rating": 5},
			map[string]any{"userId": "x", "rating": "bogus"},
		},
	})

	avg, err := f.svc.AddRating(f.ctx, "legacy", "u1", 3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)
}

func TestAddRating_PlaceholderRatingsAreAnonymous(t *testing.T) {
	tests := []struct {
		name   string
		policy domain.RatingPolicy
	}{
		{name: "append", policy: domain.RatingPolicyAppend},
		{name: "replace", policy: domain.RatingPolicyReplace},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t, testCase.policy, nil, nil)
			f.seedBusiness(t, "legacy", docstore.Document{
				"name": "Old Sparks",
				"ratings": []any{
					map[string]any{"userId": "user-id", "rating": 5},
					map[string]any{"userId": "user-id", "rating": 5},
					map[string]any{"userId": "user-id", "rating": 1},
				},
			})

			metrics, err := f.svc.GetMetrics(f.ctx, "legacy", "")
			require.NoError(t, err)
			assert.Equal(t, 3, metrics.RatingCount)
			require.NotNil(t, metrics.AverageRating)
			assert.Equal(t, 3.7, *metrics.AverageRating)

			_, err = f.svc.AddRating(f.ctx, "legacy", "user-id", 4)
			assert.ErrorIs(t, err, service.ErrUnauthenticated)
			assert.Empty(t, f.store.IDs(storage.RatingsCollection))
		})
	}
}

func TestGetMetrics_PlaceholderCallerMatchesNoLike(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)
	f.seedBusiness(t, "legacy", docstore.Document{
		"name":  "Old Sparks",
		"likes": []any{"user-id", "a@example.com"},
	})

	metrics, err := f.svc.GetMetrics(f.ctx, "legacy", "user-id")
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.LikeCount)
	assert.False(t, metrics.LikedByCaller)

	_, err = f.svc.ToggleLike(f.ctx, "legacy", " user-id ")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
	assert.Empty(t, f.store.IDs(storage.LikesCollection))
}

func TestToggleLike_UnderscoreIDsDoNotCollide(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyReplace, nil, nil)
	f.seedBusiness(t, "a", docstore.Document{"name": "A"})
	f.seedBusiness(t, "a_b", docstore.Document{"name": "A B"})

	_, err := f.svc.ToggleLike(f.ctx, "a", "b_c@example.com")
	require.NoError(t, err)
	_, err = f.svc.ToggleLike(f.ctx, "a_b", "c@example.com")
	require.NoError(t, err)
	_, err = f.svc.AddRating(f.ctx, "a", "b_c@example.com", 5)
	require.NoError(t, err)
	_, err = f.svc.AddRating(f.ctx, "a_b", "c@example.com", 1)
	require.NoError(t, err)

	first, err := f.svc.GetMetrics(f.ctx, "a", "b_c@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, first.LikeCount)
	assert.True(t, first.LikedByCaller)
	require.NotNil(t, first.AverageRating)
	assert.Equal(t, 5.0, *first.AverageRating)

	second, err := f.svc.GetMetrics(f.ctx, "a_b", "c@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, second.LikeCount)
	assert.True(t, second.LikedByCaller)
	require.NotNil(t, second.AverageRating)
	assert.Equal(t, 1.0, *second.AverageRating)

	assert.Len(t, f.store.IDs(storage.LikesCollection), 2)
	assert.Len(t, f.store.IDs(storage.RatingsCollection), 2)
}

func TestToggleLike_FlipsEachCall(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)
	caller := "jane@example.com"

	liked, err := f.svc.ToggleLike(f.ctx, businessID, caller)
	require.NoError(t, err)
	assert.True(t, liked)

	metrics, err := f.svc.GetMetrics(f.ctx, businessID, caller)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.LikeCount)
	assert.True(t, metrics.LikedByCaller)

	liked, err = f.svc.ToggleLike(f.ctx, businessID, caller)
	require.NoError(t, err)
	assert.False(t, liked)

	metrics, err = f.svc.GetMetrics(f.ctx, businessID, caller)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.LikeCount)
	assert.False(t, metrics.LikedByCaller)
}

func TestToggleLike_EvenCallsRestoreMembership(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	_, err := f.svc.ToggleLike(f.ctx, businessID, "other@example.com")
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		_, err := f.svc.ToggleLike(f.ctx, businessID, "jane@example.com")
		require.NoError(t, err)
	}

	metrics, err := f.svc.GetMetrics(f.ctx, businessID, "jane@example.com")
	require.NoError(t, err)
	assert.False(t, metrics.LikedByCaller)
	assert.Equal(t, 1, metrics.LikeCount)
	assert.Equal(t, []string{businessID + "_other@example.com"}, f.store.IDs(storage.LikesCollection))
}

func TestToggleLike_Unauthenticated(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	_, err := f.svc.ToggleLike(f.ctx, businessID, "")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
	assert.Empty(t, f.store.IDs(storage.LikesCollection))
}

func TestToggleLike_NotFound(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	_, err := f.svc.ToggleLike(f.ctx, "missing", "jane@example.com")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Empty(t, f.store.IDs(storage.LikesCollection))
}

func TestToggleLike_NormalizesLegacyShapes(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)
	f.seedBusiness(t, "legacy", docstore.Document{
		"name":  "Old Sparks",
		"likes": []any{"a@example.com", "b@example.com"},
	})
	require.NoError(t, f.store.Set(f.ctx, storage.LikesCollection, "legacy", docstore.Document{
		"businessId": "legacy",
		"users":      []any{"b@example.com", "c@example.com"},
	}, false))

	metrics, err := f.svc.GetMetrics(f.ctx, "legacy", "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, metrics.LikeCount)
	assert.True(t, metrics.LikedByCaller)

	liked, err := f.svc.ToggleLike(f.ctx, "legacy", "b@example.com")
	require.NoError(t, err)
	assert.False(t, liked)

	business, err := f.store.Get(f.ctx, storage.BusinessCollection, "legacy")
	require.NoError(t, err)
	assert.Equal(t, []any{"a@example.com"}, business["likes"])
	perBusiness, err := f.store.Get(f.ctx, storage.LikesCollection, "legacy")
	require.NoError(t, err)
	assert.Equal(t, []any{"c@example.com"}, perBusiness["users"])

	metrics, err = f.svc.GetMetrics(f.ctx, "legacy", "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.LikeCount)
	assert.False(t, metrics.LikedByCaller)

	liked, err = f.svc.ToggleLike(f.ctx, "legacy", "b@example.com")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Contains(t, f.store.IDs(storage.LikesCollection), "legacy_b@example.com")
}

func TestGetMetrics_LegacyLikeCounterIgnored(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)
	f.seedBusiness(t, "counter", docstore.Document{"name": "Counted", "likes": 12})

	metrics, err := f.svc.GetMetrics(f.ctx, "counter", "")
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.LikeCount)
}

func TestToggleLike_UsesGuard(t *testing.T) {
	guard := mocks.NewToggleGuard(t)
	f := newFixture(t, domain.RatingPolicyAppend, nil, guard)

	released := false
	guard.On("Acquire", mock.Anything, businessID, "jane@example.com").
		Return(func() { released = true }, nil).Once()

	liked, err := f.svc.ToggleLike(f.ctx, businessID, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, released)

	guard.On("Acquire", mock.Anything, businessID, "jane@example.com").
		Return(nil, context.DeadlineExceeded).Once()

	_, err = f.svc.ToggleLike(f.ctx, businessID, "jane@example.com")
	assert.ErrorIs(t, err, service.ErrStore)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, f.store.IDs(storage.LikesCollection), 1)
}

func TestAddComment_RejectsBlankText(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := f.svc.AddComment(f.ctx, businessID, "u1", text, 5)
		assert.ErrorIs(t, err, service.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "please write a comment")
	}
	assert.Empty(t, f.store.IDs(storage.CommentsCollection))
}

func TestAddComment_Validation(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	_, err := f.svc.AddComment(f.ctx, businessID, "", "Great!", 5)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)

	_, err = f.svc.AddComment(f.ctx, businessID, "u1", "Great!", 9)
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	_, err = f.svc.AddComment(f.ctx, "missing", "u1", "Great!", 5)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.Empty(t, f.store.IDs(storage.CommentsCollection))
}

func TestAddComment_AppendsInOrder(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)

	firstID, err := f.svc.AddComment(f.ctx, businessID, "u1", "Great!", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, firstID)

	metrics, err := f.svc.GetMetrics(f.ctx, businessID, "")
	require.NoError(t, err)
	require.Len(t, metrics.Comments, 1)
	assert.Equal(t, "u1", metrics.Comments[0].UserID)
	assert.Equal(t, "Great!", metrics.Comments[0].Comment)
	assert.Equal(t, 5, metrics.Comments[0].Rating)

	secondID, err := f.svc.AddComment(f.ctx, businessID, "jane@example.com", "  Fast and tidy  ", 0)
	require.NoError(t, err)

	metrics, err = f.svc.GetMetrics(f.ctx, businessID, "")
	require.NoError(t, err)
	require.Len(t, metrics.Comments, 2)
	assert.Equal(t, firstID, metrics.Comments[0].ID)
	assert.Equal(t, secondID, metrics.Comments[1].ID)
	assert.Equal(t, "Fast and tidy", metrics.Comments[1].Comment)
	assert.Equal(t, "jane", metrics.Comments[1].Author)
	assert.Equal(t, 0, metrics.Comments[1].Rating)
	// comment stars are not part of the average
	assert.Nil(t, metrics.AverageRating)
}

func TestGetMetrics_LegacyCommentsComeFirst(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)
	f.seedBusiness(t, "legacy", docstore.Document{
		"name": "Old Sparks",
		"comments": []any{
			map[string]any{"userId": "old@example.com", "comment": "Back then", "rating": 4},
			map[string]any{"userId": "old@example.com", "comment": "  "},
		},
	})

	_, err := f.svc.AddComment(f.ctx, "legacy", "new@example.com", "Still good", 5)
	require.NoError(t, err)

	metrics, err := f.svc.GetMetrics(f.ctx, "legacy", "")
	require.NoError(t, err)
	require.Len(t, metrics.Comments, 2)
	assert.Equal(t, "Back then", metrics.Comments[0].Comment)
	assert.Equal(t, "old", metrics.Comments[0].Author)
	assert.Equal(t, "Still good", metrics.Comments[1].Comment)
}

func TestService_StoreFailure(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)
	cause := errors.New("backend unavailable")
	f.store.FailWith = cause

	_, err := f.svc.GetMetrics(f.ctx, businessID, "u1")
	assert.ErrorIs(t, err, service.ErrStore)
	assert.ErrorIs(t, err, cause)

	_, err = f.svc.ToggleLike(f.ctx, businessID, "u1")
	assert.ErrorIs(t, err, service.ErrStore)

	_, err = f.svc.AddRating(f.ctx, businessID, "u1", 3)
	assert.ErrorIs(t, err, service.ErrStore)

	_, err = f.svc.AddComment(f.ctx, businessID, "u1", "hi", 3)
	assert.ErrorIs(t, err, service.ErrStore)

	var storeErr *service.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "read business", storeErr.Op)
}

func TestService_PublishesEngagementEvents(t *testing.T) {
	publisher := mocks.NewEngagementPublisher(t)
	f := newFixture(t, domain.RatingPolicyAppend, publisher, nil)

	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.EngagementEvent) bool {
		return e.Type == domain.EventLikeAdded && e.BusinessID == businessID && e.UserID == "u1"
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.EngagementEvent) bool {
		return e.Type == domain.EventRatingAdded && e.Rating == 4
	})).Return(errors.New("broker down")).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.EngagementEvent) bool {
		return e.Type == domain.EventCommentAdded
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.EngagementEvent) bool {
		return e.Type == domain.EventLikeRemoved
	})).Return(nil).Once()

	_, err := f.svc.ToggleLike(f.ctx, businessID, "u1")
	require.NoError(t, err)
	// a failed publish does not fail the mutation
	_, err = f.svc.AddRating(f.ctx, businessID, "u1", 4)
	require.NoError(t, err)
	_, err = f.svc.AddComment(f.ctx, businessID, "u1", "Nice", 0)
	require.NoError(t, err)
	_, err = f.svc.ToggleLike(f.ctx, businessID, "u1")
	require.NoError(t, err)
}

func TestLikedBusinesses(t *testing.T) {
	f := newFixture(t, domain.RatingPolicyAppend, nil, nil)
	f.seedBusiness(t, "b2", docstore.Document{"name": "Bright Cleaners", "image": "b2.png"})
	f.seedBusiness(t, "b3", docstore.Document{"name": "Gone Soon"})
	caller := "jane@example.com"

	for _, id := range []string{businessID, "b2", "b3"} {
		_, err := f.svc.ToggleLike(f.ctx, id, caller)
		require.NoError(t, err)
	}
	_, err := f.svc.ToggleLike(f.ctx, "b2", "other@example.com")
	require.NoError(t, err)
	_, err = f.svc.AddRating(f.ctx, "b2", "other@example.com", 5)
	require.NoError(t, err)
	require.NoError(t, f.store.Delete(f.ctx, storage.BusinessCollection, "b3"))

	liked, err := f.svc.LikedBusinesses(f.ctx, caller)
	require.NoError(t, err)
	require.Len(t, liked, 2)
	assert.Equal(t, "b2", liked[0].BusinessID)
	assert.Equal(t, "Bright Cleaners", liked[0].Name)
	assert.Equal(t, 2, liked[0].LikeCount)
	require.NotNil(t, liked[0].AverageRating)
	assert.Equal(t, 5.0, *liked[0].AverageRating)
	assert.Equal(t, businessID, liked[1].BusinessID)
	assert.Nil(t, liked[1].AverageRating)

	_, err = f.svc.LikedBusinesses(f.ctx, "")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

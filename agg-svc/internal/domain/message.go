package domain

import (
	"errors"
	"time"
)

// Event types carried on the engagement topic. The first four come from
// social-svc, the last two from directory-svc.
const (
	EventLikeAdded       = "like_added"
	EventLikeRemoved     = "like_removed"
	EventRatingAdded     = "rating_added"
	EventCommentAdded    = "comment_added"
	EventBusinessCreated = "business_created"
	EventBusinessDeleted = "business_deleted"
)

var (
	ErrMalformedEvent = errors.New("malformed event")
	ErrBusinessGone   = errors.New("business no longer exists")
)

type Event struct {
	Type       string    `json:"type"`
	BusinessID string    `json:"business_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// IsEngagement reports whether the event counts towards daily activity.
func (e Event) IsEngagement() bool {
	switch e.Type {
	case EventLikeAdded, EventLikeRemoved, EventRatingAdded, EventCommentAdded:
		return true
	}
	return false
}

// Snapshot is the subset of a business' social metrics the leaderboards need.
// AverageRating is nil when the business has no ratings.
type Snapshot struct {
	BusinessID    string
	LikeCount     int
	AverageRating *float64
	RatingCount   int
}

package domain

import "time"

// Business is the subset of a BusinessList document the aggregator reads.
// The Legacy* fields hold engagement arrays embedded by older clients; they
// are read but never appended to.
type Business struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
	OwnerID  string `json:"ownerId,omitempty"`

	LegacyLikes    []string  `json:"-"`
	LegacyRatings  []Rating  `json:"-"`
	LegacyComments []Comment `json:"-"`
}

// Like is the canonical like record: one per (business, user) pair.
type Like struct {
	BusinessID string    `json:"businessId"`
	UserID     string    `json:"userId"`
	LikedAt    time.Time `json:"likedAt"`
}

type Rating struct {
	ID         string     `json:"id,omitempty"`
	BusinessID string     `json:"businessId"`
	UserID     string     `json:"userId"`
	Rating     int        `json:"rating"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

type Comment struct {
	ID         string     `json:"id,omitempty"`
	BusinessID string     `json:"businessId,omitempty"`
	UserID     string     `json:"userId"`
	Author     string     `json:"author,omitempty"`
	Comment    string     `json:"comment"`
	Rating     int        `json:"rating"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// Metrics is the read model of a business' engagement. AverageRating is nil
// when the business has no ratings.
type Metrics struct {
	BusinessID    string    `json:"businessId"`
	LikeCount     int       `json:"likeCount"`
	LikedByCaller bool      `json:"likedByCaller"`
	AverageRating *float64  `json:"averageRating"`
	RatingCount   int       `json:"ratingCount"`
	Comments      []Comment `json:"comments"`
}

// LikedBusiness is one row of the caller's liked list.
type LikedBusiness struct {
	BusinessID    string    `json:"businessId"`
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	Category      string    `json:"category"`
	LikeCount     int       `json:"likeCount"`
	AverageRating *float64  `json:"averageRating"`
	LikedAt       time.Time `json:"likedAt"`
}

const (
	EventLikeAdded    = "like_added"
	EventLikeRemoved  = "like_removed"
	EventRatingAdded  = "rating_added"
	EventCommentAdded = "comment_added"
)

type EngagementEvent struct {
	Type       string    `json:"type"`
	BusinessID string    `json:"business_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// RatingPolicy decides what happens when a user rates a business again.
type RatingPolicy string

const (
	// RatingPolicyAppend keeps every rating ever submitted.
	RatingPolicyAppend RatingPolicy = "append"
	// RatingPolicyReplace keeps one rating per user; the latest wins.
	RatingPolicyReplace RatingPolicy = "replace"
)

func (p RatingPolicy) Valid() bool {
	return p == RatingPolicyAppend || p == RatingPolicyReplace
}

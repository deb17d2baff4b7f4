package domain

import "time"

type Business struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Image     string    `json:"image"`
	Address   string    `json:"address"`
	Contact   string    `json:"contact"`
	Website   string    `json:"website"`
	About     string    `json:"about"`
	OwnerID   string    `json:"ownerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BusinessInput is what an owner submits when listing a business.
type BusinessInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Category string `json:"category" validate:"required,max=60"`
	Image    string `json:"image" validate:"omitempty,url"`
	Address  string `json:"address" validate:"max=300"`
	Contact  string `json:"contact" validate:"max=40"`
	Website  string `json:"website" validate:"omitempty,url"`
	About    string `json:"about" validate:"max=2000"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required,max=60"`
	Icon string `json:"icon" validate:"omitempty,url"`
}

// Slide is a home screen banner.
type Slide struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	ImageURL string `json:"imageUrl"`
}

// CartItem is a saved copy of a business, one per (user, business).
type CartItem struct {
	Business
	ID         string    `json:"id"`
	UserEmail  string    `json:"userEmail"`
	BusinessID string    `json:"businessId"`
	AddedAt    time.Time `json:"addedAt"`
}

// PopularBusiness is a business with the engagement figures it was ranked by.
// AverageRating is nil when the business has no ratings or was not ranked.
type PopularBusiness struct {
	Business
	LikeCount     int      `json:"likeCount"`
	AverageRating *float64 `json:"averageRating"`
	Score         float64  `json:"score"`
}

// RankedEntry is one row of a leaderboard.
type RankedEntry struct {
	BusinessID    string
	Score         float64
	LikeCount     int
	AverageRating *float64
}

const (
	EventBusinessCreated = "business_created"
	EventBusinessDeleted = "business_deleted"
)

type DirectoryEvent struct {
	Type       string    `json:"type"`
	BusinessID string    `json:"business_id"`
	UserID     string    `json:"user_id"`
	Timestamp  time.Time `json:"timestamp"`
}

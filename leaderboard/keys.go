// Package leaderboard names the Redis keys agg-svc maintains and
// directory-svc reads.
package leaderboard

import "time"

const (
	// PopularByLikes is a sorted set of business ids scored by like count.
	PopularByLikes = "popular:likes"
	// PopularByRating is a sorted set of business ids scored by average rating.
	PopularByRating = "popular:rating"

	SnapshotTTL = 24 * time.Hour
	ActivityTTL = 7 * 24 * time.Hour

	FieldLikeCount   = "like_count"
	FieldAvgRating   = "avg_rating"
	FieldRatingCount = "rating_count"
	FieldLastUpdated = "last_updated"
)

// SnapshotKey is the hash holding the latest metrics of one business.
func SnapshotKey(businessID string) string {
	return "business:" + businessID
}

// DailyActivityKey is a sorted set of business ids scored by the number of
// engagement events on the given UTC day.
func DailyActivityKey(day time.Time) string {
	return "activity:daily:" + day.UTC().Format("2006-01-02")
}

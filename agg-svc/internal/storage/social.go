package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Densingh-123/Home-Services/agg-svc/internal/domain"
)

// SocialClient reads business metrics from social-svc, which owns the
// like, rating and comment records.
type SocialClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewSocialClient(baseURL string) *SocialClient {
	return &SocialClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type metricsResponse struct {
	BusinessID    string   `json:"businessId"`
	LikeCount     int      `json:"likeCount"`
	AverageRating *float64 `json:"averageRating"`
	RatingCount   int      `json:"ratingCount"`
}

func (c *SocialClient) Fetch(ctx context.Context, businessID string) (*domain.Snapshot, error) {
	endpoint := fmt.Sprintf("%s/api/businesses/%s/metrics", c.BaseURL, url.PathEscape(businessID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("social-svc request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrBusinessGone
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("social-svc returned %d", resp.StatusCode)
	}

	var body metricsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	return &domain.Snapshot{
		BusinessID:    businessID,
		LikeCount:     body.LikeCount,
		AverageRating: body.AverageRating,
		RatingCount:   body.RatingCount,
	}, nil
}

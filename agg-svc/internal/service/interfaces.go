package service

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Densingh-123/Home-Services/agg-svc/internal/domain"
	"github.com/Densingh-123/Home-Services/agg-svc/internal/storage"
)

type StoreInterface interface {
	UpdateSnapshot(ctx context.Context, snapshot domain.Snapshot) error
	RecordActivity(ctx context.Context, businessID string, at time.Time) error
	Remove(ctx context.Context, businessID string) error
}

// MetricsSource reads the current metrics of a business. It returns
// domain.ErrBusinessGone when the business has been deleted.
type MetricsSource interface {
	Fetch(ctx context.Context, businessID string) (*domain.Snapshot, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context) error
	Process(ctx context.Context, event domain.Event) error
}

var (
	_ StoreInterface    = (*storage.RedisStore)(nil)
	_ MetricsSource     = (*storage.SocialClient)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)

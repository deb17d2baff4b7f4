package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/agg-svc/internal/domain"
)

const (
	resultProcessed = "processed"
	resultSkipped   = "skipped"
	resultFailed    = "failed"
)

// ConsumerMetrics counts handled events by type and result.
type ConsumerMetrics struct {
	Events *prometheus.CounterVec
}

func NewConsumerMetrics() *ConsumerMetrics {
	return &ConsumerMetrics{
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agg_events_total",
				Help: "Engagement events handled by the aggregation worker",
			},
			[]string{"type", "result"},
		),
	}
}

type Consumer struct {
	Reader     MessageReader
	Store      StoreInterface
	Source     MetricsSource
	Logger     *zap.Logger
	Metrics    *ConsumerMetrics
	RetryDelay time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, source MetricsSource, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		Reader:     reader,
		Store:      store,
		Source:     source,
		Logger:     logger,
		RetryDelay: time.Second,
	}
}

// Start reads until ctx is cancelled. Malformed messages and failed updates
// are logged and skipped; the next event for the same business recomputes
// its snapshot from scratch.
func (c *Consumer) Start(ctx context.Context) error {
	c.Logger.Info("Starting Aggregation Service consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.Logger.Error("failed to read message", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.RetryDelay):
			}
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Logger.Warn("skipping malformed message",
				zap.Int64("offset", message.Offset),
				zap.Error(err),
			)
			c.count("unknown", resultSkipped)
			continue
		}

		if err := c.Process(ctx, event); err != nil {
			level := c.Logger.Error
			result := resultFailed
			if errors.Is(err, domain.ErrMalformedEvent) {
				level = c.Logger.Warn
				result = resultSkipped
			}
			level("failed to process event",
				zap.String("type", event.Type),
				zap.String("business_id", event.BusinessID),
				zap.Error(err),
			)
			c.count(event.Type, result)
			continue
		}
		c.count(event.Type, resultProcessed)
	}
}

// Process refreshes the snapshot and rankings of the event's business.
// Unknown event types are ignored.
func (c *Consumer) Process(ctx context.Context, event domain.Event) error {
	businessID := strings.TrimSpace(event.BusinessID)
	if businessID == "" {
		return fmt.Errorf("%w: missing business_id", domain.ErrMalformedEvent)
	}

	switch {
	case event.Type == domain.EventBusinessDeleted:
		return c.remove(ctx, businessID)
	case event.Type == domain.EventBusinessCreated, event.IsEngagement():
	default:
		c.Logger.Debug("ignoring event", zap.String("type", event.Type))
		return nil
	}

	snapshot, err := c.Source.Fetch(ctx, businessID)
	if errors.Is(err, domain.ErrBusinessGone) {
		return c.remove(ctx, businessID)
	}
	if err != nil {
		return fmt.Errorf("fetch metrics: %w", err)
	}
	if err := c.Store.UpdateSnapshot(ctx, *snapshot); err != nil {
		return fmt.Errorf("update snapshot: %w", err)
	}

	if event.IsEngagement() {
		at := event.Timestamp
		if at.IsZero() {
			at = time.Now()
		}
		if err := c.Store.RecordActivity(ctx, businessID, at); err != nil {
			return fmt.Errorf("record activity: %w", err)
		}
	}

	c.Logger.Debug("snapshot refreshed",
		zap.String("type", event.Type),
		zap.String("business_id", businessID),
		zap.Int("like_count", snapshot.LikeCount),
	)
	return nil
}

func (c *Consumer) remove(ctx context.Context, businessID string) error {
	if err := c.Store.Remove(ctx, businessID); err != nil {
		return fmt.Errorf("remove business: %w", err)
	}
	c.Logger.Info("business removed from rankings", zap.String("business_id", businessID))
	return nil
}

func (c *Consumer) count(eventType, result string) {
	if c.Metrics == nil {
		return
	}
	c.Metrics.Events.WithLabelValues(eventType, result).Inc()
}

package outbox

import (
	"context"
	"time"

	"github.com/rafaelleal24/stock-control/internal/adapters/config"
	"github.com/rafaelleal24/stock-control/internal/core/logger"
	"github.com/rafaelleal24/stock-control/internal/core/port"
)

// Handler relays staged events to the broker on a fixed interval. Delivery is
// at least once: an event whose delete fails is published again next tick.
type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	return &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    config.BatchSize,
	}
}

// Start blocks until ctx is cancelled.
func (h *Handler) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	logger.Info(ctx, "outbox: relay started", map[string]any{
		"interval_ms": h.interval.Milliseconds(),
		"batch":       h.batch,
	})

	for {
		select {
		case <-ctx.Done():
			logger.Info(context.Background(), "outbox: relay stopped", nil)
			return
		case <-ticker.C:
			h.Relay(ctx)
		}
	}
}

// Relay publishes one batch and returns how many events were delivered.
func (h *Handler) Relay(ctx context.Context) int {
	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": h.batch,
		})
		return 0
	}

	delivered := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}

		attrs := map[string]any{
			"event_id":    entry.ID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
			"staged_at":   entry.StagedAt,
		}
		if err := h.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			logger.Error(ctx, "outbox: failed to publish event", err, attrs)
			continue
		}
		delivered++

		logger.Debug(ctx, "outbox: event published", attrs)

		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, attrs)
		}
	}
	return delivered
}

package processors

import (
	"context"

	"greengrass/internal/events"
	"greengrass/internal/logger"
)

// Invalidator drops a cached settings value.
type Invalidator interface {
	Invalidate(ctx context.Context, key string)
}

// Rebuilder recomputes the storefront snapshots.
type Rebuilder interface {
	Rebuild(ctx context.Context, event events.ChangeEvent) error
	RebuildAll(ctx context.Context) error
}

// EventProcessor reacts to a change by dropping stale cache entries and
// rebuilding what depends on them. It never applies the change itself; all
// state is re-read from the database.
type EventProcessor struct {
	cache     Invalidator
	snapshots Rebuilder
	logger    *logger.Logger
}

func NewEventProcessor(cache Invalidator, snapshots Rebuilder, logger *logger.Logger) *EventProcessor {
	return &EventProcessor{cache: cache, snapshots: snapshots, logger: logger}
}

func (ep *EventProcessor) Process(ctx context.Context, event events.ChangeEvent) error {
	ep.logger.Debug("Processing %s on %s (id=%s key=%s)", event.Action, event.Table, event.ID, event.Key)

	if event.Table == "site_settings" && event.Key != "" && ep.cache != nil {
		ep.cache.Invalidate(ctx, event.Key)
	}

	if err := ep.snapshots.Rebuild(ctx, event); err != nil {
		return err
	}

	ep.logger.Debug("Event processed successfully")
	return nil
}

// HandleChange lets the processor serve the Postgres listener too.
func (ep *EventProcessor) HandleChange(ctx context.Context, event events.ChangeEvent) error {
	return ep.Process(ctx, event)
}

func (ep *EventProcessor) Resync(ctx context.Context) error {
	return ep.snapshots.RebuildAll(ctx)
}

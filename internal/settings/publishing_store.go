package settings

import (
	"context"
	"encoding/json"
	"time"

	"greengrass/internal/events"
	"greengrass/internal/logger"
)

// PublishingStore announces every successful upsert as a change event so
// other processes re-fetch. A failed publish is logged, never returned.
type PublishingStore struct {
	Store
	publisher events.Publisher
	logger    *logger.Logger
}

func NewPublishingStore(next Store, publisher events.Publisher, logger *logger.Logger) *PublishingStore {
	return &PublishingStore{Store: next, publisher: publisher, logger: logger}
}

func (s *PublishingStore) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	if err := s.Store.Upsert(ctx, key, value); err != nil {
		return err
	}

	err := s.publisher.Publish(ctx, events.ChangeEvent{
		Table:     "site_settings",
		Action:    events.ActionUpdate,
		Key:       key,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to publish change for %s: %v", key, err)
	}
	return nil
}

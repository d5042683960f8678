package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"greengrass/internal/logger"
	"greengrass/internal/settings"
)

var (
	ErrLoadFailed = errors.New("failed to load payment settings")
	ErrSaveFailed = errors.New("failed to save gateways")
)

type Service struct {
	store  settings.Store
	logger *logger.Logger
}

func NewService(store settings.Store, logger *logger.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Load returns the stored gateways reconciled with the defaults. A missing
// or unreadable value counts as an empty list.
func (s *Service) Load(ctx context.Context) ([]Gateway, error) {
	var existing []Gateway

	raw, err := s.store.Get(ctx, settings.KeyPaymentGateways)
	switch {
	case errors.Is(err, settings.ErrNotFound):
	case err != nil:
		s.logger.Error("Failed to load payment gateways: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	default:
		if err := json.Unmarshal(raw, &existing); err != nil {
			s.logger.Warn("Stored payment gateways are not a list, using defaults: %v", err)
			existing = nil
		}
	}

	return Reconcile(DefaultGateways(), existing), nil
}

// Save replaces the stored gateway list. The list is reconciled first so a
// caller can never persist a collection missing a known type.
func (s *Service) Save(ctx context.Context, gateways []Gateway) ([]Gateway, error) {
	if err := Validate(gateways); err != nil {
		return nil, err
	}

	reconciled := Reconcile(DefaultGateways(), gateways)
	if err := settings.Save(ctx, s.store, settings.KeyPaymentGateways, reconciled); err != nil {
		s.logger.Error("Failed to save payment gateways: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	s.logger.Info("Saved %d payment gateways", len(reconciled))
	return reconciled, nil
}

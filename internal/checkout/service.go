package checkout

import (
	"context"
	"errors"
	"fmt"

	"greengrass/internal/catalog"
	"greengrass/internal/logger"
	"greengrass/internal/models"
	"greengrass/internal/payments"
	"greengrass/internal/settings"
)

var ErrSaveFailed = errors.New("failed to save settings")

type Service struct {
	store    settings.Store
	products *catalog.ProductService
	gateways *payments.Service
	pricing  Pricing
	logger   *logger.Logger
}

func NewService(store settings.Store, products *catalog.ProductService, gateways *payments.Service, pricing Pricing, logger *logger.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		gateways: gateways,
		pricing:  pricing,
		logger:   logger,
	}
}

// Settings returns the stored toggles merged over the defaults. A value
// that cannot be read yields the defaults.
func (s *Service) Settings(ctx context.Context) Settings {
	v, err := settings.Load(ctx, s.store, settings.KeyCheckoutSettings, DefaultSettings())
	if err != nil {
		s.logger.Warn("Failed to load checkout settings, using defaults: %v", err)
	}
	return v
}

func (s *Service) SaveSettings(ctx context.Context, v Settings) error {
	if err := settings.Save(ctx, s.store, settings.KeyCheckoutSettings, v); err != nil {
		s.logger.Error("Failed to save checkout settings: %v", err)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}

func (s *Service) Methods(ctx context.Context) (Methods, error) {
	gateways, err := s.gateways.Load(ctx)
	if err != nil {
		return Methods{}, err
	}
	return AvailableMethods(gateways, s.Settings(ctx)), nil
}

// Quote prices the cart from the product table and attaches the payment
// methods the shopper can choose from.
func (s *Service) Quote(ctx context.Context, lines []Line) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, ErrEmptyCart
	}
	if err := settings.Validate(lines); err != nil {
		return Quote{}, err
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	found, err := s.products.ByIDs(ctx, ids)
	if err != nil {
		return Quote{}, err
	}
	byID := make(map[string]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	q, err := s.pricing.Price(lines, byID)
	if err != nil {
		return Quote{}, err
	}

	methods, err := s.Methods(ctx)
	if err != nil {
		return Quote{}, err
	}
	q.Methods = &methods
	return q, nil
}

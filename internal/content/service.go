package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"greengrass/internal/logger"
	"greengrass/internal/settings"
)

var (
	ErrLoadFailed = errors.New("failed to load content")
	ErrSaveFailed = errors.New("failed to save content")
)

type page struct {
	blank func() interface{}
	load  func(ctx context.Context, store settings.Store, key string) (interface{}, error)
}

func pageOf[T any](defaults func() T) page {
	return page{
		blank: func() interface{} {
			return new(T)
		},
		load: func(ctx context.Context, store settings.Store, key string) (interface{}, error) {
			return settings.Load(ctx, store, key, defaults())
		},
	}
}

var pages = map[string]page{
	settings.KeyFAQCategories:        pageOf(DefaultFAQCategories),
	settings.KeyFAQItems:             pageOf(DefaultFAQItems),
	settings.KeyReturnPolicySections: pageOf(DefaultReturnPolicy),
	settings.KeyPrivacySections:      pageOf(DefaultPrivacyPolicy),
	settings.KeyTermsSections:        pageOf(DefaultTerms),
	settings.KeyAboutContent:         pageOf(DefaultAboutPage),
	settings.KeyContactContent:       pageOf(DefaultContactPage),
}

// Keys lists the settings keys that hold page content.
func Keys() []string {
	keys := make([]string, 0, len(pages))
	for k := range pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Register adds the page content schemas to r.
func Register(r *settings.Registry) {
	for key, p := range pages {
		r.Register(key, p.blank)
	}
}

type Service struct {
	store  settings.Store
	logger *logger.Logger
}

func NewService(store settings.Store, logger *logger.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the content stored under key, or its built-in default when
// nothing has been saved yet.
func (s *Service) Get(ctx context.Context, key string) (interface{}, error) {
	p, ok := pages[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", settings.ErrUnknownKey, key)
	}

	value, err := p.load(ctx, s.store, key)
	if err != nil {
		s.logger.Error("Failed to load %s: %v", key, err)
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return value, nil
}

// All returns every page content value keyed by settings key.
func (s *Service) All(ctx context.Context) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pages))
	for key := range pages {
		value, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

// Save validates raw against the schema of key and replaces the stored value.
func (s *Service) Save(ctx context.Context, key string, raw json.RawMessage) (interface{}, error) {
	p, ok := pages[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", settings.ErrUnknownKey, key)
	}

	value := p.blank()
	if err := json.Unmarshal(raw, value); err != nil {
		return nil, fmt.Errorf("invalid setting: %w", err)
	}
	if err := settings.Validate(value); err != nil {
		return nil, err
	}

	if err := settings.Save(ctx, s.store, key, value); err != nil {
		s.logger.Error("Failed to save %s: %v", key, err)
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	s.logger.Info("Saved page content %s", key)
	return value, nil
}

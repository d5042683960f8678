// Package storefront keeps precomputed storefront views in Redis so public
// pages do not rebuild them on every request.
package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"greengrass/internal/catalog"
	"greengrass/internal/checkout"
	"greengrass/internal/events"
	"greengrass/internal/logger"
	"greengrass/internal/settings"

	"github.com/go-redis/redis/v8"
)

const (
	SnapshotCategoryTree    = "storefront:category_tree"
	SnapshotFeatured        = "storefront:featured_categories"
	SnapshotCheckoutMethods = "storefront:checkout_methods"
)

// Snapshots serves the cached views. A nil Redis client turns caching off.
type Snapshots struct {
	rdb        *redis.Client
	ttl        time.Duration
	store      settings.Store
	categories *catalog.CategoryService
	products   *catalog.ProductService
	checkout   *checkout.Service
	logger     *logger.Logger
}

func New(rdb *redis.Client, ttl time.Duration, store settings.Store, categories *catalog.CategoryService, products *catalog.ProductService, checkout *checkout.Service, logger *logger.Logger) *Snapshots {
	return &Snapshots{
		rdb:        rdb,
		ttl:        ttl,
		store:      store,
		categories: categories,
		products:   products,
		checkout:   checkout,
		logger:     logger,
	}
}

func (s *Snapshots) CategoryTree(ctx context.Context) ([]catalog.CategoryNode, error) {
	return cached(ctx, s, SnapshotCategoryTree, s.buildCategoryTree)
}

func (s *Snapshots) Featured(ctx context.Context) ([]catalog.FeaturedCategory, error) {
	return cached(ctx, s, SnapshotFeatured, s.buildFeatured)
}

func (s *Snapshots) CheckoutMethods(ctx context.Context) (checkout.Methods, error) {
	return cached(ctx, s, SnapshotCheckoutMethods, s.checkout.Methods)
}

func (s *Snapshots) buildCategoryTree(ctx context.Context) ([]catalog.CategoryNode, error) {
	tree, err := s.categories.Tree(ctx, true)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		tree = []catalog.CategoryNode{}
	}
	return tree, nil
}

func (s *Snapshots) buildFeatured(ctx context.Context) ([]catalog.FeaturedCategory, error) {
	cfg, err := settings.Load(ctx, s.store, settings.KeyFeaturedCategorySection, catalog.DefaultFeaturedCategorySettings())
	if err != nil {
		s.logger.Warn("Failed to load featured section settings, using defaults: %v", err)
	}
	return s.products.Featured(ctx, cfg)
}

func cached[T any](ctx context.Context, s *Snapshots, key string, build func(context.Context) (T, error)) (T, error) {
	if s.rdb != nil {
		var v T
		raw, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
			s.logger.Warn("Discarding unreadable snapshot %s", key)
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Snapshot read failed for %s: %v", key, err)
		}
	}

	v, err := build(ctx)
	if err != nil {
		return v, err
	}
	s.put(ctx, key, v)
	return v, nil
}

func (s *Snapshots) put(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("Failed to encode snapshot %s: %v", key, err)
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("Snapshot write failed for %s: %v", key, err)
	}
}

// Affected lists the snapshots that depend on the row named by event.
func Affected(event events.ChangeEvent) []string {
	switch event.Table {
	case "categories":
		return []string{SnapshotCategoryTree, SnapshotFeatured}
	case "products":
		return []string{SnapshotFeatured}
	case "site_settings":
		switch event.Key {
		case settings.KeyPaymentGateways, settings.KeyCheckoutSettings:
			return []string{SnapshotCheckoutMethods}
		case settings.KeyFeaturedCategorySection:
			return []string{SnapshotFeatured}
		case "":
			return []string{SnapshotCategoryTree, SnapshotFeatured, SnapshotCheckoutMethods}
		}
	}
	return nil
}

// Rebuild recomputes the snapshots affected by event and stores them.
func (s *Snapshots) Rebuild(ctx context.Context, event events.ChangeEvent) error {
	for _, key := range Affected(event) {
		if err := s.rebuild(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// RebuildAll recomputes every snapshot.
func (s *Snapshots) RebuildAll(ctx context.Context) error {
	for _, key := range []string{SnapshotCategoryTree, SnapshotFeatured, SnapshotCheckoutMethods} {
		if err := s.rebuild(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (s *Snapshots) rebuild(ctx context.Context, key string) error {
	var (
		v   interface{}
		err error
	)
	switch key {
	case SnapshotCategoryTree:
		v, err = s.buildCategoryTree(ctx)
	case SnapshotFeatured:
		v, err = s.buildFeatured(ctx)
	case SnapshotCheckoutMethods:
		v, err = s.checkout.Methods(ctx)
	default:
		return fmt.Errorf("unknown snapshot %s", key)
	}
	if err != nil {
		return fmt.Errorf("failed to rebuild %s: %w", key, err)
	}

	s.put(ctx, key, v)
	s.logger.Debug("Rebuilt snapshot %s", key)
	return nil
}

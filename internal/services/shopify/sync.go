package shopify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"greengrass/internal/logger"
	"greengrass/internal/models"

	"gorm.io/gorm"
)

const syncPageSize = 50

// Syncer copies Shopify products into the products table.
type Syncer struct {
	client      *Client
	transformer *Transformer
	db          *gorm.DB
	logger      *logger.Logger
}

func NewSyncer(client *Client, transformer *Transformer, db *gorm.DB, logger *logger.Logger) *Syncer {
	return &Syncer{client: client, transformer: transformer, db: db, logger: logger}
}

// SyncProducts pages through every active Shopify product and stores it.
// Products that fail to convert or save are logged and skipped.
func (s *Syncer) SyncProducts(ctx context.Context) (int, error) {
	var syncedCount int
	pageInfo := ""

	for {
		productsResp, err := s.client.GetProducts(ctx, syncPageSize, pageInfo)
		if err != nil {
			return syncedCount, fmt.Errorf("failed to fetch products from Shopify: %w", err)
		}

		for i := range productsResp.Products {
			if err := s.Upsert(ctx, &productsResp.Products[i]); err != nil {
				s.logger.Error("Failed to sync product %d: %v", productsResp.Products[i].ID, err)
				continue
			}
			syncedCount++
		}

		if productsResp.NextPageInfo == "" {
			break
		}
		pageInfo = productsResp.NextPageInfo
	}

	s.logger.Info("Synced %d products from Shopify", syncedCount)
	return syncedCount, nil
}

// Upsert stores one Shopify product, keyed by its Shopify id.
func (s *Syncer) Upsert(ctx context.Context, shopifyProduct *Product) error {
	product, err := s.transformer.TransformProduct(shopifyProduct)
	if err != nil {
		return fmt.Errorf("failed to transform product: %w", err)
	}

	var existing models.Product
	err = s.db.WithContext(ctx).Where("external_id = ?", *product.ExternalID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.WithContext(ctx).Create(product).Error
	case err != nil:
		return err
	}

	// Keep fields the store manages itself.
	product.ID = existing.ID
	product.NameAr = existing.NameAr
	product.DescriptionAr = existing.DescriptionAr
	product.Subcategory = existing.Subcategory
	product.CategorySlug = existing.CategorySlug
	product.IsFeatured = existing.IsFeatured
	product.IsNew = existing.IsNew
	product.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(product).Error
}

// Delete removes the product stored for a Shopify id.
func (s *Syncer) Delete(ctx context.Context, shopifyID int64) error {
	return s.db.WithContext(ctx).Where("external_id = ?", ExternalID(shopifyID)).Delete(&models.Product{}).Error
}

// ValidateWebhook checks the X-Shopify-Hmac-Sha256 signature of payload.
func ValidateWebhook(payload []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

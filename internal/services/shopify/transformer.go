package shopify

import (
	"fmt"
	"strconv"
	"strings"

	"greengrass/internal/catalog"
	"greengrass/internal/models"
)

type Transformer struct {
	currency string
}

// NewTransformer maps Shopify products onto store products priced in
// currency. An empty currency means AED.
func NewTransformer(currency string) *Transformer {
	if currency == "" {
		currency = "AED"
	}
	return &Transformer{currency: currency}
}

// ExternalID is the key a Shopify product is stored under.
func ExternalID(shopifyID int64) string {
	return fmt.Sprintf("shopify_%d", shopifyID)
}

// TransformProduct converts a Shopify product to a store product
func (t *Transformer) TransformProduct(shopifyProduct *Product) (*models.Product, error) {
	// Get the primary variant (first variant or the one with position 1)
	var primaryVariant *Variant
	for i := range shopifyProduct.Variants {
		if shopifyProduct.Variants[i].Position == 1 {
			primaryVariant = &shopifyProduct.Variants[i]
			break
		}
	}
	if primaryVariant == nil && len(shopifyProduct.Variants) > 0 {
		primaryVariant = &shopifyProduct.Variants[0]
	}

	if primaryVariant == nil {
		return nil, fmt.Errorf("no variants found for product %d", shopifyProduct.ID)
	}

	price, err := strconv.ParseFloat(primaryVariant.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price format: %w", err)
	}

	var compareAt *float64
	if primaryVariant.CompareAtPrice != nil {
		if v, err := strconv.ParseFloat(*primaryVariant.CompareAtPrice, 64); err == nil && v > 0 {
			compareAt = &v
		}
	}

	images := make([]string, 0, len(shopifyProduct.Images))
	for _, img := range shopifyProduct.Images {
		images = append(images, img.Src)
	}

	tags := []string{}
	if shopifyProduct.Tags != "" {
		for _, tag := range strings.Split(shopifyProduct.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	stock := 0
	for _, v := range shopifyProduct.Variants {
		if v.InventoryQuantity > 0 {
			stock += v.InventoryQuantity
		}
	}

	externalID := ExternalID(shopifyProduct.ID)
	product := &models.Product{
		ExternalID:     &externalID,
		Name:           shopifyProduct.Title,
		Slug:           shopifyProduct.Handle,
		Price:          price,
		CompareAtPrice: compareAt,
		Currency:       t.currency,
		Tags:           tags,
		Images:         images,
		StockQuantity:  stock,
		IsActive:       shopifyProduct.Status == "" || shopifyProduct.Status == "active",
		IsOnSale:       compareAt != nil && *compareAt > price,
	}
	if product.Slug == "" {
		product.Slug = catalog.Slugify(shopifyProduct.Title)
	}
	if shopifyProduct.BodyHTML != "" {
		body := shopifyProduct.BodyHTML
		product.Description = &body
	}
	if shopifyProduct.ProductType != "" {
		category := shopifyProduct.ProductType
		product.Category = &category
	}
	if len(images) > 0 {
		product.FeaturedImage = &images[0]
	}

	return product, nil
}

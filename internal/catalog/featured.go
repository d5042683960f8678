package catalog

import (
	"context"
	"fmt"

	"greengrass/internal/models"
)

const defaultProductsPerCategory = 6

const defaultBanner = "/assets/ficus-plant.jpg"

var categoryBanners = map[string]string{
	"plants":   "/assets/ficus-plant.jpg",
	"flowers":  "/assets/flower-pot.jpg",
	"pots":     "/assets/blue-pot.jpg",
	"greenery": "/assets/hanging-plants.jpg",
	"hanging":  "/assets/hanging-plants.jpg",
	"gifts":    "/assets/flower-pot.jpg",
}

type CategoryConfig struct {
	Image            string   `json:"image"`
	SelectedProducts []string `json:"selectedProducts"`
}

// FeaturedCategorySettings is the stored shape of the featured category
// section on the home page.
type FeaturedCategorySettings struct {
	SelectedCategories  []string                  `json:"selectedCategories"`
	CategoryConfigs     map[string]CategoryConfig `json:"categoryConfigs"`
	ProductsPerCategory int                       `json:"productsPerCategory" validate:"min=0,max=24"`
}

func DefaultFeaturedCategorySettings() FeaturedCategorySettings {
	return FeaturedCategorySettings{
		SelectedCategories:  []string{},
		CategoryConfigs:     map[string]CategoryConfig{},
		ProductsPerCategory: defaultProductsPerCategory,
	}
}

type FeaturedCategory struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	NameAr   *string          `json:"name_ar"`
	Slug     string           `json:"slug"`
	Image    string           `json:"image"`
	Href     string           `json:"href"`
	Products []models.Product `json:"products"`
}

// BannerFor returns the built-in banner image for a category slug.
func BannerFor(slug string) string {
	if img, ok := categoryBanners[slug]; ok {
		return img
	}
	return defaultBanner
}

// FeaturedSection assembles the featured categories in the order they were
// selected. Selected ids that are not active categories are skipped.
func FeaturedSection(settings FeaturedCategorySettings, categories []models.Category, products []models.Product) []FeaturedCategory {
	limit := settings.ProductsPerCategory
	if limit <= 0 {
		limit = defaultProductsPerCategory
	}

	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		if c.IsActive {
			byID[c.ID] = c
		}
	}
	productByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	out := make([]FeaturedCategory, 0, len(settings.SelectedCategories))
	for _, id := range settings.SelectedCategories {
		cat, ok := byID[id]
		if !ok {
			continue
		}
		cfg := settings.CategoryConfigs[id]

		var picked []models.Product
		if len(cfg.SelectedProducts) > 0 {
			for _, pid := range cfg.SelectedProducts {
				if p, ok := productByID[pid]; ok {
					picked = append(picked, p)
				}
			}
		} else {
			for _, p := range products {
				if productInCategory(p, cat.Slug) {
					picked = append(picked, p)
				}
			}
		}
		if len(picked) > limit {
			picked = picked[:limit]
		}
		if picked == nil {
			picked = []models.Product{}
		}

		out = append(out, FeaturedCategory{
			ID:       cat.ID,
			Name:     cat.Name,
			NameAr:   cat.NameAr,
			Slug:     cat.Slug,
			Image:    categoryImage(cfg, cat),
			Href:     "/shop?category=" + cat.Slug,
			Products: picked,
		})
	}
	return out
}

func categoryImage(cfg CategoryConfig, cat models.Category) string {
	if cfg.Image != "" {
		return cfg.Image
	}
	if cat.Image != nil && *cat.Image != "" {
		return *cat.Image
	}
	return BannerFor(cat.Slug)
}

func productInCategory(p models.Product, slug string) bool {
	if p.CategorySlug != nil && *p.CategorySlug == slug {
		return true
	}
	return p.Category != nil && Slugify(*p.Category) == slug
}

// Featured loads active categories and products and assembles the section.
func (s *ProductService) Featured(ctx context.Context, settings FeaturedCategorySettings) ([]FeaturedCategory, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	products, err := s.List(ctx, ProductFilter{})
	if err != nil {
		return nil, err
	}
	return FeaturedSection(settings, categories, products), nil
}

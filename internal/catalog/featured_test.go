package catalog

import (
	"context"
	"testing"

	"greengrass/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturedSection(t *testing.T) {
	categories := []models.Category{
		{ID: "c1", Name: "Plants", Slug: "plants", IsActive: true},
		{ID: "c2", Name: "Pots", Slug: "pots", IsActive: true, Image: strPtr("/uploads/pots.jpg")},
		{ID: "c3", Name: "Old", Slug: "old", IsActive: false},
		{ID: "c4", Name: "Succulents", Slug: "succulents", IsActive: true},
	}
	products := []models.Product{
		{ID: "p1", Slug: "ficus", CategorySlug: strPtr("plants")},
		{ID: "p2", Slug: "monstera", Category: strPtr("Plants")},
		{ID: "p3", Slug: "blue-pot", Category: strPtr("Pots")},
		{ID: "p4", Slug: "fern", CategorySlug: strPtr("plants")},
	}
	settings := FeaturedCategorySettings{
		SelectedCategories: []string{"c2", "c3", "missing", "c1", "c4"},
		CategoryConfigs: map[string]CategoryConfig{
			"c1": {Image: "/custom/plants.jpg"},
			"c2": {SelectedProducts: []string{"p3", "p1", "gone"}},
		},
		ProductsPerCategory: 2,
	}

	got := FeaturedSection(settings, categories, products)
	require.Len(t, got, 3)

	assert.Equal(t, "pots", got[0].Slug)
	assert.Equal(t, "/uploads/pots.jpg", got[0].Image)
	assert.Equal(t, "/shop?category=pots", got[0].Href)
	assert.Equal(t, []string{"blue-pot", "ficus"}, slugs(got[0].Products))

	assert.Equal(t, "plants", got[1].Slug)
	assert.Equal(t, "/custom/plants.jpg", got[1].Image)
	assert.Equal(t, []string{"ficus", "monstera"}, slugs(got[1].Products))

	assert.Equal(t, "succulents", got[2].Slug)
	assert.Equal(t, "/assets/ficus-plant.jpg", got[2].Image)
	assert.NotNil(t, got[2].Products)
	assert.Empty(t, got[2].Products)
}

func TestFeaturedDefaultsLimit(t *testing.T) {
	categories := []models.Category{{ID: "c1", Slug: "plants", IsActive: true}}
	var products []models.Product
	for i := 0; i < 8; i++ {
		products = append(products, models.Product{ID: string(rune('a' + i)), CategorySlug: strPtr("plants")})
	}

	got := FeaturedSection(FeaturedCategorySettings{SelectedCategories: []string{"c1"}}, categories, products)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Products, 6)
}

func TestBannerFor(t *testing.T) {
	assert.Equal(t, "/assets/blue-pot.jpg", BannerFor("pots"))
	assert.Equal(t, "/assets/hanging-plants.jpg", BannerFor("hanging"))
	assert.Equal(t, "/assets/ficus-plant.jpg", BannerFor("unknown"))
}

func TestFeaturedFromDatabase(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	cats := NewCategoryService(db)
	ctx := context.Background()

	plants, err := cats.Create(ctx, CategoryInput{Name: "Plants"})
	require.NoError(t, err)

	got, err := NewProductService(db).Featured(ctx, FeaturedCategorySettings{SelectedCategories: []string{plants.ID}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"ficus-lyrata"}, slugs(got[0].Products))
}

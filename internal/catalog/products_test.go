package catalog

import (
	"context"
	"testing"
	"time"

	"greengrass/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProducts(t *testing.T, db *gorm.DB) []models.Product {
	t.Helper()
	now := time.Now()
	products := []models.Product{
		{Name: "Ficus Lyrata", Slug: "ficus-lyrata", Price: 120, Category: strPtr("Plants"), Subcategory: strPtr("Indoor"), CategorySlug: strPtr("plants"), IsActive: true, IsFeatured: true, CreatedAt: now.Add(-3 * time.Hour)},
		{Name: "Blue Pot", Slug: "blue-pot", Price: 45, Category: strPtr("Pots"), IsActive: true, IsOnSale: true, CreatedAt: now.Add(-2 * time.Hour)},
		{Name: "Rose Gift Box", Slug: "rose-gift-box", Price: 180, Category: strPtr("Flowers"), Tags: []string{"Gift", "roses"}, IsActive: true, IsNew: true, CreatedAt: now.Add(-time.Hour)},
		{Name: "Gift Card", Slug: "gift-card", Price: 100, Category: strPtr("Gift Sets"), IsActive: true, CreatedAt: now},
		{Name: "Retired Fern", Slug: "retired-fern", Price: 30, Category: strPtr("Plants"), IsActive: false, CreatedAt: now},
	}
	require.NoError(t, db.Create(&products).Error)
	return products
}

func TestListProductsFilters(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	svc := NewProductService(db)
	ctx := context.Background()

	all, err := svc.List(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "gift-card", all[0].Slug)

	tests := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"category", ProductFilter{Category: "Plants"}, []string{"ficus-lyrata"}},
		{"subcategory", ProductFilter{Subcategory: "Indoor"}, []string{"ficus-lyrata"}},
		{"featured", ProductFilter{Featured: true}, []string{"ficus-lyrata"}},
		{"on sale", ProductFilter{OnSale: true}, []string{"blue-pot"}},
		{"new", ProductFilter{IsNew: true}, []string{"rose-gift-box"}},
		{"limit", ProductFilter{Limit: 2}, []string{"gift-card", "rose-gift-box"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugs(got))
		})
	}
}

func TestBySlugActiveOnly(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	svc := NewProductService(db)

	p, err := svc.BySlug(context.Background(), "blue-pot")
	require.NoError(t, err)
	assert.Equal(t, "Blue Pot", p.Name)

	_, err = svc.BySlug(context.Background(), "retired-fern")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductCategories(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)

	names, err := NewProductService(db).Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Flowers", "Gift Sets", "Plants", "Pots"}, names)
}

func TestAdminProductCRUD(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	svc := NewProductService(db)
	ctx := context.Background()

	p := &models.Product{Name: "Snake Plant", Price: 60, IsActive: true}
	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, "snake-plant", p.Slug)

	assert.Error(t, svc.Create(ctx, &models.Product{Name: " "}))

	list, total, err := svc.AdminList(ctx, "PLANT", Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)

	_, total, err = svc.AdminList(ctx, "", Page{Page: 2, Limit: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)

	p.Price = 65
	require.NoError(t, svc.Save(ctx, p))
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 65.0, got.Price)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrProductNotFound)
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestByIDsKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	products := seedProducts(t, db)

	got, err := NewProductService(db).ByIDs(context.Background(), []string{products[2].ID, "missing", products[0].ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, products[2].ID, got[0].ID)
	assert.Equal(t, products[0].ID, got[1].ID)
}

func TestLinkProductImages(t *testing.T) {
	db := newTestDB(t)
	products := seedProducts(t, db)
	svc := NewProductService(db)
	ctx := context.Background()

	files := []models.MediaFile{
		{FileName: "ficus-lyrata.jpg", FilePath: "products/ficus-lyrata.jpg", Folder: "products"},
		{FileName: "Blue-Pot.png", FilePath: "products/Blue-Pot.png", Folder: "products"},
		{FileName: "gift-card.jpg", FilePath: "banners/gift-card.jpg", Folder: "banners"},
	}
	require.NoError(t, db.Create(&files).Error)

	n, err := svc.LinkProductImages(ctx, "https://store.supabase.co/")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := svc.Get(ctx, products[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.FeaturedImage)
	assert.Equal(t, "https://store.supabase.co/storage/v1/object/public/media/products/ficus-lyrata.jpg", *got.FeaturedImage)

	n, err = svc.LinkProductImages(ctx, "https://store.supabase.co")
	require.NoError(t, err)
	assert.Zero(t, n)
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"greengrass/internal/models"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows storefront product queries. Zero values do not filter.
type ProductFilter struct {
	Category    string
	Subcategory string
	Featured    bool
	OnSale      bool
	IsNew       bool
	Limit       int
}

type Page struct {
	Page  int
	Limit int
}

func (p Page) offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// List returns active products matching f, newest first.
func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Subcategory != "" {
		query = query.Where("subcategory = ?", f.Subcategory)
	}
	if f.Featured {
		query = query.Where("is_featured = ?", true)
	}
	if f.OnSale {
		query = query.Where("is_on_sale = ?", true)
	}
	if f.IsNew {
		query = query.Where("is_new = ?", true)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// BySlug finds an active product by slug.
func (s *ProductService) BySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &p, nil
}

// Categories returns the distinct, sorted category names of active products.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_active = ? AND category IS NOT NULL AND category <> ''", true).
		Distinct().
		Pluck("category", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product categories: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// AdminList pages through all products, active or not, optionally matching
// search against name and slug.
func (s *ProductService) AdminList(ctx context.Context, search string, page Page) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := query.Order("created_at DESC").Offset(page.offset()).Limit(page.Limit).Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, total, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &p, nil
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	p.Slug = slugOrDefault(p.Slug, p.Name)
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *ProductService) Save(ctx context.Context, p *models.Product) error {
	p.Slug = slugOrDefault(p.Slug, p.Name)
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ByIDs returns the products with the given ids in the order of ids.
// Unknown ids are skipped.
func (s *ProductService) ByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	byID := make(map[string]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

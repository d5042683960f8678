// Package catalog serves categories and products for the storefront and
// the admin managers.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"greengrass/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNameRequired     = errors.New("Category name is required")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoIDs            = errors.New("no ids given")
)

var whitespace = regexp.MustCompile(`\s+`)

// Slugify lowercases name and replaces each whitespace run with "-".
func Slugify(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

type CategoryInput struct {
	Name          string  `json:"name"`
	NameAr        *string `json:"name_ar"`
	Slug          string  `json:"slug"`
	Description   *string `json:"description"`
	DescriptionAr *string `json:"description_ar"`
	Image         *string `json:"image"`
	ParentID      *string `json:"parent_id"`
	IsActive      *bool   `json:"is_active"`
	DisplayOrder  int     `json:"display_order"`
}

// CategoryNode is a top-level category with its direct children.
type CategoryNode struct {
	models.Category
	Children []models.Category `json:"children"`
}

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns categories by display order. activeOnly hides inactive ones.
func (s *CategoryService) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	var categories []models.Category
	query := s.db.WithContext(ctx).Order("display_order ASC").Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return &c, nil
}

// Tree groups categories under their parents. Parents are categories
// without a parent_id; orphans whose parent no longer exists are listed
// as parents too.
func (s *CategoryService) Tree(ctx context.Context, activeOnly bool) ([]CategoryNode, error) {
	categories, err := s.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return BuildTree(categories), nil
}

func BuildTree(categories []models.Category) []CategoryNode {
	ids := make(map[string]bool, len(categories))
	for _, c := range categories {
		ids[c.ID] = true
	}

	var nodes []CategoryNode
	index := map[string]int{}
	for _, c := range categories {
		if c.ParentID == nil || !ids[*c.ParentID] {
			index[c.ID] = len(nodes)
			nodes = append(nodes, CategoryNode{Category: c, Children: []models.Category{}})
		}
	}
	for _, c := range categories {
		if c.ParentID == nil {
			continue
		}
		if i, ok := index[*c.ParentID]; ok {
			nodes[i].Children = append(nodes[i].Children, c)
		}
	}
	return nodes
}

// Create inserts a category. An empty slug is derived from the name, an
// unset active flag means active and a zero display order appends it.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	order := in.DisplayOrder
	if order == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count categories: %w", err)
		}
		order = int(count) + 1
	}

	c := models.Category{
		Name:          name,
		NameAr:        in.NameAr,
		Slug:          slugOrDefault(in.Slug, name),
		Description:   in.Description,
		DescriptionAr: in.DescriptionAr,
		Image:         in.Image,
		ParentID:      emptyToNil(in.ParentID),
		IsActive:      in.IsActive == nil || *in.IsActive,
		DisplayOrder:  order,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// Update overwrites the editable fields of category id.
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = name
	c.NameAr = in.NameAr
	c.Slug = slugOrDefault(in.Slug, name)
	c.Description = in.Description
	c.DescriptionAr = in.DescriptionAr
	c.Image = in.Image
	c.ParentID = emptyToNil(in.ParentID)
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.DisplayOrder != 0 {
		c.DisplayOrder = in.DisplayOrder
	}
	if c.ParentID != nil && *c.ParentID == c.ID {
		return nil, fmt.Errorf("category cannot be its own parent")
	}

	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// BulkDelete removes every category in ids and returns how many went.
func (s *CategoryService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Category{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete categories: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// BulkSetActive switches every category in ids on or off.
func (s *CategoryService) BulkSetActive(ctx context.Context, ids []string, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	res := s.db.WithContext(ctx).Model(&models.Category{}).Where("id IN ?", ids).Update("is_active", active)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update categories: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func slugOrDefault(slug, name string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return s
	}
	return Slugify(name)
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

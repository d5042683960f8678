package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greengrass/internal/models"
)

var ErrSelectionFull = errors.New("gift selection is full")

const giftCandidateLimit = 100

// GiftSection is the stored configuration of the home page gift block.
type GiftSection struct {
	Enabled       bool     `json:"enabled"`
	Title         string   `json:"title"`
	TitleAr       string   `json:"titleAr"`
	Subtitle      string   `json:"subtitle"`
	SubtitleAr    string   `json:"subtitleAr"`
	CategorySlug  string   `json:"categorySlug"`
	ProductIDs    []string `json:"productIds"`
	ProductsLimit int      `json:"productsLimit" validate:"min=0,max=24"`
}

func DefaultGiftSection() GiftSection {
	return GiftSection{
		Enabled:       true,
		Title:         "Gift Garden",
		TitleAr:       "حديقة الهدايا",
		Subtitle:      "Thoughtfully curated gift sets for plant lovers",
		SubtitleAr:    "مجموعات هدايا مختارة بعناية لمحبي النباتات",
		CategorySlug:  "",
		ProductIDs:    []string{},
		ProductsLimit: 3,
	}
}

// GiftCandidates lists active products an admin can add to the gift
// section. With a category filter a product matches when its category or
// subcategory equals it; without one, when category, subcategory or any tag
// mentions "gift". Products already in selected are left out.
func (s *ProductService) GiftCandidates(ctx context.Context, categoryFilter string, selected []string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Limit(giftCandidateLimit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	skip := make(map[string]bool, len(selected))
	for _, id := range selected {
		skip[id] = true
	}

	var out []models.Product
	for _, p := range products {
		if skip[p.ID] {
			continue
		}
		if categoryFilter != "" {
			if matchesCategory(p, categoryFilter) {
				out = append(out, p)
			}
			continue
		}
		if isGift(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matchesCategory(p models.Product, filter string) bool {
	f := strings.ToLower(filter)
	return strings.ToLower(deref(p.Category)) == f || strings.ToLower(deref(p.Subcategory)) == f
}

func isGift(p models.Product) bool {
	if strings.Contains(strings.ToLower(deref(p.Category)), "gift") ||
		strings.Contains(strings.ToLower(deref(p.Subcategory)), "gift") {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), "gift") {
			return true
		}
	}
	return false
}

// AddGift appends id to selected unless it is already there. Adding past
// limit fails with ErrSelectionFull.
func AddGift(selected []string, id string, limit int) ([]string, error) {
	for _, s := range selected {
		if s == id {
			return selected, nil
		}
	}
	if len(selected) >= limit {
		return selected, ErrSelectionFull
	}
	out := make([]string, len(selected), len(selected)+1)
	copy(out, selected)
	return append(out, id), nil
}

// RemoveGift drops id from selected.
func RemoveGift(selected []string, id string) []string {
	out := make([]string, 0, len(selected))
	for _, s := range selected {
		if s != id {
			out = append(out, s)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

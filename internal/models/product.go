package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID             string                      `json:"id" gorm:"type:uuid;primaryKey"`
	ExternalID     *string                     `json:"external_id" gorm:"uniqueIndex"`
	Name           string                      `json:"name" gorm:"not null"`
	NameAr         *string                     `json:"name_ar"`
	Slug           string                      `json:"slug" gorm:"uniqueIndex;not null"`
	Description    *string                     `json:"description"`
	DescriptionAr  *string                     `json:"description_ar"`
	Price          float64                     `json:"price" gorm:"type:decimal(10,2);not null"`
	CompareAtPrice *float64                    `json:"compare_at_price" gorm:"type:decimal(10,2)"`
	Currency       string                      `json:"currency" gorm:"default:AED"`
	Category       *string                     `json:"category" gorm:"index"`
	Subcategory    *string                     `json:"subcategory"`
	CategorySlug   *string                     `json:"category_slug" gorm:"index"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	FeaturedImage  *string                     `json:"featured_image"`
	Images         datatypes.JSONSlice[string] `json:"images"`
	StockQuantity  int                         `json:"stock_quantity"`
	IsActive       bool                        `json:"is_active" gorm:"index"`
	IsFeatured     bool                        `json:"is_featured"`
	IsOnSale       bool                        `json:"is_on_sale"`
	IsNew          bool                        `json:"is_new"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

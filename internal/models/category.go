package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	NameAr        *string   `json:"name_ar"`
	Slug          string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description   *string   `json:"description"`
	DescriptionAr *string   `json:"description_ar"`
	Image         *string   `json:"image"`
	ParentID      *string   `json:"parent_id" gorm:"type:uuid;index"`
	IsActive      bool      `json:"is_active"`
	DisplayOrder  int       `json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

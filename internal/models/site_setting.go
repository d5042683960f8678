package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SiteSetting struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	SettingKey   string         `json:"setting_key" gorm:"uniqueIndex;not null"`
	SettingValue datatypes.JSON `json:"setting_value"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (SiteSetting) TableName() string {
	return "site_settings"
}

func (s *SiteSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

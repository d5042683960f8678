package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"greengrass/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var row models.SiteSetting
	if err := s.db.WithContext(ctx).First(&row, "setting_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch setting %s: %w", key, err)
	}
	return json.RawMessage(row.SettingValue), nil
}

func (s *GormStore) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	row := models.SiteSetting{
		SettingKey:   key,
		SettingValue: datatypes.JSON(value),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]Setting, error) {
	var rows []models.SiteSetting
	if err := s.db.WithContext(ctx).Order("setting_key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	out := make([]Setting, len(rows))
	for i, row := range rows {
		out[i] = Setting{Key: row.SettingKey, Value: json.RawMessage(row.SettingValue), UpdatedAt: row.UpdatedAt}
	}
	return out, nil
}

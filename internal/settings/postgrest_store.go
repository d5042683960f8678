package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
)

const settingsTable = "site_settings"

// PostgrestStore reads and writes site_settings through a hosted Supabase
// REST endpoint instead of a direct database connection.
type PostgrestStore struct {
	client *postgrest.Client
}

type postgrestRow struct {
	SettingKey   string          `json:"setting_key"`
	SettingValue json.RawMessage `json:"setting_value"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

func NewPostgrestStore(supabaseURL, serviceKey string) (*PostgrestStore, error) {
	restURL := strings.TrimRight(supabaseURL, "/") + "/rest/v1"
	client := postgrest.NewClient(restURL, "public", map[string]string{
		"apikey":        serviceKey,
		"Authorization": "Bearer " + serviceKey,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("invalid supabase url: %w", client.ClientError)
	}
	return &PostgrestStore{client: client}, nil
}

// The postgrest client has no context support; ctx is accepted for the interface.
func (s *PostgrestStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var rows []postgrestRow
	_, err := s.client.From(settingsTable).
		Select("setting_key,setting_value", "", false).
		Eq("setting_key", key).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch setting %s: %w", key, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0].SettingValue, nil
}

func (s *PostgrestStore) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	now := time.Now().UTC()
	row := postgrestRow{SettingKey: key, SettingValue: value, UpdatedAt: &now}

	_, _, err := s.client.From(settingsTable).
		Upsert(row, "setting_key", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

func (s *PostgrestStore) List(ctx context.Context) ([]Setting, error) {
	var rows []postgrestRow
	_, err := s.client.From(settingsTable).
		Select("setting_key,setting_value,updated_at", "", false).
		Order("setting_key", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	out := make([]Setting, len(rows))
	for i, row := range rows {
		out[i] = Setting{Key: row.SettingKey, Value: row.SettingValue}
		if row.UpdatedAt != nil {
			out[i].UpdatedAt = *row.UpdatedAt
		}
	}
	return out, nil
}

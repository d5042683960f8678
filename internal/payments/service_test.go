package payments

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"greengrass/internal/database"
	"greengrass/internal/logger"
	"greengrass/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) settings.Store {
	t.Helper()
	db, err := database.New("sqlite://"+filepath.Join(t.TempDir(), "payments.db"), "error")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return settings.NewGormStore(db.DB)
}

type failingStore struct {
	settings.Store
}

func (failingStore) Get(context.Context, string) (json.RawMessage, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Upsert(context.Context, string, json.RawMessage) error {
	return errors.New("connection refused")
}

func TestServiceLoadWithoutStoredValue(t *testing.T) {
	svc := NewService(newTestStore(t), logger.Nop())

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultGateways(), got)
}

func TestServiceLoadWithCorruptValue(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert(context.Background(), settings.KeyPaymentGateways, json.RawMessage(`{"not":"a list"}`)))

	got, err := NewService(store, logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestServiceSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewService(store, logger.Nop())

	saved, err := svc.Save(ctx, []Gateway{
		{Type: GatewayStripe, DisplayName: "Card", Enabled: true, Config: map[string]string{"publishableKey": "pk", "secretKey": "sk"}},
	})
	require.NoError(t, err)
	require.Len(t, saved, 5)

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
	assert.Equal(t, GatewayStripe, loaded[0].Type)
	assert.True(t, loaded[0].Enabled)
}

func TestServiceSaveRejectsIncompleteGateway(t *testing.T) {
	svc := NewService(newTestStore(t), logger.Nop())

	_, err := svc.Save(context.Background(), []Gateway{{Type: GatewayStripe, Enabled: true}})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestServiceStoreFailures(t *testing.T) {
	svc := NewService(failingStore{}, logger.Nop())

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailed)

	_, err = svc.Save(context.Background(), nil)
	assert.ErrorIs(t, err, ErrSaveFailed)
}

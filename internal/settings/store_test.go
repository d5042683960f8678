package settings

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"greengrass/internal/database"
	"greengrass/internal/events"
	"greengrass/internal/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.New("sqlite://"+filepath.Join(t.TempDir(), "settings.db"), "error")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db.DB
}

func TestGormStoreUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(newTestDB(t))

	_, err := store.Get(ctx, KeyBranding)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Upsert(ctx, KeyBranding, json.RawMessage(`{"siteName":"A"}`)))
	require.NoError(t, store.Upsert(ctx, KeyBranding, json.RawMessage(`{"siteName":"B"}`)))

	got, err := store.Get(ctx, KeyBranding)
	require.NoError(t, err)
	assert.JSONEq(t, `{"siteName":"B"}`, string(got))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, KeyBranding, list[0].Key)
}

type countingStore struct {
	Store
	mu   sync.Mutex
	gets int
}

func (s *countingStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	s.mu.Lock()
	s.gets++
	s.mu.Unlock()
	return s.Store.Get(ctx, key)
}

func TestCachedStoreReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	backing := &countingStore{Store: NewGormStore(newTestDB(t))}
	store := NewCachedStore(backing, rdb, time.Minute, logger.Nop())

	require.NoError(t, store.Upsert(ctx, KeyCheckoutSettings, json.RawMessage(`{"enableCardPayment":false}`)))

	for i := 0; i < 3; i++ {
		got, err := store.Get(ctx, KeyCheckoutSettings)
		require.NoError(t, err)
		assert.JSONEq(t, `{"enableCardPayment":false}`, string(got))
	}
	assert.Equal(t, 1, backing.gets)
	assert.True(t, mr.Exists("settings:"+KeyCheckoutSettings))

	require.NoError(t, store.Upsert(ctx, KeyCheckoutSettings, json.RawMessage(`{"enableCardPayment":true}`)))
	assert.False(t, mr.Exists("settings:"+KeyCheckoutSettings))

	got, err := store.Get(ctx, KeyCheckoutSettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"enableCardPayment":true}`, string(got))
	assert.Equal(t, 2, backing.gets)
}

func TestCachedStoreFallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	backing := NewGormStore(newTestDB(t))
	require.NoError(t, backing.Upsert(ctx, KeyBranding, json.RawMessage(`{"logoUrl":"x"}`)))
	mr.Close()

	store := NewCachedStore(backing, rdb, time.Minute, logger.Nop())
	got, err := store.Get(ctx, KeyBranding)
	require.NoError(t, err)
	assert.JSONEq(t, `{"logoUrl":"x"}`, string(got))

	_, err = store.Get(ctx, KeyFAQItems)
	assert.ErrorIs(t, err, ErrNotFound)
}

type recordingPublisher struct {
	events []events.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.ChangeEvent) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestPublishingStoreAnnouncesUpserts(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	store := NewPublishingStore(NewGormStore(newTestDB(t)), pub, logger.Nop())

	require.NoError(t, store.Upsert(ctx, KeyPaymentGateways, json.RawMessage(`[]`)))

	require.Len(t, pub.events, 1)
	assert.Equal(t, "site_settings", pub.events[0].Table)
	assert.Equal(t, KeyPaymentGateways, pub.events[0].Key)
}

func TestPostgrestStore(t *testing.T) {
	ctx := context.Background()
	rows := map[string]json.RawMessage{}
	var mu sync.Mutex

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		assert.Equal(t, "/rest/v1/site_settings", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			var out []postgrestRow
			if eq := r.URL.Query().Get("setting_key"); eq != "" {
				if v, ok := rows[eq[len("eq."):]]; ok {
					out = append(out, postgrestRow{SettingKey: eq[len("eq."):], SettingValue: v})
				}
			} else {
				for k, v := range rows {
					out = append(out, postgrestRow{SettingKey: k, SettingValue: v})
				}
			}
			if out == nil {
				out = []postgrestRow{}
			}
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			assert.Equal(t, "setting_key", r.URL.Query().Get("on_conflict"))
			assert.Contains(t, r.Header.Get("Prefer"), "resolution=merge-duplicates")
			body, _ := io.ReadAll(r.Body)
			var row postgrestRow
			require.NoError(t, json.Unmarshal(body, &row))
			if row.SettingKey == "broken" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"code":"22P02","message":"invalid input"}`))
				return
			}
			rows[row.SettingKey] = row.SettingValue
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	store, err := NewPostgrestStore(srv.URL+"/", "service-key")
	require.NoError(t, err)

	_, err = store.Get(ctx, KeyInvoiceTemplate)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Upsert(ctx, KeyInvoiceTemplate, json.RawMessage(`{"companyName":"GG"}`)))

	got, err := store.Get(ctx, KeyInvoiceTemplate)
	require.NoError(t, err)
	assert.JSONEq(t, `{"companyName":"GG"}`, string(got))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	err = store.Upsert(ctx, "broken", json.RawMessage(`{}`))
	assert.ErrorContains(t, err, "invalid input")
}

package checkout

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"greengrass/internal/catalog"
	"greengrass/internal/database"
	"greengrass/internal/logger"
	"greengrass/internal/models"
	"greengrass/internal/payments"
	"greengrass/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayTypes(gs []payments.Gateway) []payments.GatewayType {
	var out []payments.GatewayType
	for _, g := range gs {
		out = append(out, g.Type)
	}
	return out
}

func TestAvailableMethods(t *testing.T) {
	gateways := payments.DefaultGateways()
	for i := range gateways {
		gateways[i].Enabled = true
	}

	tests := []struct {
		name     string
		settings Settings
		want     []payments.GatewayType
	}{
		{"all on", DefaultSettings(), []payments.GatewayType{"paypal", "payoneer", "bank_transfer", "stripe", "cod"}},
		{"card off", Settings{EnableCashOnDelivery: true}, []payments.GatewayType{"bank_transfer", "cod"}},
		{"cod off", Settings{EnableCardPayment: true}, []payments.GatewayType{"paypal", "payoneer", "bank_transfer", "stripe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableMethods(gateways, tt.settings)
			assert.Equal(t, tt.want, gatewayTypes(got.Gateways))
			assert.Equal(t, tt.settings.EnableWhatsappOrder, got.WhatsappOrder)
		})
	}

	none := AvailableMethods(payments.DefaultGateways(), Settings{})
	assert.NotNil(t, none.Gateways)
	assert.Empty(t, none.Gateways)
}

func TestPricingPrice(t *testing.T) {
	products := map[string]models.Product{
		"ficus": {ID: "ficus", Name: "Ficus", Price: 60, IsActive: true, Currency: "AED"},
		"pot":   {ID: "pot", Name: "Pot", Price: 20, IsActive: true},
		"old":   {ID: "old", Name: "Old", Price: 10},
	}
	pricing := Pricing{TaxRate: 0.05, ShippingFee: 25, FreeShippingThreshold: 200}

	q, err := pricing.Price([]Line{{ProductID: "ficus", Quantity: 2}, {ProductID: "pot", Quantity: 1}}, products)
	require.NoError(t, err)
	assert.Equal(t, 140.0, q.Subtotal)
	assert.Equal(t, 7.0, q.Tax)
	assert.Equal(t, 25.0, q.Shipping)
	assert.Equal(t, 172.0, q.Total)
	assert.Equal(t, "AED", q.Currency)
	require.Len(t, q.Items, 2)
	assert.Equal(t, 120.0, q.Items[0].Total)

	q, err = pricing.Price([]Line{{ProductID: "ficus", Quantity: 4}}, products)
	require.NoError(t, err)
	assert.Zero(t, q.Shipping)
	assert.Equal(t, 252.0, q.Total)

	_, err = pricing.Price(nil, products)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = pricing.Price([]Line{{ProductID: "old", Quantity: 1}}, products)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	_, err = pricing.Price([]Line{{ProductID: "missing", Quantity: 1}}, products)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	_, err = pricing.Price([]Line{{ProductID: "ficus", Quantity: 0}}, products)
	assert.Error(t, err)
}

func newTestService(t *testing.T) (*Service, settings.Store, *catalog.ProductService) {
	t.Helper()
	db, err := database.New("sqlite://"+filepath.Join(t.TempDir(), "checkout.db"), "error")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	store := settings.NewGormStore(db.DB)
	products := catalog.NewProductService(db.DB)
	svc := NewService(store, products, payments.NewService(store, logger.Nop()),
		Pricing{TaxRate: 0.05, ShippingFee: 25, FreeShippingThreshold: 200}, logger.Nop())
	return svc, store, products
}

func TestSettingsMergeOverDefaults(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	assert.Equal(t, DefaultSettings(), svc.Settings(ctx))

	require.NoError(t, store.Upsert(ctx, settings.KeyCheckoutSettings, json.RawMessage(`{"enableWhatsappOrder":false}`)))
	got := svc.Settings(ctx)
	assert.False(t, got.EnableWhatsappOrder)
	assert.True(t, got.EnableCardPayment)
	assert.True(t, got.EnableCashOnDelivery)

	require.NoError(t, svc.SaveSettings(ctx, Settings{EnableCardPayment: true}))
	got = svc.Settings(ctx)
	assert.False(t, got.EnableCashOnDelivery)
}

func TestQuote(t *testing.T) {
	svc, _, products := newTestService(t)
	ctx := context.Background()

	ficus := &models.Product{Name: "Ficus", Price: 80, IsActive: true}
	require.NoError(t, products.Create(ctx, ficus))

	q, err := svc.Quote(ctx, []Line{{ProductID: ficus.ID, Quantity: 3}})
	require.NoError(t, err)
	assert.Equal(t, 240.0, q.Subtotal)
	assert.Equal(t, 12.0, q.Tax)
	assert.Zero(t, q.Shipping)
	assert.Equal(t, 252.0, q.Total)
	require.NotNil(t, q.Methods)
	assert.Equal(t, []payments.GatewayType{"cod"}, gatewayTypes(q.Methods.Gateways))
	assert.True(t, q.Methods.WhatsappOrder)

	_, err = svc.Quote(ctx, []Line{{ProductID: "", Quantity: 1}})
	assert.Error(t, err)

	_, err = svc.Quote(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

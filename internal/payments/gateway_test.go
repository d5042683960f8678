package payments

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(gateways []Gateway) []GatewayType {
	out := make([]GatewayType, len(gateways))
	for i, g := range gateways {
		out[i] = g.Type
	}
	return out
}

func TestReconcileEmptyYieldsDefaults(t *testing.T) {
	for _, existing := range [][]Gateway{nil, {}} {
		got := Reconcile(DefaultGateways(), existing)
		assert.Equal(t, DefaultGateways(), got)
	}
}

func TestReconcileDefaultsEnabledOnlyForCOD(t *testing.T) {
	for _, g := range Reconcile(DefaultGateways(), nil) {
		assert.Equal(t, g.Type == GatewayCOD, g.Enabled, string(g.Type))
	}
}

func TestReconcileKeepsExistingAndAppendsMissing(t *testing.T) {
	existing := []Gateway{
		{Type: GatewayCOD, DisplayName: "Cash", Enabled: false, Config: map[string]string{}},
	}

	got := Reconcile(DefaultGateways(), existing)

	require.Len(t, got, 5)
	assert.Equal(t, existing[0], got[0])
	assert.False(t, got[0].Enabled)
	assert.Equal(t, []GatewayType{GatewayCOD, GatewayPayPal, GatewayPayoneer, GatewayBankTransfer, GatewayStripe}, types(got))
}

func TestReconcileEverySubsetProducesEachTypeOnce(t *testing.T) {
	defaults := DefaultGateways()
	for mask := 0; mask < 1<<len(defaults); mask++ {
		var existing []Gateway
		for i, g := range defaults {
			if mask&(1<<i) != 0 {
				g.DisplayName = "custom"
				existing = append(existing, g)
			}
		}

		got := Reconcile(DefaultGateways(), existing)

		counts := map[GatewayType]int{}
		for _, g := range got {
			counts[g.Type]++
		}
		assert.Len(t, got, 5)
		for _, d := range defaults {
			assert.Equal(t, 1, counts[d.Type], "mask %b type %s", mask, d.Type)
		}
		if len(existing) > 0 {
			assert.Equal(t, existing, got[:len(existing)])
		}
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	existing := []Gateway{
		{Type: GatewayStripe, DisplayName: "Card", Enabled: true, Config: map[string]string{"publishableKey": "pk", "secretKey": "sk"}},
		{Type: "crypto", DisplayName: "Crypto", Config: map[string]string{"wallet": "0x1"}},
	}

	once := Reconcile(DefaultGateways(), existing)
	twice := Reconcile(DefaultGateways(), once)

	assert.Equal(t, once, twice)
	assert.Equal(t, GatewayType("crypto"), once[1].Type)
}

func TestReconcileDoesNotAliasDefaults(t *testing.T) {
	known := DefaultGateways()
	got := Reconcile(known, nil)
	got[0].Config["clientId"] = "changed"

	assert.Equal(t, "", known[0].Config["clientId"])
}

func TestReconcileLegacyJSON(t *testing.T) {
	var existing []Gateway
	require.NoError(t, json.Unmarshal([]byte(`[{"type":"cod","enabled":false,"displayName":"Cash","config":{}}]`), &existing))

	got := Reconcile(DefaultGateways(), existing)

	require.Len(t, got, 5)
	assert.Equal(t, "Cash", got[0].DisplayName)
	assert.False(t, got[0].Enabled)
}

func TestEnabled(t *testing.T) {
	got := Enabled(DefaultGateways())
	require.Len(t, got, 1)
	assert.Equal(t, GatewayCOD, got[0].Type)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		gateway Gateway
		wantErr string
	}{
		{name: "disabled without config", gateway: Gateway{Type: GatewayPayPal, DisplayName: "PayPal"}},
		{name: "cod needs nothing", gateway: Gateway{Type: GatewayCOD, Enabled: true}},
		{
			name:    "enabled paypal missing secret",
			gateway: Gateway{Type: GatewayPayPal, DisplayName: "PayPal", Enabled: true, Config: map[string]string{"clientId": "id"}},
			wantErr: "PayPal: secret is required",
		},
		{
			name:    "blank counts as missing",
			gateway: Gateway{Type: GatewayPayoneer, Enabled: true, Config: map[string]string{"email": "  "}},
			wantErr: "payoneer: email is required",
		},
		{
			name:    "bank transfer complete",
			gateway: Gateway{Type: GatewayBankTransfer, Enabled: true, Config: map[string]string{"bankName": "ENBD", "accountNumber": "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]Gateway{tt.gateway})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

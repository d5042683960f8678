// Package payments keeps the configured payment gateways in step with the
// gateway types the store knows about.
package payments

import (
	"fmt"
	"strings"
)

type GatewayType string

const (
	GatewayPayPal       GatewayType = "paypal"
	GatewayPayoneer     GatewayType = "payoneer"
	GatewayBankTransfer GatewayType = "bank_transfer"
	GatewayStripe       GatewayType = "stripe"
	GatewayCOD          GatewayType = "cod"
)

type Gateway struct {
	Type         GatewayType       `json:"type" validate:"required"`
	DisplayName  string            `json:"displayName"`
	Enabled      bool              `json:"enabled"`
	Config       map[string]string `json:"config"`
	Instructions string            `json:"instructions,omitempty"`
}

func (g Gateway) clone() Gateway {
	out := g
	out.Config = make(map[string]string, len(g.Config))
	for k, v := range g.Config {
		out.Config[k] = v
	}
	return out
}

// DefaultGateways returns a fresh copy of the built-in gateway set, in
// display order. Only cash on delivery starts enabled.
func DefaultGateways() []Gateway {
	return []Gateway{
		{
			Type:         GatewayPayPal,
			DisplayName:  "PayPal",
			Config:       map[string]string{"clientId": "", "secret": ""},
			Instructions: "Pay with PayPal.",
		},
		{
			Type:         GatewayPayoneer,
			DisplayName:  "Payoneer",
			Config:       map[string]string{"email": ""},
			Instructions: "Pay with Payoneer.",
		},
		{
			Type:         GatewayBankTransfer,
			DisplayName:  "Direct Bank Transfer",
			Config:       map[string]string{"bankName": "", "accountNumber": "", "iban": "", "swift": ""},
			Instructions: "Transfer directly to our bank account.",
		},
		{
			Type:         GatewayStripe,
			DisplayName:  "Credit/Debit Card",
			Config:       map[string]string{"publishableKey": "", "secretKey": ""},
			Instructions: "Pay with credit or debit card.",
		},
		{
			Type:         GatewayCOD,
			DisplayName:  "Cash on Delivery",
			Enabled:      true,
			Config:       map[string]string{},
			Instructions: "Pay with cash upon delivery.",
		},
	}
}

// Reconcile returns existing followed by a copy of every entry of known
// whose type is absent from existing. Existing entries, including types
// not in known, keep their order and values. Neither input is modified.
func Reconcile(known []Gateway, existing []Gateway) []Gateway {
	out := make([]Gateway, 0, len(existing)+len(known))
	present := make(map[GatewayType]bool, len(existing))

	for _, g := range existing {
		out = append(out, g)
		present[g.Type] = true
	}

	for _, g := range known {
		if present[g.Type] {
			continue
		}
		out = append(out, g.clone())
		present[g.Type] = true
	}

	return out
}

// Enabled filters gateways down to the ones switched on.
func Enabled(gateways []Gateway) []Gateway {
	var out []Gateway
	for _, g := range gateways {
		if g.Enabled {
			out = append(out, g)
		}
	}
	return out
}

var requiredConfig = map[GatewayType][]string{
	GatewayPayPal:       {"clientId", "secret"},
	GatewayPayoneer:     {"email"},
	GatewayBankTransfer: {"bankName", "accountNumber"},
	GatewayStripe:       {"publishableKey", "secretKey"},
}

type ValidationError struct {
	Gateway string
	Field   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Gateway, e.Field)
}

// Validate rejects enabled gateways that are missing credentials they
// cannot work without. Disabled gateways are never checked.
func Validate(gateways []Gateway) error {
	for _, g := range gateways {
		if !g.Enabled {
			continue
		}
		for _, field := range requiredConfig[g.Type] {
			if strings.TrimSpace(g.Config[field]) == "" {
				name := g.DisplayName
				if name == "" {
					name = string(g.Type)
				}
				return &ValidationError{Gateway: name, Field: field}
			}
		}
	}
	return nil
}

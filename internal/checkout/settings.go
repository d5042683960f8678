// Package checkout decides which payment methods a shopper is offered and
// prices a cart.
package checkout

import "greengrass/internal/payments"

// Settings are the store-wide checkout toggles.
type Settings struct {
	EnableCardPayment    bool `json:"enableCardPayment"`
	EnableWhatsappOrder  bool `json:"enableWhatsappOrder"`
	EnableCashOnDelivery bool `json:"enableCashOnDelivery"`
}

func DefaultSettings() Settings {
	return Settings{
		EnableCardPayment:    true,
		EnableWhatsappOrder:  true,
		EnableCashOnDelivery: true,
	}
}

// Methods is what the checkout page may offer.
type Methods struct {
	Gateways      []payments.Gateway `json:"gateways"`
	WhatsappOrder bool               `json:"whatsapp_order"`
}

var cardGateways = map[payments.GatewayType]bool{
	payments.GatewayStripe:   true,
	payments.GatewayPayPal:   true,
	payments.GatewayPayoneer: true,
}

// AvailableMethods keeps the enabled gateways the toggles allow. Turning
// card payment off hides the online gateways; turning cash on delivery off
// hides cod. Bank transfer follows only its own enabled flag.
func AvailableMethods(gateways []payments.Gateway, s Settings) Methods {
	out := []payments.Gateway{}
	for _, g := range payments.Enabled(gateways) {
		if cardGateways[g.Type] && !s.EnableCardPayment {
			continue
		}
		if g.Type == payments.GatewayCOD && !s.EnableCashOnDelivery {
			continue
		}
		out = append(out, g)
	}
	return Methods{Gateways: out, WhatsappOrder: s.EnableWhatsappOrder}
}

package checkout

import (
	"errors"
	"fmt"
	"math"

	"greengrass/internal/models"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product is not available")
)

// Pricing holds the store-wide tax and shipping rules.
type Pricing struct {
	TaxRate               float64
	ShippingFee           float64
	FreeShippingThreshold float64
}

type Line struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=999"`
}

type QuotedLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

type Quote struct {
	Items    []QuotedLine `json:"items"`
	Subtotal float64      `json:"subtotal"`
	Tax      float64      `json:"tax"`
	Shipping float64      `json:"shipping"`
	Total    float64      `json:"total"`
	Currency string       `json:"currency"`
	Methods  *Methods     `json:"payment_methods,omitempty"`
}

// Price totals lines against products, keyed by id. Lines for the same
// product are kept separate. Every product must exist and be active.
func (p Pricing) Price(lines []Line, products map[string]models.Product) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, ErrEmptyCart
	}

	q := Quote{Items: make([]QuotedLine, 0, len(lines)), Currency: "AED"}
	for _, l := range lines {
		if l.Quantity < 1 {
			return Quote{}, fmt.Errorf("invalid quantity %d for product %s", l.Quantity, l.ProductID)
		}
		prod, ok := products[l.ProductID]
		if !ok || !prod.IsActive {
			return Quote{}, fmt.Errorf("%w: %s", ErrProductUnavailable, l.ProductID)
		}
		if prod.Currency != "" {
			q.Currency = prod.Currency
		}

		total := round2(prod.Price * float64(l.Quantity))
		q.Items = append(q.Items, QuotedLine{
			ProductID: prod.ID,
			Name:      prod.Name,
			Price:     prod.Price,
			Quantity:  l.Quantity,
			Total:     total,
		})
		q.Subtotal += total
	}

	q.Subtotal = round2(q.Subtotal)
	q.Tax = round2(q.Subtotal * p.TaxRate)
	q.Shipping = p.ShippingFee
	if p.FreeShippingThreshold > 0 && q.Subtotal >= p.FreeShippingThreshold {
		q.Shipping = 0
	}
	q.Total = round2(q.Subtotal + q.Tax + q.Shipping)
	return q, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package settings stores site-wide configuration as JSON values addressed
// by a unique key, mirroring the site_settings table.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

const (
	KeyPaymentGateways         = "payment_gateways"
	KeyInvoiceTemplate         = "invoice_template"
	KeyBranding                = "branding"
	KeyCheckoutSettings        = "checkout_settings"
	KeyFeaturedCategorySection = "featured_category_section"
	KeyGiftSection             = "gift_section"
	KeyFAQCategories           = "faq_categories"
	KeyFAQItems                = "faq_items"
	KeyReturnPolicySections    = "return_policy_sections"
	KeyPrivacySections         = "privacy_sections"
	KeyTermsSections           = "terms_sections"
	KeyAboutContent            = "about_content"
	KeyContactContent          = "contact_content"
)

var (
	ErrNotFound   = errors.New("setting not found")
	ErrUnknownKey = errors.New("unknown setting key")
)

type Setting struct {
	Key       string          `json:"setting_key"`
	Value     json.RawMessage `json:"setting_value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is a key/value view over site settings. Upsert updates the row for
// key if it exists and inserts it otherwise; concurrent writers race and the
// last one wins.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Upsert(ctx context.Context, key string, value json.RawMessage) error
	List(ctx context.Context) ([]Setting, error)
}

package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"greengrass/internal/logger"
	"greengrass/internal/settings"
)

// TemplateSettings is the branding and wording applied to invoices and
// delivery slips. Every field has a built-in default.
type TemplateSettings struct {
	ShowLogo            bool   `json:"showLogo"`
	LogoURL             string `json:"logoUrl"`
	CompanyName         string `json:"companyName"`
	CompanyNameAr       string `json:"companyNameAr"`
	Address             string `json:"address"`
	AddressAr           string `json:"addressAr"`
	Phone               string `json:"phone"`
	Email               string `json:"email" validate:"omitempty,email"`
	Website             string `json:"website"`
	PrimaryColor        string `json:"primaryColor" validate:"omitempty,hexcolor"`
	FooterText          string `json:"footerText"`
	FooterTextAr        string `json:"footerTextAr"`
	ShowTaxBreakdown    bool   `json:"showTaxBreakdown"`
	TaxLabel            string `json:"taxLabel"`
	TaxLabelAr          string `json:"taxLabelAr"`
	CurrencySymbol      string `json:"currencySymbol"`
	InvoiceTitle        string `json:"invoiceTitle"`
	InvoiceTitleAr      string `json:"invoiceTitleAr"`
	DeliverySlipTitle   string `json:"deliverySlipTitle"`
	DeliverySlipTitleAr string `json:"deliverySlipTitleAr"`
}

const defaultCompanyName = "GREEN GRASS STORE"

func DefaultTemplate() TemplateSettings {
	return TemplateSettings{
		ShowLogo:            true,
		LogoURL:             "",
		CompanyName:         defaultCompanyName,
		CompanyNameAr:       "جرين جراس ستور",
		Address:             "Dubai, UAE",
		AddressAr:           "دبي، الإمارات",
		Phone:               "+971 54 775 1901",
		Email:               "info@greengrassstore.com",
		Website:             "www.greengrassstore.com",
		PrimaryColor:        "#2d5a3d",
		FooterText:          "Thank you for shopping with us!",
		FooterTextAr:        "شكراً لتسوقكم معنا!",
		ShowTaxBreakdown:    true,
		TaxLabel:            "VAT",
		TaxLabelAr:          "ضريبة القيمة المضافة",
		CurrencySymbol:      "AED",
		InvoiceTitle:        "INVOICE",
		InvoiceTitleAr:      "فاتورة",
		DeliverySlipTitle:   "DELIVERY SLIP",
		DeliverySlipTitleAr: "إيصال التسليم",
	}
}

// Branding is the subset of the site branding setting used as a fallback.
type Branding struct {
	LogoURL  string `json:"logoUrl"`
	SiteName string `json:"siteName"`
}

type TemplateSource struct {
	store  settings.Store
	logger *logger.Logger
}

func NewTemplateSource(store settings.Store, logger *logger.Logger) *TemplateSource {
	return &TemplateSource{store: store, logger: logger}
}

// Fetch returns the stored invoice template merged over the defaults. When
// no logo is configured the site branding supplies the logo and, if the
// company name was never customized, the site name. Fetch never fails:
// storage errors are logged and the defaults stand in.
func (s *TemplateSource) Fetch(ctx context.Context) TemplateSettings {
	tmpl, err := s.stored(ctx)
	if err != nil {
		s.logger.Warn("Could not fetch invoice template; using defaults: %v", err)
		tmpl = DefaultTemplate()
	}

	if tmpl.LogoURL != "" {
		return tmpl
	}

	branding, err := settings.Load(ctx, s.store, settings.KeyBranding, Branding{})
	if err != nil {
		s.logger.Warn("Could not fetch branding fallback for invoice template: %v", err)
		return tmpl
	}

	return applyBranding(tmpl, branding)
}

// stored overlays the saved template onto the defaults field by field.
// Values are not validated here; the renderer sanitizes what it prints.
func (s *TemplateSource) stored(ctx context.Context) (TemplateSettings, error) {
	tmpl := DefaultTemplate()

	raw, err := s.store.Get(ctx, settings.KeyInvoiceTemplate)
	if errors.Is(err, settings.ErrNotFound) {
		return tmpl, nil
	}
	if err != nil {
		return tmpl, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return tmpl, nil
	}

	if err := json.Unmarshal(raw, &tmpl); err != nil {
		return DefaultTemplate(), fmt.Errorf("setting %s: %w", settings.KeyInvoiceTemplate, err)
	}
	return tmpl, nil
}

func applyBranding(tmpl TemplateSettings, branding Branding) TemplateSettings {
	if branding.LogoURL != "" {
		tmpl.LogoURL = branding.LogoURL
	}
	if branding.SiteName != "" && (tmpl.CompanyName == "" || tmpl.CompanyName == defaultCompanyName) {
		tmpl.CompanyName = branding.SiteName
	}
	return tmpl
}

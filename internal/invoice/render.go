package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"greengrass/internal/models"
)

// LineItem is one order line as stored in the order's items column.
type LineItem struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Quantity Amount `json:"quantity"`
	Price    Amount `json:"price"`
	Total    Amount `json:"total"`
}

func (i LineItem) label() string {
	if i.Name != "" {
		return i.Name
	}
	if i.Title != "" {
		return i.Title
	}
	return "Item"
}

func (i LineItem) quantity() float64 {
	if i.Quantity == 0 {
		return 1
	}
	return float64(i.Quantity)
}

func (i LineItem) unitPrice() float64 {
	if i.Price != 0 {
		return float64(i.Price)
	}
	return float64(i.Total)
}

// LineItems decodes a JSON array of items; any other JSON value is treated
// as an empty list.
type LineItems []LineItem

func (l *LineItems) UnmarshalJSON(data []byte) error {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

type Order struct {
	OrderNumber     string    `json:"order_number"`
	CreatedAt       time.Time `json:"created_at"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerAddress string    `json:"customer_address"`
	Items           LineItems `json:"items"`
	Subtotal        *Amount   `json:"subtotal"`
	Tax             *Amount   `json:"tax"`
	Shipping        *Amount   `json:"shipping"`
	Total           *Amount   `json:"total"`
}

// FromModel converts a stored order into its printable form.
func FromModel(o models.Order) Order {
	out := Order{
		OrderNumber:     o.OrderNumber,
		CreatedAt:       o.CreatedAt,
		Status:          string(o.Status),
		PaymentMethod:   deref(o.PaymentMethod),
		CustomerName:    deref(o.CustomerName),
		CustomerEmail:   deref(o.CustomerEmail),
		CustomerPhone:   deref(o.CustomerPhone),
		CustomerAddress: deref(o.CustomerAddress),
		Subtotal:        amountPtr(o.Subtotal),
		Tax:             amountPtr(o.Tax),
		Shipping:        amountPtr(o.Shipping),
		Total:           amountPtr(o.Total),
	}
	if len(o.Items) > 0 {
		if err := json.Unmarshal(o.Items, &out.Items); err != nil {
			out.Items = nil
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func amountPtr(f *float64) *Amount {
	if f == nil {
		return nil
	}
	return AmountOf(*f)
}

// Totals returns subtotal, tax, shipping and grand total. Missing parts are
// zero; a missing grand total is the sum of the other three.
func (o Order) Totals() (subtotal, tax, shipping, total float64) {
	subtotal = o.Subtotal.value()
	tax = o.Tax.value()
	shipping = o.Shipping.value()
	if o.Total != nil {
		total = float64(*o.Total)
	} else {
		total = subtotal + tax + shipping
	}
	return
}

// Options selects the rendering language. "ar" renders right to left with
// the Arabic template fields.
type Options struct {
	Language string
}

func (o Options) arabic() bool {
	return strings.EqualFold(o.Language, "ar")
}

type labels struct {
	BilledTo, Details, InvoiceNo, Status, Payment  string
	Item, Qty, Price, Total, Subtotal, Shipping    string
	Questions, DefaultPayment, ShipTo, OrderNo     string
}

var englishLabels = labels{
	BilledTo: "Billed To", Details: "Invoice Details", InvoiceNo: "Invoice #", Status: "Status", Payment: "Payment",
	Item: "Item", Qty: "Qty", Price: "Price", Total: "Total", Subtotal: "Subtotal", Shipping: "Shipping",
	Questions: "Questions? Email", DefaultPayment: "Cash on Delivery", ShipTo: "Ship To", OrderNo: "Order #",
}

var arabicLabels = labels{
	BilledTo: "فاتورة إلى", Details: "تفاصيل الفاتورة", InvoiceNo: "رقم الفاتورة", Status: "الحالة", Payment: "الدفع",
	Item: "المنتج", Qty: "الكمية", Price: "السعر", Total: "الإجمالي", Subtotal: "المجموع الفرعي", Shipping: "الشحن",
	Questions: "أسئلة؟ راسلنا على", DefaultPayment: "الدفع عند الاستلام", ShipTo: "الشحن إلى", OrderNo: "رقم الطلب",
}

type itemView struct {
	Label     string
	Quantity  string
	UnitPrice string
	LineTotal string
}

type documentView struct {
	Lang         string
	Dir          string
	Title        string
	OrderNumber  string
	Date         string
	PrimaryColor string
	ShowLogoImg  bool
	LogoURL      string
	CompanyName  string
	Website      string
	Address      string
	Phone        string
	Email        string
	FooterText   string
	Customer     []string
	Status       string
	Payment      string
	Items        []itemView
	Subtotal     string
	ShowTax      bool
	TaxLabel     string
	Tax          string
	Shipping     string
	Total        string
	L            labels
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

const fallbackColor = "#2d5a3d"

func sanitizeColor(c string) string {
	c = strings.TrimSpace(c)
	if hexColor.MatchString(c) {
		return c
	}
	return fallbackColor
}

func buildView(order Order, tmpl TemplateSettings, opts Options, title, titleAr string) documentView {
	ar := opts.arabic()
	pick := func(en, arText string) string {
		if ar && arText != "" {
			return arText
		}
		return en
	}

	l := englishLabels
	v := documentView{Lang: "en", Dir: "ltr"}
	if ar {
		l = arabicLabels
		v.Lang, v.Dir = "ar", "rtl"
	}

	subtotal, tax, shipping, total := order.Totals()
	symbol := tmpl.CurrencySymbol

	v.L = l
	v.Title = pick(title, titleAr)
	v.OrderNumber = order.OrderNumber
	if !order.CreatedAt.IsZero() {
		v.Date = order.CreatedAt.Format("2 Jan 2006")
	}
	v.PrimaryColor = sanitizeColor(tmpl.PrimaryColor)
	v.ShowLogoImg = tmpl.ShowLogo && tmpl.LogoURL != ""
	v.LogoURL = tmpl.LogoURL
	v.CompanyName = pick(tmpl.CompanyName, tmpl.CompanyNameAr)
	v.Website = tmpl.Website
	v.Address = pick(tmpl.Address, tmpl.AddressAr)
	v.Phone = tmpl.Phone
	v.Email = tmpl.Email
	v.FooterText = pick(tmpl.FooterText, tmpl.FooterTextAr)
	v.Customer = []string{order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.CustomerAddress}

	status := order.Status
	if status == "" {
		status = "pending"
	}
	v.Status = strings.ToUpper(status)

	v.Payment = order.PaymentMethod
	if v.Payment == "" {
		v.Payment = l.DefaultPayment
	}

	for _, item := range order.Items {
		qty := item.quantity()
		unit := item.unitPrice()
		v.Items = append(v.Items, itemView{
			Label:     item.label(),
			Quantity:  formatQuantity(qty),
			UnitPrice: FormatMoney(symbol, unit),
			LineTotal: FormatMoney(symbol, unit*qty),
		})
	}

	v.Subtotal = FormatMoney(symbol, subtotal)
	v.ShowTax = tmpl.ShowTaxBreakdown
	v.TaxLabel = pick(tmpl.TaxLabel, tmpl.TaxLabelAr)
	v.Tax = FormatMoney(symbol, tax)
	v.Shipping = FormatMoney(symbol, shipping)
	v.Total = FormatMoney(symbol, total)

	return v
}

var documents = template.Must(template.New("documents").Parse(documentsHTML))

// Render produces a complete, printable HTML invoice. The output depends
// only on its inputs.
func Render(order Order, tmpl TemplateSettings) (string, error) {
	return RenderWithOptions(order, tmpl, Options{})
}

func RenderWithOptions(order Order, tmpl TemplateSettings, opts Options) (string, error) {
	return execute("invoice", buildView(order, tmpl, opts, tmpl.InvoiceTitle, tmpl.InvoiceTitleAr))
}

// RenderDeliverySlip produces a packing slip: recipient and quantities, no prices.
func RenderDeliverySlip(order Order, tmpl TemplateSettings, opts Options) (string, error) {
	return execute("slip", buildView(order, tmpl, opts, tmpl.DeliverySlipTitle, tmpl.DeliverySlipTitleAr))
}

func execute(name string, view documentView) (string, error) {
	var buf bytes.Buffer
	if err := documents.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

const documentsHTML = `
{{define "head"}}<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}} - {{.OrderNumber}}</title>
  <style>
    body { font-family: Arial, sans-serif; padding: 32px; max-width: 860px; margin: 0 auto; color: #111827; }
    .header { text-align: center; margin-bottom: 24px; border-bottom: 2px solid {{.PrimaryColor}}; padding-bottom: 16px; }
    .header h1 { color: {{.PrimaryColor}}; margin: 0; }
    .muted { color: #6b7280; }
    .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; margin: 20px 0; }
    .box { background: #f9fafb; padding: 14px; border-radius: 10px; }
    table { width: 100%; border-collapse: collapse; margin-top: 12px; }
    th { background: {{.PrimaryColor}}; color: white; text-align: start; padding: 10px; }
    td { padding: 10px; border-bottom: 1px solid #e5e7eb; }
    .num { text-align: end; }
    .qty { text-align: center; }
    .totals { text-align: end; margin-top: 16px; }
    .totals p { margin: 6px 0; }
    .total-row { font-size: 18px; font-weight: 700; color: {{.PrimaryColor}}; }
    .footer { text-align: center; margin-top: 28px; padding-top: 12px; border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 12px; }
    @media print { body { padding: 16px; } }
  </style>
</head>
<body>
  <div class="header">
    {{if .ShowLogoImg}}<img src="{{.LogoURL}}" alt="{{.CompanyName}}" style="max-height: 60px; max-width: 200px; margin-bottom: 10px;" />{{else}}<h1>{{.CompanyName}}</h1>{{end}}
    <p class="muted" style="margin: 6px 0;">{{.Website}}</p>
    <p class="muted" style="margin: 0;">{{.Address}} | {{.Phone}}</p>
  </div>

  <h2 style="text-align: center; color: {{.PrimaryColor}}; margin: 0 0 12px;">{{.Title}}</h2>
  <p class="muted" style="text-align: center; margin: 0 0 24px;">{{.Date}}</p>
{{end}}

{{define "customer"}}<p style="margin: 0; line-height: 1.6;">{{range $i, $line := .Customer}}{{if $i}}<br />{{end}}{{$line}}{{end}}</p>{{end}}

{{define "foot"}}
  <div class="footer">
    <p style="margin: 0 0 6px;">{{.FooterText}}</p>
    <p style="margin: 0;">{{.L.Questions}} {{.Email}}</p>
  </div>
</body>
</html>
{{end}}

{{define "invoice"}}{{template "head" .}}
  <div class="grid">
    <div class="box">
      <h3 style="margin: 0 0 8px; color: {{.PrimaryColor}}; font-size: 14px;">{{.L.BilledTo}}</h3>
      {{template "customer" .}}
    </div>
    <div class="box">
      <h3 style="margin: 0 0 8px; color: {{.PrimaryColor}}; font-size: 14px;">{{.L.Details}}</h3>
      <p style="margin: 0; line-height: 1.6;">
        <strong>{{.L.InvoiceNo}}:</strong> {{.OrderNumber}}<br />
        <strong>{{.L.Status}}:</strong> {{.Status}}<br />
        <strong>{{.L.Payment}}:</strong> {{.Payment}}
      </p>
    </div>
  </div>

  <table>
    <thead>
      <tr><th>{{.L.Item}}</th><th>{{.L.Qty}}</th><th>{{.L.Price}}</th><th>{{.L.Total}}</th></tr>
    </thead>
    <tbody>
      {{range .Items}}<tr>
        <td>{{.Label}}</td>
        <td class="qty">{{.Quantity}}</td>
        <td class="num">{{.UnitPrice}}</td>
        <td class="num">{{.LineTotal}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals">
    <p>{{.L.Subtotal}}: {{.Subtotal}}</p>
    {{if .ShowTax}}<p class="tax-row">{{.TaxLabel}}: {{.Tax}}</p>{{end}}
    <p>{{.L.Shipping}}: {{.Shipping}}</p>
    <p class="total-row">{{.L.Total}}: {{.Total}}</p>
  </div>
{{template "foot" .}}{{end}}

{{define "slip"}}{{template "head" .}}
  <div class="grid">
    <div class="box">
      <h3 style="margin: 0 0 8px; color: {{.PrimaryColor}}; font-size: 14px;">{{.L.ShipTo}}</h3>
      {{template "customer" .}}
    </div>
    <div class="box">
      <h3 style="margin: 0 0 8px; color: {{.PrimaryColor}}; font-size: 14px;">{{.L.Details}}</h3>
      <p style="margin: 0; line-height: 1.6;">
        <strong>{{.L.OrderNo}}:</strong> {{.OrderNumber}}<br />
        <strong>{{.L.Status}}:</strong> {{.Status}}<br />
        <strong>{{.L.Payment}}:</strong> {{.Payment}}
      </p>
    </div>
  </div>

  <table>
    <thead>
      <tr><th>{{.L.Item}}</th><th>{{.L.Qty}}</th></tr>
    </thead>
    <tbody>
      {{range .Items}}<tr>
        <td>{{.Label}}</td>
        <td class="qty">{{.Quantity}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
{{template "foot" .}}{{end}}
`

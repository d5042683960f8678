package shopify

import (
	"time"
)

// Product represents a Shopify product
type Product struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	BodyHTML    string     `json:"body_html"`
	Vendor      string     `json:"vendor"`
	ProductType string     `json:"product_type"`
	Handle      string     `json:"handle"`
	Status      string     `json:"status"`
	Tags        string     `json:"tags"`
	Variants    []Variant  `json:"variants"`
	Images      []Image    `json:"images"`
	Options     []Option   `json:"options"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
}

// Variant represents a product variant
type Variant struct {
	ID                int64   `json:"id"`
	ProductID         int64   `json:"product_id"`
	Title             string  `json:"title"`
	Price             string  `json:"price"`
	Sku               string  `json:"sku"`
	Position          int     `json:"position"`
	CompareAtPrice    *string `json:"compare_at_price"`
	Option1           *string `json:"option1"`
	Option2           *string `json:"option2"`
	Option3           *string `json:"option3"`
	Barcode           *string `json:"barcode"`
	InventoryQuantity int     `json:"inventory_quantity"`
}

// Image represents a product image
type Image struct {
	ID       int64   `json:"id"`
	Position int     `json:"position"`
	Alt      *string `json:"alt"`
	Src      string  `json:"src"`
}

// Option represents a product option
type Option struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// Shop represents shop information
type Shop struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Domain          string `json:"domain"`
	Currency        string `json:"currency"`
	MoneyFormat     string `json:"money_format"`
	MyshopifyDomain string `json:"myshopify_domain"`
}

// ProductsResponse represents one page of the products API. NextPageInfo is
// empty on the last page.
type ProductsResponse struct {
	Products     []Product `json:"products"`
	NextPageInfo string    `json:"-"`
}

// WebhookPayload is the body of the products/* webhooks. Delete webhooks
// carry only the id.
type WebhookPayload = Product

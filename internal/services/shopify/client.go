package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"greengrass/internal/logger"
)

const apiVersion = "2023-10"

var ErrProductNotFound = errors.New("shopify product not found")

var nextPageInfo = regexp.MustCompile(`<[^>]*[?&]page_info=([^&>]+)[^>]*>;\s*rel="next"`)

type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *logger.Logger
}

func NewClient(shopDomain, accessToken string, logger *logger.Logger) *Client {
	if !strings.Contains(shopDomain, ".") {
		shopDomain += ".myshopify.com"
	}
	return &Client{
		baseURL:     fmt.Sprintf("https://%s/admin/api/%s", shopDomain, apiVersion),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// WithBaseURL points the client at another API root.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Configured reports whether the client has credentials to call the API.
func (c *Client) Configured() bool {
	return c != nil && c.accessToken != ""
}

// GetProducts fetches one page of products from Shopify
func (c *Client) GetProducts(ctx context.Context, limit int, pageInfo string) (*ProductsResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if pageInfo != "" {
		q.Set("page_info", pageInfo)
	} else {
		q.Set("status", "active")
	}

	var productsResp ProductsResponse
	resp, err := c.get(ctx, "/products.json", q, &productsResp)
	if err != nil {
		return nil, err
	}

	if m := nextPageInfo.FindStringSubmatch(resp.Header.Get("Link")); m != nil {
		productsResp.NextPageInfo = m[1]
	}
	return &productsResp, nil
}

// GetProductByHandle fetches the product whose handle matches
func (c *Client) GetProductByHandle(ctx context.Context, handle string) (*Product, error) {
	q := url.Values{}
	q.Set("handle", handle)
	q.Set("limit", "1")

	var productsResp ProductsResponse
	if _, err := c.get(ctx, "/products.json", q, &productsResp); err != nil {
		return nil, err
	}
	if len(productsResp.Products) == 0 {
		return nil, ErrProductNotFound
	}
	return &productsResp.Products[0], nil
}

// GetShopInfo fetches shop information
func (c *Client) GetShopInfo(ctx context.Context) (*Shop, error) {
	var shopResp struct {
		Shop Shop `json:"shop"`
	}
	if _, err := c.get(ctx, "/shop.json", nil, &shopResp); err != nil {
		return nil, err
	}
	return &shopResp.Shop, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Shopify GET %s", path)
	return resp, nil
}

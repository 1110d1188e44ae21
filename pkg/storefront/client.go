// Package storefront implements the catalog browsing pipeline: fetching
// products from the catalog service, projecting them through filter/search,
// rendering view values, and accumulating an in-memory cart.
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Product mirrors the catalog service's wire shape for a product. Optional
// columns arrive as JSON null and stay nil here.
type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Badge       *string   `json:"badge"`
	BadgeClass  *string   `json:"badge_class"`
	Description *string   `json:"description"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

type productsEnvelope struct {
	Success bool      `json:"success"`
	Count   int       `json:"count"`
	Message string    `json:"message"`
	Data    []Product `json:"data"`
}

// Client calls the catalog service's product endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog API client for the given base URL, e.g.
// "http://localhost:8080". A nil httpClient falls back to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// FetchProducts lists products, optionally restricted to an exact category
// and/or a substring search over name and category.
func (c *Client) FetchProducts(ctx context.Context, category, search string) ([]Product, error) {
	endpoint := c.baseURL + "/products"
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	if search != "" {
		params.Set("search", search)
	}
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build products request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("products request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("products request returned status %d", resp.StatusCode)
	}

	var envelope productsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode products response: %w", err)
	}
	if !envelope.Success {
		return nil, fmt.Errorf("catalog service rejected the request: %s", envelope.Message)
	}
	return envelope.Data, nil
}

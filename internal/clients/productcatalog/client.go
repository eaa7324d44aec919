package productcatalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"github.com/stxcorp/orders-ms/internal/service/models/product"
)

var (
	// ErrCatalogUnavailable is returned when the product catalog cannot be
	// reached or answers with a non-OK status.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")
	// ErrProductNotFound is returned when the catalog response is missing one
	// or more of the requested product ids.
	ErrProductNotFound = errors.New("product not found in catalog")
)

const defaultTimeoutSeconds = 5

// Client calls the product catalog service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a product catalog client with a bounded request timeout
// so a slow catalog cannot hang order creation.
func NewClient() *Client {
	timeoutSeconds := viper.GetInt("product_catalog.timeout_seconds")
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		baseURL: viper.GetString("product_catalog.base_url"),
	}
}

type validateProductsRequest struct {
	Ids []int64 `json:"ids"`
}

// ValidateProducts resolves the given product ids against the catalog. The
// response is treated as untrusted regarding completeness: every requested id
// must be present or the call fails.
func (c *Client) ValidateProducts(ctx context.Context, ids []int64) ([]product.Product, error) {
	body, err := json.Marshal(validateProductsRequest{Ids: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal validate request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/v1/products/validate",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var products []product.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrCatalogUnavailable, err)
	}

	byID := product.MapByID(products)
	var missing []int64
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: ids %v", ErrProductNotFound, missing)
	}

	return products, nil
}

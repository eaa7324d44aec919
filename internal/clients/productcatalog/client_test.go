package productcatalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stxcorp/orders-ms/internal/clients/productcatalog"
	"github.com/stxcorp/orders-ms/internal/service/models/product"
)

func newCatalogServer(t *testing.T, products []product.Product) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/products/validate", r.URL.Path)

		var req struct {
			Ids []int64 `json:"ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Ids)

		require.NoError(t, json.NewEncoder(w).Encode(products))
	}))
}

func newClient(t *testing.T, baseURL string) *productcatalog.Client {
	t.Helper()
	viper.Set("product_catalog.base_url", baseURL)
	t.Cleanup(func() { viper.Set("product_catalog.base_url", "") })

	return productcatalog.NewClient()
}

func TestValidateProducts_ReturnsAllRequested(t *testing.T) {
	srv := newCatalogServer(t, []product.Product{
		{ID: 1, Name: "Keyboard", PriceCents: 1000},
		{ID: 2, Name: "Mouse", PriceCents: 500},
	})
	defer srv.Close()

	client := newClient(t, srv.URL)

	products, err := client.ValidateProducts(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, products, 2)

	byID := product.MapByID(products)
	assert.Equal(t, int64(1000), byID[1].PriceCents)
	assert.Equal(t, "Mouse", byID[2].Name)
}

func TestValidateProducts_MissingIDFailsCompleteness(t *testing.T) {
	srv := newCatalogServer(t, []product.Product{
		{ID: 1, Name: "Keyboard", PriceCents: 1000},
	})
	defer srv.Close()

	client := newClient(t, srv.URL)

	_, err := client.ValidateProducts(context.Background(), []int64{1, 2})
	require.ErrorIs(t, err, productcatalog.ErrProductNotFound)
	assert.Contains(t, err.Error(), "2")
}

func TestValidateProducts_NonOKStatusIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	_, err := client.ValidateProducts(context.Background(), []int64{1})
	require.ErrorIs(t, err, productcatalog.ErrCatalogUnavailable)
}

func TestValidateProducts_UnreachableCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	client := newClient(t, srv.URL)

	_, err := client.ValidateProducts(context.Background(), []int64{1})
	require.ErrorIs(t, err, productcatalog.ErrCatalogUnavailable)
}

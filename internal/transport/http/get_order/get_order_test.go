package getorder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
	"github.com/stxcorp/orders-ms/internal/transport/http/apierr"
)

type fakeService struct {
	ord    order.Order
	err    error
	called bool
}

func (f *fakeService) GetOrder(_ context.Context, _ string) (order.Order, error) {
	f.called = true

	return f.ord, f.err
}

func doGet(svc service, orderID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderID", orderID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	GetOrder(w, req, svc)

	return w
}

func TestGetOrder_Success(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeService{ord: order.Order{ID: id, Status: order.StatusDelivered}}

	w := doGet(svc, id)

	require.Equal(t, http.StatusOK, w.Code)

	var resp order.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, id, resp.ID)
}

func TestGetOrder_InvalidUUIDRejected(t *testing.T) {
	svc := &fakeService{}

	w := doGet(svc, "42")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.called)
}

func TestGetOrder_NotFound(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeService{
		err: fmt.Errorf("order with id %s: %w", id, order.ErrOrderNotFound),
	}

	w := doGet(svc, id)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp apierr.Error
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Message, id)
}

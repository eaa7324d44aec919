package createorder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
	"github.com/stxcorp/orders-ms/internal/transport/http/apierr"
)

type fakeService struct {
	ord    order.Order
	err    error
	got    order.NewOrderModel
	called bool
}

func (f *fakeService) Create(_ context.Context, model order.NewOrderModel) (order.Order, error) {
	f.called = true
	f.got = model

	return f.ord, f.err
}

func doCreate(svc service, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	CreateOrder(w, req, svc)

	return w
}

func TestCreateOrder_Success(t *testing.T) {
	svc := &fakeService{ord: order.Order{
		ID:              uuid.NewString(),
		Status:          order.StatusPending,
		TotalPriceCents: 2500,
		TotalItems:      3,
	}}

	w := doCreate(svc, `{"items":[{"productId":1,"quantity":2},{"productId":2,"quantity":1}]}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, svc.called)
	require.Len(t, svc.got.Items, 2)
	assert.Equal(t, int64(1), svc.got.Items[0].ProductID)
	assert.Equal(t, 2, svc.got.Items[0].Quantity)

	var resp order.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, svc.ord.ID, resp.ID)
	assert.Equal(t, int64(2500), resp.TotalPriceCents)
}

func TestCreateOrder_EmptyItemsRejected(t *testing.T) {
	svc := &fakeService{}

	w := doCreate(svc, `{"items":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.called)
}

func TestCreateOrder_NonPositiveQuantityRejected(t *testing.T) {
	svc := &fakeService{}

	w := doCreate(svc, `{"items":[{"productId":1,"quantity":0}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.called)
}

func TestCreateOrder_MalformedBodyRejected(t *testing.T) {
	svc := &fakeService{}

	w := doCreate(svc, `{"items":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.called)
}

func TestCreateOrder_CreationFailureIsGeneric(t *testing.T) {
	svc := &fakeService{
		err: fmt.Errorf("%w: product 42 missing from catalog", order.ErrCreateFailed),
	}

	w := doCreate(svc, `{"items":[{"productId":42,"quantity":1}]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierr.Error
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	// Internal detail never leaks to the caller.
	assert.NotContains(t, resp.Message, "catalog")
	assert.Contains(t, resp.Message, "order creation failed")
}

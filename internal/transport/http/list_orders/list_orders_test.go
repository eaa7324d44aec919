package listorders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
)

type fakeService struct {
	orders []order.Order
	meta   order.PageMeta
	err    error
	got    order.PaginationModel
	called bool
}

func (f *fakeService) GetOrders(_ context.Context, pagination order.PaginationModel) ([]order.Order, order.PageMeta, error) {
	f.called = true
	f.got = pagination

	return f.orders, f.meta, f.err
}

func doList(svc service, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders"+query, nil)
	w := httptest.NewRecorder()
	ListOrders(w, req, svc)

	return w
}

func TestListOrders_PassesPaginationAndFilter(t *testing.T) {
	svc := &fakeService{
		orders: []order.Order{{ID: uuid.NewString(), Status: order.StatusPaid}},
		meta:   order.PageMeta{Total: 11, Page: 2, LastPage: 3},
	}

	w := doList(svc, "?page=2&limit=5&status=PAID")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.got.Page)
	assert.Equal(t, 5, svc.got.Limit)
	assert.Equal(t, order.StatusPaid, svc.got.Status)

	var resp struct {
		Data []order.Order  `json:"data"`
		Meta order.PageMeta `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, int64(3), resp.Meta.LastPage)
}

func TestListOrders_NoFilter(t *testing.T) {
	svc := &fakeService{meta: order.PageMeta{Page: 1}}

	w := doList(svc, "")

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, svc.called)
	assert.Equal(t, order.Status(""), svc.got.Status)
}

func TestListOrders_InvalidStatusRejected(t *testing.T) {
	svc := &fakeService{}

	w := doList(svc, "?status=UNKNOWN")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.called)
}

package changestatus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
	"github.com/stxcorp/orders-ms/internal/transport/http/apierr"
)

type fakeService struct {
	ord       order.Order
	err       error
	gotID     string
	gotStatus order.Status
	called    bool
}

func (f *fakeService) ChangeStatus(_ context.Context, id string, status order.Status) (order.Order, error) {
	f.called = true
	f.gotID = id
	f.gotStatus = status

	return f.ord, f.err
}

func doChangeStatus(svc service, orderID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(
		http.MethodPatch,
		"/api/v1/orders/"+orderID+"/status",
		strings.NewReader(body),
	)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderID", orderID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	ChangeStatus(w, req, svc)

	return w
}

func TestChangeStatus_Success(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeService{ord: order.Order{ID: id, Status: order.StatusPaid}}

	w := doChangeStatus(svc, id, `{"status":"PAID"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.gotID)
	assert.Equal(t, order.StatusPaid, svc.gotStatus)

	var resp order.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, order.StatusPaid, resp.Status)
}

func TestChangeStatus_InvalidUUIDRejected(t *testing.T) {
	svc := &fakeService{}

	w := doChangeStatus(svc, "not-a-uuid", `{"status":"PAID"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.called)
}

func TestChangeStatus_InvalidStatusListsValidOnes(t *testing.T) {
	svc := &fakeService{}

	w := doChangeStatus(svc, uuid.NewString(), `{"status":"SHIPPED"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.called)

	var resp apierr.Error
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Message, "SHIPPED")
	assert.Contains(t, resp.Message, "PENDING")
}

func TestChangeStatus_NotFoundNamesID(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeService{
		err: fmt.Errorf("order with id %s: %w", id, order.ErrOrderNotFound),
	}

	w := doChangeStatus(svc, id, `{"status":"PAID"}`)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp apierr.Error
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Contains(t, resp.Message, id)
}

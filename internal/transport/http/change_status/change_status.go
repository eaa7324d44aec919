package changestatus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
	"github.com/stxcorp/orders-ms/internal/transport/http/apierr"
)

type service interface {
	ChangeStatus(ctx context.Context, id string, status order.Status) (order.Order, error)
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeStatus handles the change order status request.
func ChangeStatus(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "orderID")
	if _, err := uuid.Parse(orderID); err != nil {
		apierr.Write(w, http.StatusBadRequest, "order id must be a valid UUID")
		slog.Error("Error parsing order id", "order_id", orderID, "error", err)

		return
	}

	req := changeStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, http.StatusBadRequest, "failed to decode request body")
		slog.Error("Error decoding request body for change status", "error", err)

		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		apierr.Write(
			w,
			http.StatusBadRequest,
			fmt.Sprintf("invalid status %q, valid statuses are %v", req.Status, order.Statuses()),
		)
		slog.Error("Error parsing status for change status", "status", req.Status, "error", err)

		return
	}

	ord, err := service.ChangeStatus(r.Context(), orderID, status)
	if err != nil {
		apierr.WriteError(w, err)
		slog.Error("Error changing order status", "order_id", orderID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ord); err != nil {
		slog.Error("Error sending response for change status", "error", err)
	}
}

package getorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
	"github.com/stxcorp/orders-ms/internal/transport/http/apierr"
)

type service interface {
	GetOrder(ctx context.Context, id string) (order.Order, error)
}

// GetOrder handles the get order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "orderID")
	if _, err := uuid.Parse(orderID); err != nil {
		apierr.Write(w, http.StatusBadRequest, "order id must be a valid UUID")
		slog.Error("Error parsing order id", "order_id", orderID, "error", err)

		return
	}

	ord, err := service.GetOrder(r.Context(), orderID)
	if err != nil {
		apierr.WriteError(w, err)
		slog.Error("Error getting order", "order_id", orderID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ord); err != nil {
		slog.Error("Error sending response for get order", "error", err)
	}
}

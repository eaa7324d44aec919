package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
	"github.com/stxcorp/orders-ms/internal/transport/http/apierr"
)

type service interface {
	GetOrders(ctx context.Context, pagination order.PaginationModel) ([]order.Order, order.PageMeta, error)
}

type listOrdersRequest struct {
	Page   int    `schema:"page,omitempty"`
	Limit  int    `schema:"limit,omitempty"`
	Status string `schema:"status,omitempty"`
}

func (q *listOrdersRequest) toModel() (order.PaginationModel, error) {
	pagination := order.PaginationModel{
		Page:  q.Page,
		Limit: q.Limit,
	}

	if q.Status != "" {
		status, err := order.ParseStatus(q.Status)
		if err != nil {
			return order.PaginationModel{}, err
		}
		pagination.Status = status
	}

	return pagination, nil
}

type listOrdersResponse struct {
	Data []order.Order  `json:"data"`
	Meta order.PageMeta `json:"meta"`
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		apierr.Write(w, http.StatusBadRequest, "failed to decode query parameters")
		slog.Error("Error decoding request for list orders", "error", err)

		return
	}

	pagination, err := query.toModel()
	if err != nil {
		apierr.WriteError(w, err)
		slog.Error("Error parsing status filter for list orders", "error", err)

		return
	}

	orders, meta, err := service.GetOrders(r.Context(), pagination)
	if err != nil {
		apierr.WriteError(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(listOrdersResponse{Data: orders, Meta: meta}); err != nil {
		slog.Error("Error sending response for list orders", "error", err)
	}
}

package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
	"github.com/stxcorp/orders-ms/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, model order.NewOrderModel) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int   `json:"quantity"  validate:"gt=0"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	Items []itemInCreateOrderRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to order.NewOrderModel.
func (r *createOrderRequest) toModel() order.NewOrderModel {
	items := make([]order.NewOrderItemModel, len(r.Items))
	for i, item := range r.Items {
		items[i] = order.NewOrderItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return order.NewOrderModel{Items: items}
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderReq := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		apierr.Write(w, http.StatusBadRequest, "failed to decode request body")
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := orderReq.Validate(); err != nil {
		apierr.Write(w, http.StatusBadRequest, err.Error())
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	createdOrder, err := service.Create(r.Context(), orderReq.toModel())
	if err != nil {
		apierr.WriteError(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(createdOrder); err != nil {
		slog.Error("Error sending response for create order", "error", err)
	}
}

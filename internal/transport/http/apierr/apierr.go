package apierr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stxcorp/orders-ms/internal/service/models/order"
)

// Error is the JSON error envelope returned to RPC callers. It carries a
// status classification and a human-readable message, never internal detail.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Write sends the error envelope with the given status code.
func Write(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(Error{Status: status, Message: message}); err != nil {
		slog.Error("Error writing error response", "error", err)
	}
}

// WriteError translates a service layer error into an error envelope.
// Creation failures deliberately collapse to one generic message; the real
// cause is only in server-side logs.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		Write(w, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrCreateFailed):
		Write(w, http.StatusBadRequest, order.ErrCreateFailed.Error()+", check logs")
	case errors.Is(err, order.ErrEmptyOrder), errors.Is(err, order.ErrInvalidStatus):
		Write(w, http.StatusBadRequest, err.Error())
	default:
		Write(w, http.StatusInternalServerError, "internal server error")
	}
}

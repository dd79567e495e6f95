package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"kitchenpos/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps the service error kinds onto HTTP statuses: missing
// entities are 404, illegal transitions are 409, everything else the caller
// sent is 400, and unknown failures are 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrIllegalState):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidLineItems),
		errors.Is(err, domain.ErrAmountExceeded),
		errors.Is(err, domain.ErrProfaneName):
		status = http.StatusBadRequest
	}
	respondJSON(w, status, ErrorResponse{Error: err.Error()})
}

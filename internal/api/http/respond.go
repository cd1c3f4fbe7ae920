package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/security"
	"equiprent-backend/internal/service"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps service and ledger failures onto HTTP status codes. The
// typed domain errors carry enough detail for the client message; everything
// unrecognized is a 500 with the detail kept in the server log only.
func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

func statusForError(err error) int {
	var (
		validation  *domain.ValidationError
		adjustment  *domain.InvalidAdjustmentError
		notFound    *domain.NotFoundError
		stock       *domain.InsufficientStockError
		unavailable *domain.EquipmentUnavailableError
		state       *domain.InvalidStateError
		referenced  *domain.ReferencedByActiveOrderError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &adjustment):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &stock), errors.As(err, &unavailable),
		errors.As(err, &state), errors.As(err, &referenced):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domain.ValidationError{Field: "body", Msg: "malformed JSON payload"}
	}
	return nil
}

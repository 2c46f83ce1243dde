package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
)

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondStatus(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, StatusResponse{Status: msg})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError) {
	RespondJSON(w, appErr.Status, ErrorResponse{Error: appErr.Message})
}

// RespondDomainError maps a domain error to its client-facing response.
// Anything unclassified becomes the generic 500.
func RespondDomainError(w http.ResponseWriter, err error) {
	var appErr *AppError

	switch {
	case errors.Is(err, domain.ErrInvalidSignature):
		appErr = ErrInvalidSignature
	case errors.Is(err, domain.ErrInvalidPayload):
		appErr = ErrInvalidPayload
	default:
		appErr = ErrInternalError
	}

	RespondAppError(w, appErr)
}

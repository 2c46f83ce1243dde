package handler

import "net/http"

type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidSignature = &AppError{http.StatusBadRequest, "Invalid signature"}
	ErrInvalidPayload   = &AppError{http.StatusBadRequest, "Invalid webhook payload"}
	ErrPayloadTooLarge  = &AppError{http.StatusRequestEntityTooLarge, "Payload too large"}
	ErrMissingFields    = &AppError{http.StatusBadRequest, "Missing required fields"}
	ErrInitiateFailed   = &AppError{http.StatusInternalServerError, "Could not initiate payment"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "Internal Server Error"}
)

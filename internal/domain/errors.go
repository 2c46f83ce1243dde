package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrInvalidPayload     = errors.New("invalid webhook payload")
	ErrRecordUpdateFailed = errors.New("record update failed")
	ErrPublishFailed      = errors.New("publish failed")
	ErrNotConnected       = errors.New("publisher not connected")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/logging"
)

type orderCreator interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
}

type PaymentHandler struct {
	orders orderCreator
}

func NewPaymentHandler(orders orderCreator) *PaymentHandler {
	return &PaymentHandler{orders: orders}
}

type initiatePaymentRequest struct {
	Amount   decimal.NullDecimal `json:"amount"`
	Currency string              `json:"currency"`
	Receipt  string              `json:"receipt"`
	UserID   string              `json:"userId"`
}

func (r initiatePaymentRequest) valid() bool {
	return r.Amount.Valid && r.Amount.Decimal.IsPositive() &&
		strings.TrimSpace(r.Receipt) != "" &&
		strings.TrimSpace(r.UserID) != ""
}

type initiatePaymentResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	var req initiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode initiate request", "error", err)
		RespondAppError(w, ErrMissingFields)
		return
	}
	if !req.valid() {
		RespondAppError(w, ErrMissingFields)
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	order, err := h.orders.CreateOrder(r.Context(), domain.OrderRequest{
		UserID:   req.UserID,
		Amount:   req.Amount.Decimal,
		Currency: currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		log.Error("failed to create gateway order", "error", err, "user_id", req.UserID)
		RespondAppError(w, ErrInitiateFailed)
		return
	}

	RespondJSON(w, http.StatusCreated, initiatePaymentResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
	})
}

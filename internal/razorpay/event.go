package razorpay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
)

const (
	EventPaymentCaptured   = "payment.captured"
	EventPaymentAuthorized = "payment.authorized"
	EventPaymentFailed     = "payment.failed"
)

const noteUserID = "user_id"

type WebhookEvent struct {
	Entity    string         `json:"entity"`
	AccountID string         `json:"account_id"`
	Event     string         `json:"event"`
	Contains  []string       `json:"contains"`
	Payload   WebhookPayload `json:"payload"`
	CreatedAt int64          `json:"created_at"`
}

type WebhookPayload struct {
	Payment PayloadPayment `json:"payment"`
}

type PayloadPayment struct {
	Entity Payment `json:"entity"`
}

type Payment struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	OrderID  string `json:"order_id"`
	Method   string `json:"method"`
	Notes    Notes  `json:"notes"`
}

// Notes holds the free-form notes attached to a payment. The gateway sends
// an empty array instead of an empty object when there are none.
type Notes map[string]any

func (n *Notes) UnmarshalJSON(data []byte) error {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err == nil {
		*n = m
		return nil
	}
	var arr []any
	if err := json.Unmarshal(data, &arr); err == nil {
		*n = Notes{}
		return nil
	}
	return fmt.Errorf("notes must be an object or an array")
}

// String returns the note under key as text. Numbers keep their JSON
// spelling and true becomes "true". Zero, false, null, objects and arrays
// read as absent.
func (n Notes) String(key string) string {
	switch v := n[key].(type) {
	case string:
		return v
	case json.Number:
		if f, err := strconv.ParseFloat(v.String(), 64); err == nil && f == 0 {
			return ""
		}
		return v.String()
	case bool:
		if v {
			return "true"
		}
	}
	return ""
}

// ParseEvent decodes a raw webhook body. Missing levels of the payload decode
// to their zero values; only a body that is not a JSON object is rejected.
func ParseEvent(raw []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("ParseEvent: %w: %v", domain.ErrInvalidPayload, err)
	}
	return &event, nil
}

// Extract builds the normalized event from a parsed webhook. It fails with
// domain.ErrInvalidPayload when the payment id or the user id note is absent.
func Extract(event *WebhookEvent, receivedAt time.Time) (domain.PaymentSuccessEvent, error) {
	if event == nil {
		return domain.PaymentSuccessEvent{}, fmt.Errorf("Extract: %w", domain.ErrInvalidPayload)
	}

	entity := event.Payload.Payment.Entity
	userID := entity.Notes.String(noteUserID)
	if entity.ID == "" || userID == "" {
		return domain.PaymentSuccessEvent{}, fmt.Errorf("Extract: %w", domain.ErrInvalidPayload)
	}

	return domain.PaymentSuccessEvent{
		UserID:     userID,
		PaymentID:  entity.ID,
		EventType:  event.Event,
		ReceivedAt: receivedAt.UTC(),
	}, nil
}

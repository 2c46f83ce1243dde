package domain

import "time"

// PaymentSuccessEvent is the normalized record relayed to the queue for every
// verified payment webhook.
type PaymentSuccessEvent struct {
	UserID     string    `json:"userId"`
	PaymentID  string    `json:"paymentId"`
	EventType  string    `json:"eventType"`
	ReceivedAt time.Time `json:"receivedAt"`
}

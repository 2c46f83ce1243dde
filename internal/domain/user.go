package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
)

type PaymentEntry struct {
	PaymentID string        `json:"paymentId"`
	Status    PaymentStatus `json:"status"`
	Date      time.Time     `json:"date"`
}

type UserRecord struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Payments []PaymentEntry `json:"payments"`
}

// Clone returns a copy whose Payments slice does not alias the receiver's.
func (u *UserRecord) Clone() *UserRecord {
	c := *u
	c.Payments = append([]PaymentEntry(nil), u.Payments...)
	return &c
}

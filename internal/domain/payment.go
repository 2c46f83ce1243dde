package domain

import "github.com/shopspring/decimal"

const DefaultCurrency = "INR"

type OrderRequest struct {
	UserID   string
	Amount   decimal.Decimal
	Currency string
	Receipt  string
}

// AmountMinor is the amount in the currency's smallest unit (paise for INR).
func (r OrderRequest) AmountMinor() int64 {
	return r.Amount.Shift(2).Round(0).IntPart()
}

type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

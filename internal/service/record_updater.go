package service

import (
	"context"
	"fmt"
	"time"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/logging"
)

type userStore interface {
	AddPayment(ctx context.Context, userID string, p domain.PaymentEntry) error
}

// RecordUpdater applies payment outcomes to user records.
type RecordUpdater struct {
	users userStore
	now   func() time.Time
}

func NewRecordUpdater(users userStore) *RecordUpdater {
	return &RecordUpdater{users: users, now: time.Now}
}

// MarkPaymentSuccess appends a successful payment to the user's history.
// The store reports an unknown user as domain.ErrNotFound. Every failure
// wraps domain.ErrRecordUpdateFailed.
func (u *RecordUpdater) MarkPaymentSuccess(ctx context.Context, userID, paymentID string) error {
	entry := domain.PaymentEntry{
		PaymentID: paymentID,
		Status:    domain.PaymentStatusSuccess,
		Date:      u.now().UTC(),
	}
	if err := u.users.AddPayment(ctx, userID, entry); err != nil {
		return fmt.Errorf("MarkPaymentSuccess: %w: %w", domain.ErrRecordUpdateFailed, err)
	}

	logging.FromContext(ctx).Info("payment marked successful", "user_id", userID, "payment_id", paymentID)
	return nil
}

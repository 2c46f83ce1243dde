package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/repository"
)

type failingStore struct {
	*repository.MemoryUserRepository
	addErr error
}

func (f *failingStore) AddPayment(context.Context, string, domain.PaymentEntry) error {
	return f.addErr
}

// appendOnlyStore has no read path, so MarkPaymentSuccess must not need one.
type appendOnlyStore struct {
	userIDs []string
	entries []domain.PaymentEntry
}

func (s *appendOnlyStore) AddPayment(_ context.Context, userID string, p domain.PaymentEntry) error {
	s.userIDs = append(s.userIDs, userID)
	s.entries = append(s.entries, p)
	return nil
}

func TestMarkPaymentSuccess_SingleWrite(t *testing.T) {
	store := &appendOnlyStore{}
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

	u := NewRecordUpdater(store)
	u.now = func() time.Time { return fixed }

	require.NoError(t, u.MarkPaymentSuccess(context.Background(), "user_2", "pay_abc"))

	assert.Equal(t, []string{"user_2"}, store.userIDs)
	require.Len(t, store.entries, 1)
	assert.Equal(t, "pay_abc", store.entries[0].PaymentID)
	assert.Equal(t, domain.PaymentStatusSuccess, store.entries[0].Status)
	assert.Equal(t, time.UTC, store.entries[0].Date.Location())
	assert.True(t, fixed.Equal(store.entries[0].Date))
}

func TestMarkPaymentSuccess(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository(repository.DemoUsers()...)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	u := NewRecordUpdater(users)
	u.now = func() time.Time { return fixed }

	require.NoError(t, u.MarkPaymentSuccess(ctx, "user_1", "pay_test123"))

	rec, err := users.GetByID(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, rec.Payments, 1)
	assert.Equal(t, domain.PaymentEntry{
		PaymentID: "pay_test123",
		Status:    domain.PaymentStatusSuccess,
		Date:      fixed,
	}, rec.Payments[0])
}

func TestMarkPaymentSuccess_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		u := NewRecordUpdater(repository.NewMemoryUserRepository(repository.DemoUsers()...))
		err := u.MarkPaymentSuccess(ctx, "ghost", "pay_1")
		assert.ErrorIs(t, err, domain.ErrRecordUpdateFailed)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("store write fails", func(t *testing.T) {
		writeErr := errors.New("disk full")
		store := &failingStore{
			MemoryUserRepository: repository.NewMemoryUserRepository(repository.DemoUsers()...),
			addErr:               writeErr,
		}
		u := NewRecordUpdater(store)
		err := u.MarkPaymentSuccess(ctx, "user_1", "pay_1")
		assert.ErrorIs(t, err, domain.ErrRecordUpdateFailed)
		assert.ErrorIs(t, err, writeErr)
	})
}

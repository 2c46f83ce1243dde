package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/repository"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/testutil"
)

func TestUserRepository_Postgres(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user_pg", "Carol")
	paidAt := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	t.Run("seeded demo user exists", func(t *testing.T) {
		u, err := repo.GetByID(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", u.Name)
	})

	t.Run("payments keep insertion order", func(t *testing.T) {
		require.NoError(t, repo.AddPayment(ctx, "user_pg", domain.PaymentEntry{PaymentID: "pay_a", Status: domain.PaymentStatusSuccess, Date: paidAt}))
		require.NoError(t, repo.AddPayment(ctx, "user_pg", domain.PaymentEntry{PaymentID: "pay_b", Status: domain.PaymentStatusSuccess, Date: paidAt}))

		u, err := repo.GetByID(ctx, "user_pg")
		require.NoError(t, err)
		require.Len(t, u.Payments, 2)
		assert.Equal(t, "pay_a", u.Payments[0].PaymentID)
		assert.Equal(t, "pay_b", u.Payments[1].PaymentID)
		assert.Equal(t, domain.PaymentStatusSuccess, u.Payments[0].Status)
		assert.True(t, paidAt.Equal(u.Payments[0].Date))
		assert.Equal(t, 2, testutil.CountPayments(t, db, "user_pg"))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = repo.AddPayment(ctx, "ghost", domain.PaymentEntry{PaymentID: "pay_x", Status: domain.PaymentStatusSuccess, Date: paidAt})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, 0, testutil.CountPayments(t, db, "ghost"))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}

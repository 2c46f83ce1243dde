package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
)

func TestMemoryUserRepository_AddPayment(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(DemoUsers()...)
	now := time.Now().UTC()

	require.NoError(t, repo.AddPayment(ctx, "user_1", domain.PaymentEntry{PaymentID: "pay_1", Status: domain.PaymentStatusSuccess, Date: now}))
	require.NoError(t, repo.AddPayment(ctx, "user_1", domain.PaymentEntry{PaymentID: "pay_2", Status: domain.PaymentStatusSuccess, Date: now}))

	u, err := repo.GetByID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	require.Len(t, u.Payments, 2)
	assert.Equal(t, "pay_1", u.Payments[0].PaymentID)
	assert.Equal(t, "pay_2", u.Payments[1].PaymentID)

	other, err := repo.GetByID(ctx, "user_2")
	require.NoError(t, err)
	assert.Empty(t, other.Payments)
}

func TestMemoryUserRepository_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(DemoUsers()...)

	_, err := repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.AddPayment(ctx, "ghost", domain.PaymentEntry{PaymentID: "pay_1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(DemoUsers()...)

	u, err := repo.GetByID(ctx, "user_1")
	require.NoError(t, err)
	u.Name = "Mallory"
	u.Payments = append(u.Payments, domain.PaymentEntry{PaymentID: "forged"})

	again, err := repo.GetByID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
	assert.Empty(t, again.Payments)
}

func TestMemoryUserRepository_ConcurrentAddPayment(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(DemoUsers()...)

	const n = 100
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.AddPayment(ctx, "user_1", domain.PaymentEntry{PaymentID: fmt.Sprintf("pay_%d", i)})
			_, _ = repo.GetByID(ctx, "user_1")
		}()
	}
	wg.Wait()

	u, err := repo.GetByID(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, u.Payments, n)
}

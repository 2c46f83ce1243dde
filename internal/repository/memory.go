package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
)

// MemoryUserRepository keeps user records in process memory. It is safe for
// concurrent use and never hands out references to its internal records.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.UserRecord
}

func NewMemoryUserRepository(seed ...domain.UserRecord) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]*domain.UserRecord, len(seed))}
	for i := range seed {
		r.users[seed[i].ID] = seed[i].Clone()
	}
	return r
}

// DemoUsers are the records the in-memory store starts with when no
// database is configured.
func DemoUsers() []domain.UserRecord {
	return []domain.UserRecord{
		{ID: "user_1", Name: "Alice", Payments: []domain.PaymentEntry{}},
		{ID: "user_2", Name: "Bob", Payments: []domain.PaymentEntry{}},
	}
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*domain.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
	}
	return u.Clone(), nil
}

func (r *MemoryUserRepository) AddPayment(_ context.Context, userID string, p domain.PaymentEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("AddPayment: user %s: %w", userID, domain.ErrNotFound)
	}
	u.Payments = append(u.Payments, p)
	return nil
}

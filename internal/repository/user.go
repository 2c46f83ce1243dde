package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	u := domain.UserRecord{Payments: []domain.PaymentEntry{}}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM users WHERE id = $1`, id).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT payment_id, status, paid_at FROM user_payments WHERE user_id = $1 ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByID: payments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.PaymentEntry
		if err := rows.Scan(&p.PaymentID, &p.Status, &p.Date); err != nil {
			return nil, fmt.Errorf("GetByID: scan payment: %w", err)
		}
		u.Payments = append(u.Payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByID: payments: %w", err)
	}
	return &u, nil
}

// AddPayment appends a payment to the user's history. The insert selects
// from users so an unknown user affects no rows instead of violating the
// foreign key.
func (r *UserRepository) AddPayment(ctx context.Context, userID string, p domain.PaymentEntry) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_payments (user_id, payment_id, status, paid_at)
		 SELECT id, $2, $3, $4 FROM users WHERE id = $1`,
		userID, p.PaymentID, p.Status, p.Date,
	)
	if err != nil {
		return fmt.Errorf("AddPayment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("AddPayment: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("AddPayment: user %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

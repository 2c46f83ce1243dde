package testutil

import (
	"database/sql"
	"testing"
)

func SeedUser(t *testing.T, db *sql.DB, id, name string) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO users (id, name) VALUES ($1, $2)`, id, name)
	if err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func CountPayments(t *testing.T, db *sql.DB, userID string) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM user_payments WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		t.Fatalf("count payments for user %s: %v", userID, err)
	}
	return count
}

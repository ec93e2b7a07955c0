package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/masar-app/masar/internal/types"
)

// CreateUser inserts a new account and returns its ID
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil when not found.
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, plan, subscription_active, subscription_ends, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Plan, &u.SubscriptionActive, &u.SubscriptionEnds, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, plan, subscription_active, subscription_ends, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Plan, &u.SubscriptionActive, &u.SubscriptionEnds, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// CheckEmailExists reports whether an account with this email exists
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword replaces a user's password hash
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// UpgradePlan activates a paid plan for a user in one transaction: the
// plan fields switch and a billing record is written, or neither happens.
func (db *DB) UpgradePlan(ctx context.Context, userID uuid.UUID, plan types.Plan, paymentRef string, ends time.Time) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin upgrade: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE users SET plan = $1, subscription_active = TRUE, subscription_ends = $2, updated_at = NOW()
		 WHERE id = $3`,
		plan, ends, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to upgrade plan: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO billing_transactions (user_id, payment_ref, plan, amount)
		 VALUES ($1, $2, $3, $4)`,
		userID, paymentRef, plan, plan.Price(),
	)
	if err != nil {
		return fmt.Errorf("failed to record billing transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit upgrade: %w", err)
	}
	return nil
}

// ListBillingTransactions retrieves a user's payment history, newest first
func (db *DB) ListBillingTransactions(ctx context.Context, userID uuid.UUID) ([]BillingTransaction, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, payment_ref, plan, amount, created_at
		 FROM billing_transactions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing transactions: %w", err)
	}
	defer rows.Close()

	var txns []BillingTransaction
	for rows.Next() {
		var t BillingTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.PaymentRef, &t.Plan, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan billing transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

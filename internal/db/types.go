package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/masar-app/masar/internal/types"
)

// User is an account row
type User struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"` // Never serialize to JSON
	Plan               types.Plan `json:"plan"`
	SubscriptionActive bool       `json:"subscription_active"`
	SubscriptionEnds   *time.Time `json:"subscription_ends,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CVDocument is the stored draft for a user, one per account
type CVDocument struct {
	UserID    uuid.UUID      `json:"user_id"`
	Content   types.CVRecord `json:"content"`
	ShareSlug string         `json:"share_slug,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BillingTransaction is a committed payment record
type BillingTransaction struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	PaymentRef string     `json:"payment_ref"`
	Plan       types.Plan `json:"plan"`
	Amount     int        `json:"amount"`
	CreatedAt  time.Time  `json:"created_at"`
}

// JobApplication tracks one application a user is pursuing
type JobApplication struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Company   string    `json:"company"`
	RoleTitle string    `json:"role_title"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Application status values
const (
	ApplicationApplied   = "applied"
	ApplicationInterview = "interview"
	ApplicationOffer     = "offer"
	ApplicationRejected  = "rejected"
)

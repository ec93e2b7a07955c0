package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Plan is a subscription tier.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanBasic      Plan = "basic"
	PlanPro        Plan = "pro"
	PlanGuaranteed Plan = "guaranteed"
)

// Valid reports whether the plan is one of the known tiers.
func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPro, PlanGuaranteed:
		return true
	}
	return false
}

// Price returns the plan's monthly price in SAR. Free is zero.
func (p Plan) Price() int {
	switch p {
	case PlanBasic:
		return 29
	case PlanPro:
		return 49
	case PlanGuaranteed:
		return 199
	}
	return 0
}

// BillingTransaction is one entry in a user's billing history.
type BillingTransaction struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Amount int       `json:"amount"`
	Plan   Plan      `json:"plan"`
	Status string    `json:"status"` // paid | failed | pending
}

// User is the authenticated profile persisted to durable storage.
type User struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Email              string               `json:"email"`
	Plan               Plan                 `json:"plan"`
	SubscriptionActive bool                 `json:"subscriptionActive"`
	SubscriptionEnds   *time.Time           `json:"subscriptionEnds,omitempty"`
	BillingHistory     []BillingTransaction `json:"billingHistory"`
	CreatedAt          time.Time            `json:"createdAt"`
}

// RegisterRequest is the request to create a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the user profile and the session token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

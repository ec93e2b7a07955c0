// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/masar-app/masar/internal/config"
	"github.com/masar-app/masar/internal/db"
	"github.com/masar-app/masar/internal/types"
)

// UserStore is the account persistence surface the user service needs.
// *db.DB satisfies it; tests substitute an in-memory implementation.
type UserStore interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	UpgradePlan(ctx context.Context, userID uuid.UUID, plan types.Plan, paymentRef string, ends time.Time) error
	ListBillingTransactions(ctx context.Context, userID uuid.UUID) ([]db.BillingTransaction, error)
}

// UserService provides business logic for account operations
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// convertDBUser converts db.User to types.User, excluding the password hash
func convertDBUser(dbUser *db.User) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:                 dbUser.ID.String(),
		Name:               dbUser.Name,
		Email:              dbUser.Email,
		Plan:               dbUser.Plan,
		SubscriptionActive: dbUser.SubscriptionActive,
		SubscriptionEnds:   dbUser.SubscriptionEnds,
		BillingHistory:     []types.BillingTransaction{},
		CreatedAt:          dbUser.CreatedAt,
	}
}

// Register creates a new account with password authentication
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	exists, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.store.CreateUser(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	dbUser, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	return convertDBUser(dbUser), nil
}

// Login authenticates a user and returns the profile
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: same generic error whether the account or password is wrong
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return convertDBUser(dbUser), nil
}

// Profile returns the user's profile with billing history attached
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	dbUser, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}

	user := convertDBUser(dbUser)

	txns, err := s.store.ListBillingTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing history: %w", err)
	}
	for _, t := range txns {
		user.BillingHistory = append(user.BillingHistory, types.BillingTransaction{
			ID:     t.ID.String(),
			Date:   t.CreatedAt,
			Amount: t.Amount,
			Plan:   t.Plan,
			Status: "paid",
		})
	}

	return user, nil
}

// Upgrade commits a verified payment: the plan switches and the billing
// record is written atomically.
func (s *UserService) Upgrade(ctx context.Context, userID uuid.UUID, plan types.Plan, paymentRef string, ends time.Time) (*types.User, error) {
	if err := s.store.UpgradePlan(ctx, userID, plan, paymentRef, ends); err != nil {
		return nil, fmt.Errorf("failed to upgrade plan: %w", err)
	}
	return s.Profile(ctx, userID)
}

package account

import (
	"context"
	"fmt"

	"github.com/nerrad567/telemetry-core/internal/infrastructure/database"
	"github.com/nerrad567/telemetry-core/internal/infrastructure/logging"
	"github.com/nerrad567/telemetry-core/internal/telemetry"
)

// Default device values assigned at registration.
const (
	defaultDevicePlace = "Not specified"
)

// Service implements account registration and login.
//
// It holds the database handle rather than a bound repository because
// registration spans two tables (users + microcontrollers) and must run in
// one transaction: a user without their default device must never be visible.
type Service struct {
	db     *database.DB
	logger *logging.Logger
}

// NewService creates an account service backed by db.
func NewService(db *database.DB, logger *logging.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With("component", "account"),
	}
}

// Register creates a new user plus their default microcontroller, named
// "<username>'s MCU" at place "Not specified".
//
// Validation happens before any write: empty username, password, or email
// returns ErrValidation with no partial state. A taken username returns
// ErrUsernameExists, detected via the store's UNIQUE constraint inside the
// transaction.
//
// Returns the new user's id.
func (s *Service) Register(ctx context.Context, username, password, email string) (string, error) {
	if username == "" || password == "" || email == "" {
		return "", ErrValidation
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := NewUserRepository(tx).Create(ctx, user); err != nil {
		return "", err
	}

	device := &telemetry.Device{
		Name:    username + "'s MCU",
		Place:   defaultDevicePlace,
		OwnerID: user.ID,
	}
	if err := telemetry.NewDeviceRepository(tx).Create(ctx, device); err != nil {
		return "", fmt.Errorf("creating default device: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing registration: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", username, "mcu_id", device.ID)

	return user.ID, nil
}

// Login verifies a username/password pair and returns the user's id.
//
// An unknown username returns ErrUserNotFound; a hash mismatch returns
// ErrBadCredentials. No session or token is issued - the caller must treat
// the returned id as untrusted client input on subsequent requests.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := NewUserRepository(s.db).GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return "", ErrBadCredentials
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", username)

	return user.ID, nil
}

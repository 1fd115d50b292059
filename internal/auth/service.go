package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fitness-fanatics/fitness-api/internal/crypto"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
	"github.com/fitness-fanatics/fitness-api/internal/user"
)

// ErrInvalidCredentials deliberately does not say whether the email or
// the password was wrong once an account exists.
var ErrInvalidCredentials = errors.New("e-mail address or password is incorrect")

// UserStore is the slice of the user repository the flows need.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Create(ctx context.Context, firstName, lastName, email, passwordHash string) (*user.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// EmailService dispatches the out-of-band activation and reset mails.
type EmailService interface {
	SendActivationEmail(ctx context.Context, toEmail, token string) error
	SendPasswordResetEmail(ctx context.Context, toEmail string, userID uuid.UUID, token string) error
}

// Service implements the credential lifecycle: registration, account
// activation, login and password reset.
type Service struct {
	users  UserStore
	tokens *TokenService
	email  EmailService
	logger *logging.Logger
}

func NewService(users UserStore, tokens *TokenService, email EmailService, logger *logging.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		email:  email,
		logger: logger,
	}
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// Register validates the input, stages the whole registration payload
// (password already hashed) inside an activation token and mails the
// activation link. No user row is written here: registration proves
// email deliverability, activation persists.
func (s *Service) Register(ctx context.Context, firstName, lastName, email, password string) error {
	if err := validateRegistration(firstName, lastName, email, password); err != nil {
		return err
	}

	// Advisory pre-check so the caller gets a conflict before any mail
	// is sent; the unique index remains the authority at insert time.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return user.ErrDuplicateEmail
	} else if !errors.Is(err, user.ErrNotFound) {
		return fmt.Errorf("failed to check existing email: %w", err)
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := s.tokens.IssueActivation(ActivationClaims{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return fmt.Errorf("failed to issue activation token: %w", err)
	}

	// Dispatch is synchronous: a 200 from this flow means the mail
	// left the building. Failures are internal errors, not retried.
	if err := s.email.SendActivationEmail(ctx, email, token); err != nil {
		return fmt.Errorf("failed to send activation email: %w", err)
	}

	return nil
}

// Activate verifies the activation token and persists the user record
// carried in its claims. Activating an already-activated registration
// yields a duplicate-email conflict from the store.
func (s *Service) Activate(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.tokens.VerifyActivation(token)
	if err != nil {
		return nil, err
	}

	// Re-check at activation time. A concurrent activation can still
	// slip between this read and the insert; the unique index decides
	// the race and Create reports it as the same conflict.
	if _, err := s.users.GetByEmail(ctx, claims.Email); err == nil {
		return nil, user.ErrDuplicateEmail
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	newUser, err := s.users.Create(ctx, claims.FirstName, claims.LastName, claims.Email, claims.PasswordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login verifies credentials and mints a session token carrying the
// user's identity.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := validateLogin(email, password); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !crypto.VerifyPassword(password, existing.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(SessionClaims{
		UserID:    existing.ID,
		FirstName: existing.FirstName,
		LastName:  existing.LastName,
		Email:     existing.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ID:        existing.ID,
		FirstName: existing.FirstName,
		LastName:  existing.LastName,
		Email:     existing.Email,
	}, nil
}

// RequestPasswordReset mints a short-lived reset token for a
// registered email and mails the reset link. Unregistered addresses
// get a not-found outcome.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	token, err := s.tokens.IssuePasswordReset(existing.Email)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	if err := s.email.SendPasswordResetEmail(ctx, existing.Email, existing.ID, token); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

// ResetPassword verifies the reset token and overwrites the user's
// password hash with a freshly salted one.
func (s *Service) ResetPassword(ctx context.Context, userID uuid.UUID, token, newPassword string) error {
	if err := validateNewPassword(newPassword); err != nil {
		return err
	}

	if _, err := s.tokens.VerifyPasswordReset(token); err != nil {
		return err
	}

	passwordHash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

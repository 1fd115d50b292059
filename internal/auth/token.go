package auth

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every terminal token failure: bad key, wrong
// kind, malformed payload, or elapsed validity window. There is no
// refresh path; the caller starts the flow over.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenKind discriminates the three token families. Session and
// password-reset tokens share a key, so the kind claim is what keeps a
// reset token from authenticating a request.
type TokenKind string

const (
	KindSession       TokenKind = "session"
	KindActivation    TokenKind = "activation"
	KindPasswordReset TokenKind = "password_reset"
)

// SessionClaims is the identity payload carried by a session token.
type SessionClaims struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Email     string
}

// ActivationClaims stages the whole pending registration inside the
// token; nothing is persisted until the token comes back.
type ActivationClaims struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// ResetClaims is the payload of a password-reset token.
type ResetClaims struct {
	Email string
}

// TokenService mints and verifies PASETO v4.local tokens. Activation
// tokens use a dedicated key; session and reset tokens share the auth
// key. Tokens are never stored server-side: validity is entirely a
// function of key, kind and expiry at verification time.
type TokenService struct {
	activationKey paseto.V4SymmetricKey
	authKey       paseto.V4SymmetricKey
	ttl           time.Duration
	now           func() time.Time
}

func NewTokenService(activationKey, authKey []byte, ttl time.Duration) (*TokenService, error) {
	if len(activationKey) != 32 {
		return nil, fmt.Errorf("activation key must be exactly 32 bytes, got %d", len(activationKey))
	}
	if len(authKey) != 32 {
		return nil, fmt.Errorf("auth key must be exactly 32 bytes, got %d", len(authKey))
	}

	ak, err := paseto.V4SymmetricKeyFromBytes(activationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create activation key: %w", err)
	}
	sk, err := paseto.V4SymmetricKeyFromBytes(authKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth key: %w", err)
	}

	return &TokenService{
		activationKey: ak,
		authKey:       sk,
		ttl:           ttl,
		now:           time.Now,
	}, nil
}

// IssueSession mints a session token with identity claims and no
// expiry, matching the credential contract the SPA was built against.
func (s *TokenService) IssueSession(claims SessionClaims) (string, error) {
	token, err := paseto.MakeToken(map[string]any{
		"kind":       string(KindSession),
		"user_id":    claims.UserID.String(),
		"first_name": claims.FirstName,
		"last_name":  claims.LastName,
		"email":      claims.Email,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build session token: %w", err)
	}
	token.SetIssuedAt(s.now())

	return token.V4Encrypt(s.authKey, nil), nil
}

// VerifySession validates a session token and returns its claims.
func (s *TokenService) VerifySession(tokenStr string) (*SessionClaims, error) {
	// Session tokens carry no expiry, so the parser must not demand one.
	parser := paseto.NewParserWithoutExpiryCheck()

	token, err := parser.ParseV4Local(s.authKey, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if kind, err := token.GetString("kind"); err != nil || TokenKind(kind) != KindSession {
		return nil, ErrInvalidToken
	}

	userIDStr, err := token.GetString("user_id")
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	firstName, err := token.GetString("first_name")
	if err != nil {
		return nil, ErrInvalidToken
	}
	lastName, err := token.GetString("last_name")
	if err != nil {
		return nil, ErrInvalidToken
	}
	email, err := token.GetString("email")
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &SessionClaims{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}, nil
}

// IssueActivation mints an activation token carrying the pending
// registration payload, valid for the configured window.
func (s *TokenService) IssueActivation(claims ActivationClaims) (string, error) {
	token, err := paseto.MakeToken(map[string]any{
		"kind":          string(KindActivation),
		"first_name":    claims.FirstName,
		"last_name":     claims.LastName,
		"email":         claims.Email,
		"password_hash": claims.PasswordHash,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build activation token: %w", err)
	}
	s.stampWindow(token)

	return token.V4Encrypt(s.activationKey, nil), nil
}

// VerifyActivation validates an activation token and recovers the
// pending registration payload.
func (s *TokenService) VerifyActivation(tokenStr string) (*ActivationClaims, error) {
	token, err := s.parseExpiring(s.activationKey, tokenStr, KindActivation)
	if err != nil {
		return nil, err
	}

	firstName, err := token.GetString("first_name")
	if err != nil {
		return nil, ErrInvalidToken
	}
	lastName, err := token.GetString("last_name")
	if err != nil {
		return nil, ErrInvalidToken
	}
	email, err := token.GetString("email")
	if err != nil {
		return nil, ErrInvalidToken
	}
	passwordHash, err := token.GetString("password_hash")
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &ActivationClaims{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
	}, nil
}

// IssuePasswordReset mints a reset token for the given email, valid
// for the configured window.
func (s *TokenService) IssuePasswordReset(email string) (string, error) {
	token, err := paseto.MakeToken(map[string]any{
		"kind":  string(KindPasswordReset),
		"email": email,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build reset token: %w", err)
	}
	s.stampWindow(token)

	return token.V4Encrypt(s.authKey, nil), nil
}

// VerifyPasswordReset validates a reset token.
func (s *TokenService) VerifyPasswordReset(tokenStr string) (*ResetClaims, error) {
	token, err := s.parseExpiring(s.authKey, tokenStr, KindPasswordReset)
	if err != nil {
		return nil, err
	}

	email, err := token.GetString("email")
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &ResetClaims{Email: email}, nil
}

// stampWindow sets issued-at, not-before and expiration on an expiring
// token.
func (s *TokenService) stampWindow(token *paseto.Token) {
	now := s.now()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.ttl))
}

// parseExpiring decrypts an expiring token, checks its validity window
// against the service clock and asserts the expected kind.
func (s *TokenService) parseExpiring(key paseto.V4SymmetricKey, tokenStr string, kind TokenKind) (*paseto.Token, error) {
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(key, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if got, err := token.GetString("kind"); err != nil || TokenKind(got) != kind {
		return nil, ErrInvalidToken
	}

	return token, nil
}

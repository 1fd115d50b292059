package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenTTL = 15 * time.Minute

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(
		[]byte("activation-key-32-bytes-long-ok!"),
		[]byte("auth-token-key-32-bytes-long-ok!"),
		tokenTTL,
	)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RejectsShortKeys(t *testing.T) {
	_, err := NewTokenService([]byte("short"), []byte("auth-token-key-32-bytes-long-ok!"), tokenTTL)
	assert.Error(t, err)

	_, err = NewTokenService([]byte("activation-key-32-bytes-long-ok!"), []byte("short"), tokenTTL)
	assert.Error(t, err)
}

func TestSessionToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	claims := SessionClaims{
		UserID:    uuid.New(),
		FirstName: "Anna",
		LastName:  "Kiss",
		Email:     "anna@example.com",
	}

	token, err := svc.IssueSession(claims)
	require.NoError(t, err)

	got, err := svc.VerifySession(token)
	require.NoError(t, err)
	assert.Equal(t, claims, *got)
}

func TestSessionToken_NoExpiry(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueSession(SessionClaims{UserID: uuid.New(), FirstName: "A", LastName: "B", Email: "a@b.com"})
	require.NoError(t, err)

	// Far beyond any reset/activation window the session still verifies.
	svc.now = func() time.Time { return time.Now().Add(365 * 24 * time.Hour) }

	_, err = svc.VerifySession(token)
	assert.NoError(t, err)
}

func TestActivationToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	claims := ActivationClaims{
		FirstName:    "Anna",
		LastName:     "Kiss",
		Email:        "anna@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}

	token, err := svc.IssueActivation(claims)
	require.NoError(t, err)

	got, err := svc.VerifyActivation(token)
	require.NoError(t, err)
	assert.Equal(t, claims, *got)
}

func TestActivationToken_ExpiresAfterWindow(t *testing.T) {
	svc := newTestTokenService(t)

	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, err := svc.IssueActivation(ActivationClaims{
		FirstName: "Anna", LastName: "Kiss", Email: "anna@example.com", PasswordHash: "h",
	})
	require.NoError(t, err)

	// Just inside the window.
	svc.now = func() time.Time { return issued.Add(tokenTTL - time.Second) }
	_, err = svc.VerifyActivation(token)
	assert.NoError(t, err)

	// Just past it.
	svc.now = func() time.Time { return issued.Add(tokenTTL + time.Second) }
	_, err = svc.VerifyActivation(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetToken_RoundTripAndExpiry(t *testing.T) {
	svc := newTestTokenService(t)

	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, err := svc.IssuePasswordReset("anna@example.com")
	require.NoError(t, err)

	got, err := svc.VerifyPasswordReset(token)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", got.Email)

	svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = svc.VerifyPasswordReset(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenKinds_AreNotInterchangeable(t *testing.T) {
	svc := newTestTokenService(t)

	// A reset token shares the auth key with session tokens but must
	// never authenticate as one.
	reset, err := svc.IssuePasswordReset("anna@example.com")
	require.NoError(t, err)
	_, err = svc.VerifySession(reset)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Session tokens must not pass reset verification either.
	session, err := svc.IssueSession(SessionClaims{UserID: uuid.New(), FirstName: "A", LastName: "B", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = svc.VerifyPasswordReset(session)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Activation tokens live under a different key entirely.
	activation, err := svc.IssueActivation(ActivationClaims{FirstName: "A", LastName: "B", Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = svc.VerifySession(activation)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.VerifyPasswordReset(activation)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)

	for _, tok := range []string{"", "garbage", "v4.local.not-a-token"} {
		_, err := svc.VerifySession(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
		_, err = svc.VerifyActivation(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
		_, err = svc.VerifyPasswordReset(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerify_RejectsForeignKey(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := NewTokenService(
		[]byte("other-activationkey-32-bytes-ok!"),
		[]byte("other-auth-token-key-32-bytes-o!"),
		tokenTTL,
	)
	require.NoError(t, err)

	token, err := svc.IssueActivation(ActivationClaims{FirstName: "A", LastName: "B", Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = other.VerifyActivation(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitness-fanatics/fitness-api/internal/crypto"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
	"github.com/fitness-fanatics/fitness-api/internal/user"
)

// fakeUserStore keeps users in memory keyed by email, with the same
// duplicate and not-found semantics as the real repository.
type fakeUserStore struct {
	byEmail map[string]*user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*user.User)}
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *fakeUserStore) Create(_ context.Context, firstName, lastName, email, passwordHash string) (*user.User, error) {
	if _, ok := s.byEmail[email]; ok {
		return nil, user.ErrDuplicateEmail
	}
	u := &user.User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.byEmail[email] = u
	return u, nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	for _, u := range s.byEmail {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return user.ErrNotFound
}

type sentMail struct {
	to    string
	token string
}

type fakeEmailService struct {
	activations []sentMail
	resets      []sentMail
	fail        error
}

func (e *fakeEmailService) SendActivationEmail(_ context.Context, toEmail, token string) error {
	if e.fail != nil {
		return e.fail
	}
	e.activations = append(e.activations, sentMail{to: toEmail, token: token})
	return nil
}

func (e *fakeEmailService) SendPasswordResetEmail(_ context.Context, toEmail string, _ uuid.UUID, token string) error {
	if e.fail != nil {
		return e.fail
	}
	e.resets = append(e.resets, sentMail{to: toEmail, token: token})
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserStore, *fakeEmailService, *TokenService) {
	t.Helper()
	tokens := newTestTokenService(t)
	store := newFakeUserStore()
	mail := &fakeEmailService{}
	svc := NewService(store, tokens, mail, logging.NewLogger(true))
	return svc, store, mail, tokens
}

func registerAndActivate(t *testing.T, svc *Service, mail *fakeEmailService, email, password string) *user.User {
	t.Helper()
	require.NoError(t, svc.Register(context.Background(), "Anna", "Kiss", email, password))
	require.NotEmpty(t, mail.activations)

	u, err := svc.Activate(context.Background(), mail.activations[len(mail.activations)-1].token)
	require.NoError(t, err)
	return u
}

func TestRegister_SendsActivationMailWithoutPersisting(t *testing.T) {
	svc, store, mail, tokens := newTestService(t)

	err := svc.Register(context.Background(), "Anna", "Kiss", "anna@example.com", "password123")
	require.NoError(t, err)

	// No row exists yet, only the staged token in the outgoing mail.
	assert.Empty(t, store.byEmail)
	require.Len(t, mail.activations, 1)
	assert.Equal(t, "anna@example.com", mail.activations[0].to)

	claims, err := tokens.VerifyActivation(mail.activations[0].token)
	require.NoError(t, err)
	assert.Equal(t, "Anna", claims.FirstName)
	assert.Equal(t, "anna@example.com", claims.Email)
	assert.NotEqual(t, "password123", claims.PasswordHash)
	assert.True(t, crypto.VerifyPassword("password123", claims.PasswordHash))
}

func TestRegister_ShortPasswordIssuesNothing(t *testing.T) {
	svc, store, mail, _ := newTestService(t)

	err := svc.Register(context.Background(), "Anna", "Kiss", "anna@example.com", "1234567")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
	assert.Empty(t, store.byEmail)
	assert.Empty(t, mail.activations)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	svc, store, mail, _ := newTestService(t)

	registerAndActivate(t, svc, mail, "anna@example.com", "password123")
	require.Len(t, store.byEmail, 1)

	err := svc.Register(context.Background(), "Other", "Person", "anna@example.com", "different-pass")
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)

	// The conflict must not send a second mail or touch the store.
	assert.Len(t, mail.activations, 1)
	assert.Len(t, store.byEmail, 1)
}

func TestRegister_MailFailureIsAnError(t *testing.T) {
	svc, store, mail, _ := newTestService(t)
	mail.fail = errors.New("smtp connection refused")

	err := svc.Register(context.Background(), "Anna", "Kiss", "anna@example.com", "password123")
	require.Error(t, err)
	assert.Empty(t, store.byEmail)
}

func TestActivate_PersistsStagedUser(t *testing.T) {
	svc, store, mail, _ := newTestService(t)

	u := registerAndActivate(t, svc, mail, "anna@example.com", "password123")

	assert.Equal(t, "Anna", u.FirstName)
	assert.Equal(t, "anna@example.com", u.Email)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Len(t, store.byEmail, 1)
}

func TestActivate_SecondUseConflicts(t *testing.T) {
	svc, _, mail, _ := newTestService(t)

	registerAndActivate(t, svc, mail, "anna@example.com", "password123")

	_, err := svc.Activate(context.Background(), mail.activations[0].token)
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestActivate_ExpiredToken(t *testing.T) {
	svc, _, mail, tokens := newTestService(t)

	issued := time.Now()
	tokens.now = func() time.Time { return issued }
	require.NoError(t, svc.Register(context.Background(), "Anna", "Kiss", "anna@example.com", "password123"))

	tokens.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err := svc.Activate(context.Background(), mail.activations[0].token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestActivate_GarbageToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Activate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin_Succeeds(t *testing.T) {
	svc, _, mail, tokens := newTestService(t)

	created := registerAndActivate(t, svc, mail, "anna@example.com", "password123")

	result, err := svc.Login(context.Background(), "anna@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, created.ID, result.ID)
	assert.Equal(t, "Anna", result.FirstName)
	assert.Equal(t, "Kiss", result.LastName)
	assert.Equal(t, "anna@example.com", result.Email)

	claims, err := tokens.VerifySession(result.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, "anna@example.com", claims.Email)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, mail, _ := newTestService(t)

	registerAndActivate(t, svc, mail, "anna@example.com", "password123")

	_, err := svc.Login(context.Background(), "anna@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequestPasswordReset_Succeeds(t *testing.T) {
	svc, _, mail, tokens := newTestService(t)

	registerAndActivate(t, svc, mail, "anna@example.com", "password123")

	err := svc.RequestPasswordReset(context.Background(), "anna@example.com")
	require.NoError(t, err)
	require.Len(t, mail.resets, 1)

	claims, err := tokens.VerifyPasswordReset(mail.resets[0].token)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", claims.Email)
}

func TestRequestPasswordReset_UnregisteredEmail(t *testing.T) {
	svc, _, mail, _ := newTestService(t)

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
	assert.Empty(t, mail.resets)
}

func TestResetPassword_ReplacesHash(t *testing.T) {
	svc, _, mail, _ := newTestService(t)

	created := registerAndActivate(t, svc, mail, "anna@example.com", "password123")
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "anna@example.com"))

	err := svc.ResetPassword(context.Background(), created.ID, mail.resets[0].token, "new-password-9")
	require.NoError(t, err)

	// Old credentials no longer work, new ones do.
	_, err = svc.Login(context.Background(), "anna@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "anna@example.com", "new-password-9")
	assert.NoError(t, err)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, _, mail, tokens := newTestService(t)

	created := registerAndActivate(t, svc, mail, "anna@example.com", "password123")

	issued := time.Now()
	tokens.now = func() time.Time { return issued }
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "anna@example.com"))

	tokens.now = func() time.Time { return issued.Add(16 * time.Minute) }
	err := svc.ResetPassword(context.Background(), created.ID, mail.resets[0].token, "new-password-9")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The original password still works.
	tokens.now = time.Now
	_, err = svc.Login(context.Background(), "anna@example.com", "password123")
	assert.NoError(t, err)
}

func TestResetPassword_ShortPassword(t *testing.T) {
	svc, _, mail, _ := newTestService(t)

	created := registerAndActivate(t, svc, mail, "anna@example.com", "password123")
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "anna@example.com"))

	err := svc.ResetPassword(context.Background(), created.ID, mail.resets[0].token, "tiny")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
}

func TestResetPassword_SessionTokenRejected(t *testing.T) {
	svc, _, mail, _ := newTestService(t)

	created := registerAndActivate(t, svc, mail, "anna@example.com", "password123")
	result, err := svc.Login(context.Background(), "anna@example.com", "password123")
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), created.ID, result.Token, "new-password-9")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

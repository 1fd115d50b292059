package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth(t *testing.T) {
	tokens := newTestTokenService(t)
	mw := NewMiddleware(tokens)

	userID := uuid.New()
	token, err := tokens.IssueSession(SessionClaims{
		UserID:    userID,
		FirstName: "Anna",
		LastName:  "Kiss",
		Email:     "anna@example.com",
	})
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		gotEmail, _ = GetUserEmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "anna@example.com", gotEmail)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	mw := NewMiddleware(newTestTokenService(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_BadHeaderFormat(t *testing.T) {
	mw := NewMiddleware(newTestTokenService(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_RejectsNonSessionTokens(t *testing.T) {
	tokens := newTestTokenService(t)
	mw := NewMiddleware(tokens)

	reset, err := tokens.IssuePasswordReset("anna@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+reset)
	rec := httptest.NewRecorder()
	mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	err := validateRegistration("Jane", "Doe", "jane@example.com", "password123")
	assert.NoError(t, err)
}

func TestValidateRegistrationFirstFailingField(t *testing.T) {
	// Both firstName and email are invalid; the reported field must be
	// the first one in declaration order.
	err := validateRegistration("", "Doe", "not-an-email", "password123")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "firstName", vErr.Field)
}

func TestValidateRegistrationMissingLastName(t *testing.T) {
	err := validateRegistration("Jane", "", "jane@example.com", "password123")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "lastName", vErr.Field)
}

func TestValidateRegistrationBadEmail(t *testing.T) {
	err := validateRegistration("Jane", "Doe", "jane@", "password123")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
}

func TestValidateRegistrationShortPassword(t *testing.T) {
	err := validateRegistration("Jane", "Doe", "jane@example.com", "short7c")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
}

func TestValidateRegistrationPasswordBoundary(t *testing.T) {
	// Exactly eight characters is the minimum accepted length.
	assert.NoError(t, validateRegistration("Jane", "Doe", "jane@example.com", "12345678"))

	err := validateRegistration("Jane", "Doe", "jane@example.com", "1234567")
	assert.Error(t, err)
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, validateLogin("jane@example.com", "password123"))

	err := validateLogin("", "password123")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)

	err = validateLogin("jane@example.com", "")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
}

func TestValidateNewPassword(t *testing.T) {
	assert.NoError(t, validateNewPassword("fresh-password"))

	err := validateNewPassword("tiny")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
}

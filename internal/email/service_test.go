package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivationTemplateRendersLink(t *testing.T) {
	svc := NewService("localhost", "1025", "noreply@example.com", "secret", "https://app.example.com")

	body, err := svc.render(svc.activationTmpl, map[string]string{
		"Link": "https://app.example.com/user/activation/v4.local.sometoken",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "https://app.example.com/user/activation/v4.local.sometoken")
	assert.Contains(t, body, "expire in 15 minutes")
}

func TestPasswordResetTemplateRendersLink(t *testing.T) {
	svc := NewService("localhost", "1025", "noreply@example.com", "secret", "https://app.example.com")

	body, err := svc.render(svc.resetTmpl, map[string]string{
		"Link": "https://app.example.com/password-reset/123e4567-e89b-12d3-a456-426614174000/v4.local.sometoken",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "/password-reset/123e4567-e89b-12d3-a456-426614174000/v4.local.sometoken")
	assert.Contains(t, body, "expire in 15 minutes")
}

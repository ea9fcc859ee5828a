package testutils

import (
	"context"
	"testing"

	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is a test-only HMAC secret. It must never be used in production.
const TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

// TestAuthConfig returns an auth configuration signed with TestJWTSecret.
func TestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            TestJWTSecret,
		TokenLifetimeMinutes: 15,
	}
}

// NewTestJWTService creates a real JWT service using TestAuthConfig.
func NewTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(TestAuthConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// GenerateAuthHeader returns an Authorization header value carrying a fresh
// token for subject.
func GenerateAuthHeader(t *testing.T, svc auth.JWTService, subject string) string {
	t.Helper()
	token, err := svc.GenerateToken(context.Background(), subject)
	require.NoError(t, err, "Failed to generate test token")
	return "Bearer " + token
}

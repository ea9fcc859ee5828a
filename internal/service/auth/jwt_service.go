package auth

import (
	"context"
	"time"
)

// JWTService issues and verifies the bearer tokens presented by gateway
// processes calling the bot's command routes.
type JWTService interface {
	// GenerateToken creates a signed token identifying subject, typically the
	// name of a gateway process.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a gateway token.
type Claims struct {
	// Subject names the gateway the token was issued to.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Package jwt issues and parses the HS256 tokens that bind an HTTP client to
// its server side session context.
package jwt

import (
	"time"
)

// Maker issues and parses context tokens.
type Maker interface {
	GenerateToken(contextID, userID, role string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl signs tokens with a shared secret.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker returns a Maker whose tokens expire after ttl.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

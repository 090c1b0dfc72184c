package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSecret = errors.New("jwtx: signing secret is empty")

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with a symmetric process-wide secret. The secret
// is loaded once at startup and never rotated mid-process.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer from the shared secret.
func NewSignerHS256(secret string) (*HS256Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &HS256Signer{secret: []byte(secret)}, nil
}

func (s *HS256Signer) Alg() string { return "HS256" }

func (s *HS256Signer) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

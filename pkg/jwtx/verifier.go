package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single rejection a verifier reports. Bad signature,
// malformed payload and expiry all collapse into it so callers cannot leak
// cryptographic diagnostics to clients.
var ErrInvalidToken = errors.New("jwtx: invalid token")

// Verifier validates a session token and gives you back the claims if it's
// legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Verifier checks signature integrity and expiry against the symmetric
// secret. Only HS256 is accepted; tokens claiming any other algorithm
// (including "none") are rejected outright.
type HS256Verifier struct {
	secret []byte
}

// NewVerifierHS256 creates an HS256 verifier from the shared secret.
func NewVerifierHS256(secret string) (*HS256Verifier, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &HS256Verifier{secret: []byte(secret)}, nil
}

func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrInvalidToken
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

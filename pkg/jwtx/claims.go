package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the fallback lifetime when a caller issues a token
// without specifying one. Tokens are stateless and cannot be revoked before
// expiry, so the TTL is kept short.
const DefaultAccessTokenTTL = 15 * time.Minute

// Claims are the session-token claims. The payload is intentionally minimal:
// subject (username) and the registered time bounds. Validity is entirely
// self-contained in the signed payload plus current time; there is no
// server-side session table.
type Claims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims builds claims for subject expiring ttl from now. A zero ttl
// falls back to DefaultAccessTokenTTL.
func NewAccessClaims(subject string, ttl time.Duration, now time.Time) Claims {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

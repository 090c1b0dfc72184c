package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newPair(t *testing.T) (*HS256Signer, *HS256Verifier) {
	t.Helper()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := NewVerifierHS256(testSecret)
	require.NoError(t, err)

	return signer, verifier
}

func TestSignVerify_RoundTrip(t *testing.T) {
	signer, verifier := newPair(t)

	token, err := signer.Sign(NewAccessClaims("alice", 30*time.Minute, time.Now()))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
}

func TestVerify_Expired(t *testing.T) {
	signer, verifier := newPair(t)

	// Issued in the past so the token is already expired.
	token, err := signer.Sign(NewAccessClaims("alice", time.Minute, time.Now().Add(-2*time.Minute)))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	signer, _ := newPair(t)

	other, err := NewVerifierHS256("a-different-secret")
	require.NoError(t, err)

	token, err := signer.Sign(NewAccessClaims("alice", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	_, verifier := newPair(t)

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"whitespace", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.raw)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	_, verifier := newPair(t)

	// A token signed with "none" must never verify, even though the payload
	// is well-formed.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone,
		NewAccessClaims("alice", time.Minute, time.Now()))
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingSubject(t *testing.T) {
	signer, verifier := newPair(t)

	token, err := signer.Sign(NewAccessClaims("", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewAccessClaims_DefaultTTL(t *testing.T) {
	now := time.Now()
	claims := NewAccessClaims("bob", 0, now)
	require.WithinDuration(t, now.Add(DefaultAccessTokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestNewSignerHS256_EmptySecret(t *testing.T) {
	_, err := NewSignerHS256("")
	require.ErrorIs(t, err, ErrNoSecret)

	_, err = NewVerifierHS256("")
	require.ErrorIs(t, err, ErrNoSecret)
}

package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// KDF parameters. The iteration count is deliberately high so offline
// brute-forcing a leaked digest stays expensive; changing it invalidates no
// stored digest because verification re-derives with the same fixed count.
const (
	saltLength = 32     // random salt bytes, hex-encoded to 64 chars
	iterations = 100000 // PBKDF2-HMAC-SHA256 rounds
	keyLength  = 32     // derived digest bytes
)

// HashPassword derives a salted PBKDF2-HMAC-SHA256 digest and returns it as
// "<hex-salt>:<hex-digest>". The ':' delimiter cannot appear in either hex
// component, so the encoding is unambiguous. The hex-encoded salt text itself
// feeds the KDF, matching digests produced by prior deployments.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	salt := hex.EncodeToString(raw)

	digest := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	return salt + ":" + hex.EncodeToString(digest), nil
}

// VerifyPassword reports whether password matches the stored digest. It is
// constant-time on the digest comparison and returns false, never an error,
// for malformed stored values.
func VerifyPassword(password, encoded string) bool {
	salt, digestHex, ok := strings.Cut(encoded, ":")
	if !ok || salt == "" {
		return false
	}

	expected, err := hex.DecodeString(digestHex)
	if err != nil || len(expected) == 0 {
		return false
	}

	computed := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

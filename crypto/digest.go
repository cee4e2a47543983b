package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// TokenDigest returns the SHA-256 hex digest of a token. Session rows and
// reset tickets persist this digest, never the raw token.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// DigestEqual compares two digests in constant time.
func DigestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

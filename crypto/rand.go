package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// AlphanumericAlphabet is the default alphabet for random strings.
const AlphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ResetTicketLength is the byte length of password-reset ticket tokens.
// 32 random bytes (64 hex chars) make the ticket unguessable.
const ResetTicketLength = 32

// RandomString returns a cryptographically secure random string of the
// given length drawn from alphabet. Panics on a broken entropy source,
// as no caller can proceed without randomness.
func RandomString(length int, alphabet string) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto: entropy source failed: " + err.Error())
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

// NewResetTicket creates a cryptographically secure random token for
// password-reset tickets, hex encoded.
func NewResetTicket() string {
	b := make([]byte, ResetTicketLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto: entropy source failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

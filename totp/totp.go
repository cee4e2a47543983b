package totp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Period is the standard TOTP time step in seconds.
const Period = 30

// Verifier generates and validates time-based one-time codes. The issuer
// is the fixed name shown in authenticator apps next to the account email.
type Verifier struct {
	issuer string
	// window is the number of 30s steps of clock drift tolerated on
	// either side of the current step.
	window uint
}

// Secret is a freshly generated shared secret plus its otpauth URL for
// authenticator-app enrollment.
type Secret struct {
	// Base32 holds the shared secret in base32, also used as the
	// manual-entry key.
	Base32 string
	// OtpauthURL is the otpauth:// URL encoding issuer, account and secret.
	OtpauthURL string

	key *otp.Key
}

func NewVerifier(issuer string, window uint) *Verifier {
	return &Verifier{issuer: issuer, window: window}
}

// GenerateSecret produces a fresh shared secret labeled with the account
// email for authenticator-app display. Nothing but randomness goes in.
func (v *Verifier) GenerateSecret(accountEmail string) (*Secret, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      v.issuer,
		AccountName: accountEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp secret: %w", err)
	}

	return &Secret{
		Base32:     key.Secret(),
		OtpauthURL: key.URL(),
		key:        key,
	}, nil
}

// EnrollmentImage renders the otpauth URL as a scannable QR code and
// returns it as a base64 data URL. Pure function of the secret.
func (s *Secret) EnrollmentImage(size int) (string, error) {
	img, err := s.key.Image(size, size)
	if err != nil {
		return "", fmt.Errorf("failed to render enrollment image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode enrollment image: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// VerifyCode checks a submitted code against the stored base32 secret,
// tolerating the configured window of clock drift. The comparison is
// delegated to the library, which avoids leaking how close a guess was.
func (v *Verifier) VerifyCode(secretBase32, code string) bool {
	return v.verifyAt(secretBase32, code, time.Now())
}

func (v *Verifier) verifyAt(secretBase32, code string, t time.Time) bool {
	ok, err := totp.ValidateCustom(code, secretBase32, t, totp.ValidateOpts{
		Period:    Period,
		Skew:      v.window,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

package crypto

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-0123456789abcdef0123")

func TestNewAccessTokenRoundTrip(t *testing.T) {
	token, expiry, err := NewAccessToken("user-1", "a@example.com", testSecret, 15*time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if remaining := time.Until(expiry); remaining < 14*time.Minute || remaining > 15*time.Minute {
		t.Errorf("unexpected expiry %v from now", remaining)
	}

	claims, err := ParseJwt(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJwt failed: %v", err)
	}
	if got := claims[ClaimUserID]; got != "user-1" {
		t.Errorf("user_id claim = %v, want user-1", got)
	}
	if got := claims[ClaimEmail]; got != "a@example.com" {
		t.Errorf("email claim = %v, want a@example.com", got)
	}
}

func TestNewRefreshTokenOmitsEmail(t *testing.T) {
	token, _, err := NewRefreshToken("user-1", testSecret, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}

	claims, err := ParseJwt(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJwt failed: %v", err)
	}
	if _, ok := claims[ClaimEmail]; ok {
		t.Error("refresh token must not carry an email claim")
	}
	if got := claims[ClaimUserID]; got != "user-1" {
		t.Errorf("user_id claim = %v, want user-1", got)
	}
}

func TestNewJwtRejectsShortSecret(t *testing.T) {
	_, _, err := NewJwt(jwt.MapClaims{ClaimUserID: "u"}, []byte("short"), time.Minute)
	if !errors.Is(err, ErrJwtInvalidSecretLength) {
		t.Errorf("error = %v, want ErrJwtInvalidSecretLength", err)
	}
}

func TestParseJwtFailures(t *testing.T) {
	expired, _, err := NewAccessToken("user-1", "a@example.com", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	valid, _, err := NewAccessToken("user-1", "a@example.com", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}

	testCases := []struct {
		name    string
		token   string
		key     []byte
		wantErr error
	}{
		{"expired token", expired, testSecret, ErrJwtTokenExpired},
		{"wrong key", valid, []byte("other-secret-0123456789abcdef012"), ErrJwtInvalidToken},
		{"garbage token", "not.a.jwt", testSecret, ErrJwtInvalidToken},
		{"empty token", "", testSecret, ErrJwtInvalidToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJwt(tc.token, tc.key)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestParseJwtRejectsUnsignedToken(t *testing.T) {
	// alg=none must never pass, whatever the key.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{ClaimUserID: "user-1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := ParseJwt(token, testSecret); err == nil {
		t.Fatal("expected rejection of alg=none token")
	}
}

func TestVerifyRefreshToken(t *testing.T) {
	token, _, err := NewRefreshToken("user-9", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}

	userID, err := VerifyRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyRefreshToken failed: %v", err)
	}
	if userID != "user-9" {
		t.Errorf("userID = %q, want user-9", userID)
	}

	if _, err := VerifyRefreshToken(token, []byte("other-secret-0123456789abcdef012")); err == nil {
		t.Error("expected failure with wrong secret")
	}
}

func TestVerifyRefreshTokenMissingUserID(t *testing.T) {
	token, _, err := NewJwt(jwt.MapClaims{ClaimEmail: "a@example.com"}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJwt failed: %v", err)
	}

	if _, err := VerifyRefreshToken(token, testSecret); !errors.Is(err, ErrJwtInvalidToken) {
		t.Errorf("error = %v, want ErrJwtInvalidToken", err)
	}
}

package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// MinKeyLength is the minimum required length for JWT signing keys.
	// 32 bytes (256 bits) is the minimum recommended length for HMAC-SHA256 keys
	// to provide sufficient security against brute force attacks.
	MinKeyLength = 32

	// JWT claim constants
	ClaimIssuedAt  = "iat"     // JWT Issued At claim key
	ClaimExpiresAt = "exp"     // JWT Expiration Time claim key
	ClaimUserID    = "user_id" // JWT User ID claim key
	ClaimEmail     = "email"   // JWT Email claim key
)

var (
	// ErrJwtTokenExpired is returned when the token has expired
	ErrJwtTokenExpired = errors.New("token expired")
	// ErrJwtInvalidToken is returned when the token is invalid
	ErrJwtInvalidToken = errors.New("invalid token")
	// ErrJwtInvalidSigningMethod is returned when the signing method is not HS256
	ErrJwtInvalidSigningMethod = errors.New("unexpected signing method")
	// ErrJwtInvalidSecretLength is returned for invalid secret lengths.
	// A short or unset secret is a server configuration error, never a
	// caller error.
	ErrJwtInvalidSecretLength = errors.New("invalid secret length")
)

// ParseJwt verifies and parses a JWT and returns its claims.
func ParseJwt(token string, verificationKey []byte) (jwt.MapClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	parsedToken, err := parser.Parse(token, func(t *jwt.Token) (any, error) {
		return verificationKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrJwtTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrJwtInvalidToken
		}
		return nil, fmt.Errorf("%w: %w", ErrJwtInvalidToken, err)
	}

	if claims, ok := parsedToken.Claims.(jwt.MapClaims); ok && parsedToken.Valid {
		return claims, nil
	}

	return nil, ErrJwtInvalidToken
}

// NewJwt generates a new JWT with the provided claims plus iat/exp.
func NewJwt(payload jwt.MapClaims, signingKey []byte, duration time.Duration) (string, time.Time, error) {
	if len(signingKey) < MinKeyLength {
		return "", time.Time{}, ErrJwtInvalidSecretLength
	}

	now := time.Now()
	expirationTime := now.Add(duration)
	payload[ClaimIssuedAt] = now.Unix()
	payload[ClaimExpiresAt] = expirationTime.Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	tokenString, err := token.SignedString(signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expirationTime, nil
}

// NewAccessToken issues a short-lived access token carrying the user id and
// email. Stateless: verification needs only the same secret.
func NewAccessToken(userID, email string, secret []byte, duration time.Duration) (string, time.Time, error) {
	return NewJwt(jwt.MapClaims{
		ClaimUserID: userID,
		ClaimEmail:  email,
	}, secret, duration)
}

// NewRefreshToken issues a long-lived refresh token. It carries only the
// user id; the email is deliberately not embedded.
func NewRefreshToken(userID string, secret []byte, duration time.Duration) (string, time.Time, error) {
	return NewJwt(jwt.MapClaims{
		ClaimUserID: userID,
	}, secret, duration)
}

// VerifyRefreshToken checks signature and expiry and extracts the user id.
// It does NOT establish liveness: a syntactically valid token may already
// be revoked. Liveness is confirmed by matching the token digest against a
// stored session row.
func VerifyRefreshToken(token string, secret []byte) (string, error) {
	claims, err := ParseJwt(token, secret)
	if err != nil {
		return "", err
	}
	userID, ok := claims[ClaimUserID].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user_id claim", ErrJwtInvalidToken)
	}
	return userID, nil
}

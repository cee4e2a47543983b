package core

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bhamail/bhamail/config"
	"github.com/bhamail/bhamail/crypto"
	"github.com/bhamail/bhamail/db"
)

// Authenticator defines the interface for authentication operations
type Authenticator interface {
	Authenticate(r *http.Request) (*db.User, error, jsonResponse)
}

// DefaultAuthenticator implements Authenticator using the standard
// Bearer access token flow
type DefaultAuthenticator struct {
	dbAuth         db.DbAuth
	logger         *slog.Logger
	configProvider *config.Provider
}

// NewDefaultAuthenticator creates a new DefaultAuthenticator instance
func NewDefaultAuthenticator(dbAuth db.DbAuth, logger *slog.Logger, configProvider *config.Provider) *DefaultAuthenticator {
	return &DefaultAuthenticator{
		dbAuth:         dbAuth,
		logger:         logger,
		configProvider: configProvider,
	}
}

// Authenticate implements the Authenticator interface. It verifies the
// Bearer access token and re-fetches the user so a deactivated account is
// rejected even while its tokens are still syntactically valid.
func (a *DefaultAuthenticator) Authenticate(r *http.Request) (*db.User, error, jsonResponse) {
	errAuth := errors.New("auth error")

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errAuth, errorNoAuthHeader
	}

	// Check for Bearer prefix
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errAuth, errorInvalidTokenFormat
	}

	cfg := a.configProvider.Get()
	claims, err := crypto.ParseJwt(tokenString, cfg.Jwt.AuthSecret)
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrJwtTokenExpired):
			return nil, errAuth, errorJwtTokenExpired
		case errors.Is(err, crypto.ErrJwtInvalidSigningMethod):
			return nil, errAuth, errorJwtInvalidSignMethod
		default:
			return nil, errAuth, errorJwtInvalidToken
		}
	}

	userID, ok := claims[crypto.ClaimUserID].(string)
	if !ok || userID == "" {
		return nil, errAuth, errorJwtInvalidToken
	}

	user, err := a.dbAuth.GetUserById(userID)
	if err != nil {
		a.logger.Error("auth: failed to load user", "user_id", userID, "err", err)
		return nil, errAuth, errorAuthDatabaseError
	}
	if user == nil {
		return nil, errAuth, errorJwtInvalidToken
	}
	if !user.Active {
		return nil, errAuth, errorAccountDisabled
	}

	return user, nil, jsonResponse{}
}

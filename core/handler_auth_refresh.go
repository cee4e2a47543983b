package core

import (
	"encoding/json"
	"net/http"

	"github.com/bhamail/bhamail/crypto"
)

// RefreshHandler issues a fresh access token for a live refresh token
// Endpoint: POST /api/auth/refresh
// Authenticated: No (the refresh token itself is the credential)
// Allowed Mimetype: application/json
//
// The refresh token and its session row are untouched: no rotation. The
// signature check alone does not prove the token is still live, so the
// presented token's digest must also match a stored unexpired session.
// A syntactically valid but revoked token fails the second check.
func (a *App) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.RefreshToken == "" {
		writeJsonError(w, errorInvalidRefreshToken)
		return
	}

	cfg := a.Config()
	userID, err := crypto.VerifyRefreshToken(req.RefreshToken, cfg.Jwt.RefreshSecret)
	if err != nil {
		writeJsonError(w, errorInvalidRefreshToken)
		return
	}

	session, err := a.findSessionByToken(userID, req.RefreshToken)
	if err != nil {
		a.Logger().Error("refresh: failed to load sessions", "user_id", userID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if session == nil {
		writeJsonError(w, errorInvalidRefreshToken)
		return
	}

	// Re-fetch the user: a deactivated account must not refresh even with
	// a live session.
	user, err := a.DbAuth().GetUserById(userID)
	if err != nil {
		a.Logger().Error("refresh: failed to load user", "user_id", userID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil {
		writeJsonError(w, errorInvalidRefreshToken)
		return
	}
	if !user.Active {
		writeJsonError(w, errorAccountDisabled)
		return
	}

	accessToken, _, err := crypto.NewAccessToken(user.ID, user.Email, cfg.Jwt.AuthSecret, cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		a.Logger().Error("refresh: failed to issue access token", "user_id", user.ID, "err", err)
		writeJsonError(w, errorTokenGeneration)
		return
	}

	writeAccessTokenResponse(w, accessToken, int(cfg.Jwt.AuthTokenDuration.Duration.Seconds()))
}

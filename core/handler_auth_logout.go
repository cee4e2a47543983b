package core

import (
	"encoding/json"
	"io"
	"net/http"
)

// LogoutHandler deletes refresh sessions for the authenticated caller
// Endpoint: POST /api/auth/logout
// Authenticated: Yes
// Allowed Mimetype: application/json (body optional)
//
// With a refresh token in the body only the matching session is deleted
// (single device). Without one, all of the caller's sessions go (all
// devices). Idempotent: logging out a session that is already gone is
// not an error.
func (a *App) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	user, err, authResp := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, authResp)
		return
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	// An empty or absent body means all-device logout.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.RefreshToken == "" {
		if err := a.DbAuth().DeleteSessionsByUser(user.ID); err != nil {
			a.Logger().Error("logout: failed to delete sessions", "user_id", user.ID, "err", err)
			writeJsonError(w, errorAuthDatabaseError)
			return
		}
		writeJsonOk(w, okLogout)
		return
	}

	session, err := a.findSessionByToken(user.ID, req.RefreshToken)
	if err != nil {
		a.Logger().Error("logout: failed to load sessions", "user_id", user.ID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if session != nil {
		if err := a.DbAuth().DeleteSession(session.ID); err != nil {
			a.Logger().Error("logout: failed to delete session", "user_id", user.ID, "err", err)
			writeJsonError(w, errorAuthDatabaseError)
			return
		}
	}

	writeJsonOk(w, okLogout)
}

package core

import (
	"encoding/json"
	"net/http"

	"github.com/bhamail/bhamail/crypto"
)

// ResetPasswordHandler completes the password reset flow
// Endpoint: POST /api/auth/reset-password
// Authenticated: No (the reset ticket is the credential)
// Allowed Mimetype: application/json
//
// The ticket is single-use: it is deleted the moment the new password is
// stored. All of the user's sessions are purged, so every previously
// issued refresh token stops working and each device must log in again.
func (a *App) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Token == "" || req.Password == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if err := ValidatePassword(req.Password); err != nil {
		writeJsonError(w, errorPasswordComplexity)
		return
	}

	key := resetTicketKeyPrefix + req.Token
	value, found := a.Cache().Get(key)
	if !found {
		writeJsonError(w, errorResetTicketInvalid)
		return
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		writeJsonError(w, errorResetTicketInvalid)
		return
	}

	hashedPassword, err := crypto.GenerateHash(req.Password)
	if err != nil {
		a.Logger().Error("reset-password: failed to hash password", "user_id", userID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	if err := a.DbAuth().UpdatePassword(userID, hashedPassword); err != nil {
		a.Logger().Error("reset-password: failed to update password", "user_id", userID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	a.Cache().Delete(key)

	if err := a.DbAuth().DeleteSessionsByUser(userID); err != nil {
		a.Logger().Error("reset-password: failed to purge sessions", "user_id", userID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	writeJsonOk(w, okPasswordReset)
}

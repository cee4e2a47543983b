package core

import (
	"encoding/json"
	"net/http"

	"github.com/bhamail/bhamail/crypto"
)

// LoginHandler handles password-based authentication with optional TOTP
// Endpoint: POST /api/auth/login
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		TotpCode string `json:"totp_code"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		a.Logger().Error("login: failed to look up user", "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	// Unknown email and wrong password get the same response, so a caller
	// can never probe which addresses have accounts.
	if user == nil {
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	if !user.Active {
		writeJsonError(w, errorAccountDisabled)
		return
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	if user.TotpEnabled {
		if req.TotpCode == "" {
			writeJsonError(w, errorTotpRequired)
			return
		}
		if !a.Totp().VerifyCode(user.TotpSecret, req.TotpCode) {
			writeJsonError(w, errorTotpInvalid)
			return
		}
	}

	if err := a.DbAuth().UpdateLastLogin(user.ID); err != nil {
		// Metadata only, the login still counts.
		a.Logger().Error("login: failed to update last login", "user_id", user.ID, "err", err)
	}

	accessToken, refreshToken, expiresIn, err := a.issueTokenPair(user)
	if err != nil {
		a.Logger().Error("login: failed to issue tokens", "user_id", user.ID, "err", err)
		writeJsonError(w, errorTokenGeneration)
		return
	}

	writeAuthResponse(w, http.StatusOK, accessToken, refreshToken, expiresIn, user)
}

package core

import (
	"encoding/json"
	"net/http"

	"github.com/bhamail/bhamail/crypto"
)

// Disable2FAHandler turns off two-factor authentication
// Endpoint: POST /api/auth/disable-2fa
// Authenticated: Yes
// Allowed Mimetype: application/json
//
// Requires the password and a current TOTP code: a stolen access token
// alone must not be enough to strip the account's protection. Clears
// both the flag and the secret, so re-enabling starts from a fresh setup.
func (a *App) Disable2FAHandler(w http.ResponseWriter, r *http.Request) {
	user, err, authResp := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, authResp)
		return
	}

	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Password string `json:"password"`
		TotpCode string `json:"totp_code"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Password == "" || req.TotpCode == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if !user.TotpEnabled || user.TotpSecret == "" {
		writeJsonError(w, errorTotpNotSetup)
		return
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	if !a.Totp().VerifyCode(user.TotpSecret, req.TotpCode) {
		writeJsonError(w, errorTotpInvalid)
		return
	}

	if err := a.DbAuth().DisableTotp(user.ID); err != nil {
		a.Logger().Error("disable-2fa: failed to disable", "user_id", user.ID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	writeJsonOk(w, okTwoFactorDisabled)
}

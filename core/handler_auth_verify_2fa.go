package core

import (
	"encoding/json"
	"net/http"
)

// Verify2FAHandler completes two-factor enrollment
// Endpoint: POST /api/auth/verify-2fa
// Authenticated: Yes
// Allowed Mimetype: application/json
//
// Only after a code generated from the stored secret verifies does the
// enabled flag flip and 2FA become mandatory at login.
func (a *App) Verify2FAHandler(w http.ResponseWriter, r *http.Request) {
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
		TotpCode string `json:"totp_code"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.TotpCode == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	// Setup must precede verify.
	if user.TotpSecret == "" {
		writeJsonError(w, errorTotpNotSetup)
		return
	}

	if !a.Totp().VerifyCode(user.TotpSecret, req.TotpCode) {
		writeJsonError(w, errorTotpCodeRejected)
		return
	}

	if err := a.DbAuth().EnableTotp(user.ID); err != nil {
		a.Logger().Error("verify-2fa: failed to enable", "user_id", user.ID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	writeJsonOk(w, okTwoFactorEnabled)
}

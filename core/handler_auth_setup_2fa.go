package core

import (
	"net/http"
)

// qrImageSize is the pixel width and height of the enrollment QR code.
const qrImageSize = 200

// Setup2FAHandler starts two-factor enrollment for the caller
// Endpoint: POST /api/auth/setup-2fa
// Authenticated: Yes
// Allowed Mimetype: application/json
//
// Two-phase enable: the fresh secret is persisted here, but the enabled
// flag only flips after Verify2FA proves the authenticator app works.
// Until then login does not require a code.
func (a *App) Setup2FAHandler(w http.ResponseWriter, r *http.Request) {
	user, err, authResp := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, authResp)
		return
	}

	secret, err := a.Totp().GenerateSecret(user.Email)
	if err != nil {
		a.Logger().Error("setup-2fa: failed to generate secret", "user_id", user.ID, "err", err)
		writeJsonError(w, errorServiceUnavailable)
		return
	}

	qrCode, err := secret.EnrollmentImage(qrImageSize)
	if err != nil {
		a.Logger().Error("setup-2fa: failed to render enrollment image", "user_id", user.ID, "err", err)
		writeJsonError(w, errorServiceUnavailable)
		return
	}

	if err := a.DbAuth().UpdateTotpSecret(user.ID, secret.Base32); err != nil {
		a.Logger().Error("setup-2fa: failed to store secret", "user_id", user.ID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkTwoFactorSetup,
			Message: "Scan the QR code with your authenticator app, then verify a code",
		},
		Data: map[string]string{
			"secret":           secret.Base32,
			"otpauth_url":      secret.OtpauthURL,
			"qr_code":          qrCode,
			"manual_entry_key": secret.Base32,
		},
	})
}

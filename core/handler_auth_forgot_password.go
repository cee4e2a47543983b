package core

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bhamail/bhamail/crypto"
)

// resetTicketKeyPrefix namespaces reset tickets in the ephemeral store.
const resetTicketKeyPrefix = "password_reset:"

// ForgotPasswordHandler starts the password reset flow
// Endpoint: POST /api/auth/forgot-password
// Authenticated: No
// Allowed Mimetype: application/json
//
// The response for a known and an unknown email is byte-identical, so
// the endpoint cannot be used to probe which addresses have accounts.
// Only internally does the flow branch. Delivery failure of the reset
// mail IS surfaced, unlike the welcome mail: without it the reset is
// useless.
func (a *App) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = NormalizeEmail(req.Email)
	if req.Email == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		a.Logger().Error("forgot-password: failed to look up user", "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	if user == nil || !user.Active {
		writeJsonOk(w, okForgotPassword)
		return
	}

	// A reset without a deliverable mail is useless, so a missing mailer
	// is a hard failure, not a silent ok.
	if a.Mailer() == nil {
		a.Logger().Error("forgot-password: no mailer configured, cannot deliver reset email", "user_id", user.ID)
		a.alarm(r.Context(), "forgot-password", "reset email undeliverable, smtp disabled", nil)
		writeJsonError(w, errorMailDeliveryFailed)
		return
	}

	cfg := a.Config()
	ticket := crypto.NewResetTicket()
	a.Cache().SetWithTTL(resetTicketKeyPrefix+ticket, user.ID, 1, cfg.Jwt.ResetTicketTTL.Duration)

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", cfg.Server.BaseURL, ticket)
	if err := a.Mailer().SendPasswordResetEmail(r.Context(), user.Email, resetURL); err != nil {
		a.Logger().Error("forgot-password: failed to send reset email", "user_id", user.ID, "err", err)
		a.alarm(r.Context(), "forgot-password", "reset email delivery failed", map[string]any{"user_id": user.ID})
		writeJsonError(w, errorMailDeliveryFailed)
		return
	}

	writeJsonOk(w, okForgotPassword)
}

package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bhamail/bhamail/crypto"
	"github.com/bhamail/bhamail/db"
	"github.com/bhamail/bhamail/queue"
)

// SignupHandler handles password-based user registration
// Endpoint: POST /api/auth/signup
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) SignupHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = NormalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := ValidatePassword(req.Password); err != nil {
		writeJsonError(w, errorPasswordComplexity)
		return
	}

	hashedPassword, err := crypto.GenerateHash(req.Password)
	if err != nil {
		a.Logger().Error("signup: failed to hash password", "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	user, err := a.DbAuth().CreateUser(db.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, db.ErrConstraintUnique) {
			writeJsonError(w, errorEmailConflict)
			return
		}
		a.Logger().Error("signup: failed to create user", "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	// The primary mail account for the new user, local part and domain
	// split from the address.
	localPart, domain, _ := strings.Cut(user.Email, "@")
	if _, err := a.DbAuth().CreateAccount(db.Account{
		UserID:    user.ID,
		Email:     user.Email,
		LocalPart: localPart,
		Domain:    domain,
	}); err != nil {
		a.Logger().Error("signup: failed to create primary account", "user_id", user.ID, "err", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	accessToken, refreshToken, expiresIn, err := a.issueTokenPair(user)
	if err != nil {
		a.Logger().Error("signup: failed to issue tokens", "user_id", user.ID, "err", err)
		writeJsonError(w, errorTokenGeneration)
		return
	}

	a.enqueueWelcomeEmail(user)

	writeAuthResponse(w, http.StatusCreated, accessToken, refreshToken, expiresIn, user)
}

// enqueueWelcomeEmail queues the welcome mail. Best-effort: any failure
// is logged and the signup still succeeds.
func (a *App) enqueueWelcomeEmail(user *db.User) {
	cfg := a.Config()
	payload, _ := json.Marshal(queue.PayloadWelcomeEmail{
		UserID:         user.ID,
		CooldownBucket: queue.CoolDownBucket(cfg.RateLimits.WelcomeEmailCooldown.Duration, time.Now()),
	})
	payloadExtra, _ := json.Marshal(queue.PayloadWelcomeEmailExtra{
		Email:     user.Email,
		FirstName: user.FirstName,
	})

	err := a.DbQueue().InsertJob(db.Job{
		JobType:      queue.JobTypeWelcomeEmail,
		Payload:      payload,
		PayloadExtra: payloadExtra,
	})
	if err != nil && !errors.Is(err, db.ErrConstraintUnique) {
		a.Logger().Error("signup: failed to queue welcome email", "user_id", user.ID, "err", err)
	}
}

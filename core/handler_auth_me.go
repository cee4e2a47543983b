package core

import (
	"net/http"

	"github.com/bhamail/bhamail/db"
)

// ProfileRecord is the full profile returned by the Me endpoint. Secrets
// (password hash, TOTP secret) never leave the service.
type ProfileRecord struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Role             string `json:"role"`
	Phone            string `json:"phone,omitempty"`
	Avatar           string `json:"avatar,omitempty"`
	Timezone         string `json:"timezone,omitempty"`
	Language         string `json:"language,omitempty"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
	QuotaBytes       int64  `json:"quota_bytes"`
	UsedBytes        int64  `json:"used_bytes"`
	Created          string `json:"created"`
	LastLogin        string `json:"last_login,omitempty"`
}

// MeHandler returns the authenticated caller's profile
// Endpoint: GET /api/auth/me
// Authenticated: Yes
func (a *App) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, err, authResp := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, authResp)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkProfile,
			Message: "Profile",
		},
		Data: newProfileRecord(user),
	})
}

func newProfileRecord(user *db.User) ProfileRecord {
	rec := ProfileRecord{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Role:             user.Role,
		Phone:            user.Phone,
		Avatar:           user.Avatar,
		Timezone:         user.Timezone,
		Language:         user.Language,
		TwoFactorEnabled: user.TotpEnabled,
		QuotaBytes:       user.QuotaBytes,
		UsedBytes:        user.UsedBytes,
	}
	if !user.Created.IsZero() {
		rec.Created = db.TimeFormat(user.Created)
	}
	if !user.LastLogin.IsZero() {
		rec.LastLogin = db.TimeFormat(user.LastLogin)
	}
	return rec
}

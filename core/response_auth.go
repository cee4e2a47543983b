package core

import (
	"net/http"

	"github.com/bhamail/bhamail/db"
)

// This file defines the standardized response formats for authentication
// endpoints, so login, signup and refresh all return the same shape.
//
// Example authentication response (successful login):
// {
//   "status": 200,
//   "code": "ok_authentication",
//   "message": "Authentication successful",
//   "data": {
//     "token_type": "Bearer",
//     "access_token": "eyJhbGciOiJIUzI...",
//     "refresh_token": "eyJhbGciOiJIUzI...",
//     "expires_in": 900,
//     "record": { "id": "...", "email": "...", ... }
//   }
// }

const (
	// oks for non precomputed, dynamic auth responses
	CodeOkAuthentication = "ok_authentication"
	CodeOkTokenRefreshed = "ok_token_refreshed"
	CodeOkTwoFactorSetup = "ok_two_factor_setup"
	CodeOkProfile        = "ok_profile"
)

// AuthRecord represents the user record in authentication responses
type AuthRecord struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Role             string `json:"role"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
}

// AuthData represents the authentication response structure
type AuthData struct {
	TokenType    string     `json:"token_type"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresIn    int        `json:"expires_in"`
	Record       AuthRecord `json:"record"`
}

func newAuthRecord(user *db.User) AuthRecord {
	return AuthRecord{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Role:             user.Role,
		TwoFactorEnabled: user.TotpEnabled,
	}
}

// writeAuthResponse writes a standardized authentication response carrying
// both tokens. Signup uses 201, login 200.
func writeAuthResponse(w http.ResponseWriter, status int, accessToken, refreshToken string, expiresIn int, user *db.User) {
	authData := &AuthData{
		TokenType:    "Bearer",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		Record:       newAuthRecord(user),
	}
	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  status,
			Code:    CodeOkAuthentication,
			Message: "Authentication successful",
		},
		Data: authData,
	}
	writeJsonWithData(w, response)
}

// writeAccessTokenResponse writes the refresh response: a fresh access
// token only, the refresh token is untouched.
func writeAccessTokenResponse(w http.ResponseWriter, accessToken string, expiresIn int) {
	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkTokenRefreshed,
			Message: "Token refreshed",
		},
		Data: &AuthData{
			TokenType:   "Bearer",
			AccessToken: accessToken,
			ExpiresIn:   expiresIn,
		},
	}
	writeJsonWithData(w, response)
}

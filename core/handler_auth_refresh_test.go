package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bhamail/bhamail/crypto"
	"github.com/bhamail/bhamail/db"
	"github.com/bhamail/bhamail/db/mock"
)

func doRefresh(app *App, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/auth/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.RefreshHandler(rr, req)
	return rr
}

// issueTestRefreshToken returns a signed refresh token plus the session
// row that would have been stored for it.
func issueTestRefreshToken(t *testing.T, app *App, userID string) (string, *db.Session) {
	t.Helper()
	cfg := app.Config()
	token, expiry, err := crypto.NewRefreshToken(userID, cfg.Jwt.RefreshSecret, cfg.Jwt.RefreshTokenDuration.Duration)
	if err != nil {
		t.Fatalf("failed to issue refresh token: %v", err)
	}
	return token, &db.Session{
		ID:        "session-1",
		UserID:    userID,
		TokenHash: crypto.TokenDigest(token),
		ExpiresAt: expiry,
	}
}

func TestRefreshHandler_RoundTrip(t *testing.T) {
	user := &db.User{ID: "user-1", Email: "a@x.com", Active: true}
	app := newTestApp(nil)

	token, session := issueTestRefreshToken(t, app, user.ID)
	app.SetDb(&mock.Db{
		GetSessionsByUserFunc: func(userID string) ([]*db.Session, error) {
			return []*db.Session{session}, nil
		},
		GetUserByIdFunc: func(id string) (*db.User, error) {
			return user, nil
		},
	})

	rr := doRefresh(app, `{"refresh_token":"`+token+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.AccessToken == "" {
		t.Fatal("expected a new access token")
	}
	if resp.Data.RefreshToken != "" {
		t.Error("refresh must not rotate the refresh token")
	}

	// The new access token decodes to the same user.
	claims, err := crypto.ParseJwt(resp.Data.AccessToken, app.Config().Jwt.AuthSecret)
	if err != nil {
		t.Fatalf("new access token does not verify: %v", err)
	}
	if claims[crypto.ClaimUserID] != user.ID {
		t.Errorf("expected user id %q in claims, got %v", user.ID, claims[crypto.ClaimUserID])
	}
}

func TestRefreshHandler_Failures(t *testing.T) {
	user := &db.User{ID: "user-1", Email: "a@x.com", Active: true}
	app := newTestApp(nil)
	token, session := issueTestRefreshToken(t, app, user.ID)

	testCases := []struct {
		name      string
		body      string
		sessions  []*db.Session
		user      *db.User
		wantError jsonResponse
	}{
		{
			name:      "missing token",
			body:      `{}`,
			wantError: errorInvalidRefreshToken,
		},
		{
			name:      "garbage token",
			body:      `{"refresh_token":"not-a-jwt"}`,
			wantError: errorInvalidRefreshToken,
		},
		{
			name:      "revoked session",
			body:      `{"refresh_token":"` + token + `"}`,
			sessions:  nil, // logout already deleted the row
			user:      user,
			wantError: errorInvalidRefreshToken,
		},
		{
			name:      "user gone",
			body:      `{"refresh_token":"` + token + `"}`,
			sessions:  []*db.Session{session},
			user:      nil,
			wantError: errorInvalidRefreshToken,
		},
		{
			name:      "user deactivated",
			body:      `{"refresh_token":"` + token + `"}`,
			sessions:  []*db.Session{session},
			user:      &db.User{ID: "user-1", Email: "a@x.com", Active: false},
			wantError: errorAccountDisabled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app.SetDb(&mock.Db{
				GetSessionsByUserFunc: func(userID string) ([]*db.Session, error) {
					return tc.sessions, nil
				},
				GetUserByIdFunc: func(id string) (*db.User, error) {
					return tc.user, nil
				},
			})

			rr := doRefresh(app, tc.body)
			checkResponseCode(t, rr, tc.wantError)
		})
	}
}

func TestRefreshHandler_ExpiredToken(t *testing.T) {
	app := newTestApp(nil)
	cfg := app.Config()

	token, _, err := crypto.NewRefreshToken("user-1", cfg.Jwt.RefreshSecret, -time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	app.SetDb(&mock.Db{})
	rr := doRefresh(app, `{"refresh_token":"`+token+`"}`)
	checkResponseCode(t, rr, errorInvalidRefreshToken)
}

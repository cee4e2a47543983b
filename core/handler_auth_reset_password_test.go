package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bhamail/bhamail/crypto"
	"github.com/bhamail/bhamail/db/mock"
)

func doResetPassword(app *App, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/auth/reset-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.ResetPasswordHandler(rr, req)
	return rr
}

func TestResetPasswordHandler_InvalidTicket(t *testing.T) {
	app := newTestApp(&mock.Db{
		UpdatePasswordFunc: func(userID, newHash string) error {
			t.Error("password must not be updated for an unknown ticket")
			return nil
		},
	})

	rr := doResetPassword(app, `{"token":"unknown","password":"Abcd123!"}`)
	checkResponseCode(t, rr, errorResetTicketInvalid)
}

func TestResetPasswordHandler_WeakPassword(t *testing.T) {
	app := newTestApp(&mock.Db{})
	rr := doResetPassword(app, `{"token":"whatever","password":"short"}`)
	checkResponseCode(t, rr, errorPasswordComplexity)
}

func TestResetPasswordHandler_Success(t *testing.T) {
	ticket := crypto.NewResetTicket()
	passwordUpdated := ""
	sessionsPurged := false

	app := newTestApp(&mock.Db{
		UpdatePasswordFunc: func(userID, newHash string) error {
			if userID != "user-1" {
				t.Errorf("expected user-1, got %q", userID)
			}
			passwordUpdated = newHash
			return nil
		},
		DeleteSessionsByUserFunc: func(userID string) error {
			sessionsPurged = true
			return nil
		},
	})
	app.Cache().SetWithTTL("password_reset:"+ticket, "user-1", 1, 0)

	rr := doResetPassword(app, `{"token":"`+ticket+`","password":"Newpass1!"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	if passwordUpdated == "" {
		t.Fatal("password was not updated")
	}
	if !crypto.CheckPassword("Newpass1!", passwordUpdated) {
		t.Error("stored hash does not match the new password")
	}
	if !sessionsPurged {
		t.Error("existing sessions must be purged on reset")
	}

	// Single use: the ticket is gone and a second reset fails.
	if _, found := app.Cache().Get("password_reset:" + ticket); found {
		t.Error("ticket must be deleted after use")
	}
	rr = doResetPassword(app, `{"token":"`+ticket+`","password":"Another1!"}`)
	checkResponseCode(t, rr, errorResetTicketInvalid)
}

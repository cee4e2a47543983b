package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bhamail/bhamail/db"
	"github.com/bhamail/bhamail/db/mock"
	"github.com/pquerna/otp/totp"
)

func TestSetup2FAHandler_TwoPhaseEnable(t *testing.T) {
	user := newStoredUser(t)
	storedSecret := ""
	enabledFlipped := false

	app := newTestApp(&mock.Db{
		UpdateTotpSecretFunc: func(userID, secret string) error {
			storedSecret = secret
			return nil
		},
		EnableTotpFunc: func(userID string) error {
			enabledFlipped = true
			return nil
		},
	})
	app.SetAuthenticator(authAs(user))

	req := httptest.NewRequest("POST", "/api/auth/setup-2fa", nil)
	rr := httptest.NewRecorder()
	app.Setup2FAHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if storedSecret == "" {
		t.Fatal("secret was not persisted")
	}
	if enabledFlipped {
		t.Error("setup must not flip the enabled flag")
	}

	var resp struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data["secret"] != storedSecret {
		t.Error("returned secret differs from stored secret")
	}
	if resp.Data["manual_entry_key"] != storedSecret {
		t.Error("manual entry key must equal the secret")
	}
	if !strings.HasPrefix(resp.Data["qr_code"], "data:image/png;base64,") {
		t.Errorf("unexpected qr code format: %.40s", resp.Data["qr_code"])
	}
	if !strings.HasPrefix(resp.Data["otpauth_url"], "otpauth://totp/") {
		t.Errorf("unexpected otpauth url: %s", resp.Data["otpauth_url"])
	}
}

func TestVerify2FAHandler(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "BhaMail", AccountName: "a@x.com"})
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	doVerify := func(app *App, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/auth/verify-2fa", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		app.Verify2FAHandler(rr, req)
		return rr
	}

	t.Run("missing code", func(t *testing.T) {
		user := newStoredUser(t)
		user.TotpSecret = key.Secret()
		app := newTestApp(&mock.Db{})
		app.SetAuthenticator(authAs(user))

		rr := doVerify(app, `{}`)
		checkResponseCode(t, rr, errorMissingFields)
	})

	t.Run("setup never started", func(t *testing.T) {
		user := newStoredUser(t)
		app := newTestApp(&mock.Db{})
		app.SetAuthenticator(authAs(user))

		rr := doVerify(app, `{"totp_code":"123456"}`)
		checkResponseCode(t, rr, errorTotpNotSetup)
	})

	t.Run("wrong code", func(t *testing.T) {
		user := newStoredUser(t)
		user.TotpSecret = key.Secret()
		app := newTestApp(&mock.Db{
			EnableTotpFunc: func(userID string) error {
				t.Error("enable must not run on a wrong code")
				return nil
			},
		})
		app.SetAuthenticator(authAs(user))

		rr := doVerify(app, `{"totp_code":"000000"}`)
		checkResponseCode(t, rr, errorTotpCodeRejected)
	})

	t.Run("valid code flips the flag", func(t *testing.T) {
		user := newStoredUser(t)
		user.TotpSecret = key.Secret()
		enabled := false
		app := newTestApp(&mock.Db{
			EnableTotpFunc: func(userID string) error {
				enabled = true
				return nil
			},
		})
		app.SetAuthenticator(authAs(user))

		code, err := totp.GenerateCode(key.Secret(), time.Now())
		if err != nil {
			t.Fatalf("failed to generate code: %v", err)
		}
		rr := doVerify(app, `{"totp_code":"`+code+`"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if !enabled {
			t.Error("enabled flag was not flipped")
		}
	})
}

func TestDisable2FAHandler_RequiresBothFactors(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "BhaMail", AccountName: "a@x.com"})
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	newEnabledUser := func() *db.User {
		user := newStoredUser(t)
		user.TotpSecret = key.Secret()
		user.TotpEnabled = true
		return user
	}

	doDisable := func(app *App, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/auth/disable-2fa", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		app.Disable2FAHandler(rr, req)
		return rr
	}

	validCode := func() string {
		code, err := totp.GenerateCode(key.Secret(), time.Now())
		if err != nil {
			t.Fatalf("failed to generate code: %v", err)
		}
		return code
	}

	t.Run("missing fields", func(t *testing.T) {
		app := newTestApp(&mock.Db{})
		app.SetAuthenticator(authAs(newEnabledUser()))
		rr := doDisable(app, `{"password":"Abcd123!"}`)
		checkResponseCode(t, rr, errorMissingFields)
	})

	t.Run("wrong password with valid code", func(t *testing.T) {
		app := newTestApp(&mock.Db{})
		app.SetAuthenticator(authAs(newEnabledUser()))
		rr := doDisable(app, `{"password":"Wrong123!","totp_code":"`+validCode()+`"}`)
		checkResponseCode(t, rr, errorInvalidCredentials)
	})

	t.Run("correct password with wrong code", func(t *testing.T) {
		app := newTestApp(&mock.Db{
			DisableTotpFunc: func(userID string) error {
				t.Error("disable must not run with a wrong code")
				return nil
			},
		})
		app.SetAuthenticator(authAs(newEnabledUser()))
		rr := doDisable(app, `{"password":"Abcd123!","totp_code":"000000"}`)
		checkResponseCode(t, rr, errorTotpInvalid)
	})

	t.Run("both factors correct", func(t *testing.T) {
		disabled := false
		app := newTestApp(&mock.Db{
			DisableTotpFunc: func(userID string) error {
				disabled = true
				return nil
			},
		})
		app.SetAuthenticator(authAs(newEnabledUser()))
		rr := doDisable(app, `{"password":"Abcd123!","totp_code":"`+validCode()+`"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if !disabled {
			t.Error("2FA was not disabled")
		}
	})
}

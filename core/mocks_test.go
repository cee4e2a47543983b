package core

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bhamail/bhamail/cache"
	"github.com/bhamail/bhamail/config"
	"github.com/bhamail/bhamail/db"
	"github.com/bhamail/bhamail/db/mock"
	"github.com/bhamail/bhamail/mail"
	"github.com/bhamail/bhamail/notify"
	"github.com/bhamail/bhamail/totp"
)

// MockValidator implements Validator for testing
type MockValidator struct {
	ContentTypeFunc func(r *http.Request, allowedType string) (error, jsonResponse)
}

func (m *MockValidator) ContentType(r *http.Request, allowedType string) (error, jsonResponse) {
	if m.ContentTypeFunc != nil {
		return m.ContentTypeFunc(r, allowedType)
	}
	return nil, jsonResponse{}
}

// MockAuthenticator implements Authenticator for testing
type MockAuthenticator struct {
	AuthenticateFunc func(r *http.Request) (*db.User, error, jsonResponse)
}

func (m *MockAuthenticator) Authenticate(r *http.Request) (*db.User, error, jsonResponse) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(r)
	}
	return nil, nil, jsonResponse{}
}

// resetSend records one SendPasswordResetEmail call.
type resetSend struct {
	email    string
	resetURL string
}

// StubMailer implements mail.MailerInterface and records sends.
type StubMailer struct {
	WelcomeErr error
	ResetErr   error
	ResetSends []resetSend
}

var _ mail.MailerInterface = (*StubMailer)(nil)

func (m *StubMailer) SendWelcomeEmail(ctx context.Context, email, firstName string) error {
	return m.WelcomeErr
}

func (m *StubMailer) SendPasswordResetEmail(ctx context.Context, email, resetURL string) error {
	m.ResetSends = append(m.ResetSends, resetSend{email: email, resetURL: resetURL})
	return m.ResetErr
}

// StubNotifier implements notify.Notifier and records notifications.
type StubNotifier struct {
	Sent []notify.Notification
}

var _ notify.Notifier = (*StubNotifier)(nil)

func (n *StubNotifier) Send(ctx context.Context, notification notify.Notification) error {
	n.Sent = append(n.Sent, notification)
	return nil
}

// Compile-time check
var _ cache.Cache[string, any] = (*mapCache)(nil)

// mapCache is a plain map-backed cache for tests. TTLs are ignored.
type mapCache struct {
	m map[string]any
}

func newMapCache() *mapCache {
	return &mapCache{m: make(map[string]any)}
}

func (c *mapCache) Get(key string) (any, bool) {
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache) Set(key string, value any, cost int64) bool {
	c.m[key] = value
	return true
}

func (c *mapCache) SetWithTTL(key string, value any, cost int64, ttl time.Duration) bool {
	c.m[key] = value
	return true
}

func (c *mapCache) Delete(key string) {
	delete(c.m, key)
}

// newTestConfig returns a default config with test signing secrets.
func newTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Jwt.AuthSecret = []byte("test-auth-secret-0123456789abcdef")
	cfg.Jwt.RefreshSecret = []byte("test-refresh-secret-0123456789ab")
	return cfg
}

// newTestApp builds an App on mocks for handler tests. Individual tests
// override the fields they care about.
func newTestApp(mockDb *mock.Db) *App {
	cfg := newTestConfig()
	app := &App{
		configProvider: config.NewProvider(cfg),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator:      NewValidator(),
		totpVerifier:   totp.NewVerifier(cfg.Totp.Issuer, cfg.Totp.Window),
		cache:          newMapCache(),
	}
	if mockDb != nil {
		app.SetDb(mockDb)
	}
	return app
}

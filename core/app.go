package core

import (
	"log/slog"

	"github.com/bhamail/bhamail/cache"
	"github.com/bhamail/bhamail/config"
	"github.com/bhamail/bhamail/db"
	"github.com/bhamail/bhamail/mail"
	"github.com/bhamail/bhamail/notify"
	"github.com/bhamail/bhamail/router"
	"github.com/bhamail/bhamail/totp"
)

// App is the application wide context.
// db connections and permanent structs should go here.
//
// All handlers and middleware have App as receiver, so the heavy
// objects (pool, cache, mailer) are created once and shared.
type App struct {
	dbAuth         db.DbAuth
	dbQueue        db.DbQueue
	router         router.Router
	cache          cache.Cache[string, any]
	configProvider *config.Provider
	logger         *slog.Logger
	notifier       notify.Notifier
	mailer         mail.MailerInterface
	totpVerifier   *totp.Verifier
	authenticator  Authenticator
	validator      Validator
}

func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Router returns the application's router instance
func (a *App) Router() router.Router {
	return a.router
}

func (a *App) SetRouter(r router.Router) {
	a.router = r
}

func (a *App) DbAuth() db.DbAuth {
	return a.dbAuth
}

func (a *App) DbQueue() db.DbQueue {
	return a.dbQueue
}

// SetDb sets the database interfaces for auth and queue
func (a *App) SetDb(dbApp db.DbApp) {
	if dbApp == nil {
		panic("DbApp cannot be nil")
	}
	a.dbAuth = dbApp
	a.dbQueue = dbApp
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) SetLogger(l *slog.Logger) {
	a.logger = l
}

func (a *App) Cache() cache.Cache[string, any] {
	return a.cache
}

func (a *App) SetCache(c cache.Cache[string, any]) {
	a.cache = c
}

func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) SetConfigProvider(provider *config.Provider) {
	a.configProvider = provider
}

func (a *App) Notifier() notify.Notifier {
	return a.notifier
}

func (a *App) SetNotifier(n notify.Notifier) {
	a.notifier = n
}

func (a *App) Mailer() mail.MailerInterface {
	return a.mailer
}

func (a *App) SetMailer(m mail.MailerInterface) {
	a.mailer = m
}

func (a *App) Totp() *totp.Verifier {
	return a.totpVerifier
}

func (a *App) SetTotp(v *totp.Verifier) {
	a.totpVerifier = v
}

func (a *App) Auth() Authenticator {
	return a.authenticator
}

// SetAuthenticator sets the authenticator implementation
func (a *App) SetAuthenticator(auth Authenticator) {
	a.authenticator = auth
}

// Validator returns the validator instance
func (a *App) Validator() Validator {
	return a.validator
}

// SetValidator sets the validator implementation
func (a *App) SetValidator(v Validator) {
	a.validator = v
}

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

type Option func(*App)

// WithDbApp sets the database implementation for auth and queue
func WithDbApp(d db.DbApp) Option {
	return func(a *App) {
		a.dbAuth = d
		a.dbQueue = d
	}
}

// WithRouter sets the router implementation
func WithRouter(r router.Router) Option {
	return func(a *App) {
		a.router = r
	}
}

// WithCache sets the cache implementation
func WithCache(c cache.Cache[string, any]) Option {
	return func(a *App) {
		a.cache = c
	}
}

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

// WithLogger sets the logger implementation
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithNotifier sets the operator notifier implementation
func WithNotifier(n notify.Notifier) Option {
	return func(a *App) {
		a.notifier = n
	}
}

// WithMailer sets the outgoing mail implementation
func WithMailer(m mail.MailerInterface) Option {
	return func(a *App) {
		a.mailer = m
	}
}

// WithTotp sets the second factor verifier
func WithTotp(v *totp.Verifier) Option {
	return func(a *App) {
		a.totpVerifier = v
	}
}

// WithAuthenticator sets the authenticator implementation
func WithAuthenticator(auth Authenticator) Option {
	return func(a *App) {
		a.authenticator = auth
	}
}

// WithValidator sets the validator implementation
func WithValidator(v Validator) Option {
	return func(a *App) {
		a.validator = v
	}
}

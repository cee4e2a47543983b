package bhamail

import (
	"fmt"

	"github.com/bhamail/bhamail/cache/ristretto"
	"github.com/bhamail/bhamail/config"
	"github.com/bhamail/bhamail/core"
	"github.com/bhamail/bhamail/core/prerouter"
	"github.com/bhamail/bhamail/mail"
	"github.com/bhamail/bhamail/notify/discord"
	"github.com/bhamail/bhamail/queue"
	"github.com/bhamail/bhamail/queue/executor"
	"github.com/bhamail/bhamail/queue/handlers"
	scl "github.com/bhamail/bhamail/queue/scheduler"
	"github.com/bhamail/bhamail/router/httprouter"
	"github.com/bhamail/bhamail/server"
	"github.com/bhamail/bhamail/totp"
	"golang.org/x/time/rate"
)

// New creates the App and Server from a config file path plus options.
// It wires the router, cache, mailer, second-factor verifier,
// authenticator and job scheduler around the provided database.
func New(configPath string, opts ...core.Option) (*core.App, *server.Server, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	configProvider := config.NewProvider(cfg)

	ticketCache, err := ristretto.New[any]()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cache: %w", err)
	}

	allOpts := []core.Option{
		core.WithConfigProvider(configProvider),
		core.WithRouter(httprouter.New()),
		core.WithCache(ticketCache),
		core.WithValidator(core.NewValidator()),
		core.WithTotp(totp.NewVerifier(cfg.Totp.Issuer, cfg.Totp.Window)),
	}
	allOpts = append(allOpts, opts...)

	app, err := core.NewApp(allOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	if app.DbAuth() == nil {
		return nil, nil, fmt.Errorf("a database is required (use WithZombiezenPool)")
	}
	if app.Logger() == nil {
		return nil, nil, fmt.Errorf("a logger is required (use WithPhusLogger or WithTextLogger)")
	}

	app.SetAuthenticator(core.NewDefaultAuthenticator(app.DbAuth(), app.Logger(), configProvider))

	if cfg.Smtp.Enabled {
		mailer, err := mail.New(configProvider)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create mailer: %w", err)
		}
		app.SetMailer(mailer)
	}

	if cfg.Notifier.Discord.Activated && app.Notifier() == nil {
		notifier, err := discord.New(discord.Options{
			WebhookURL:   cfg.Notifier.Discord.WebhookURL,
			APIRateLimit: rate.Every(cfg.Notifier.Discord.APIRateLimit.Duration),
			APIBurst:     cfg.Notifier.Discord.APIBurst,
			SendTimeout:  cfg.Notifier.Discord.SendTimeout.Duration,
		}, app.Logger())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create discord notifier: %w", err)
		}
		app.SetNotifier(notifier)
	}

	route(cfg, app)

	scheduler := setupScheduler(configProvider, app)

	handler := prerouter.NewRequestLog(app).Execute(app.Router())
	srv := server.NewServer(cfg.Server, handler, scheduler, app.Logger())

	return app, srv, nil
}

// setupScheduler initializes the job scheduler and its handler registry.
func setupScheduler(configProvider *config.Provider, app *core.App) *scl.Scheduler {
	hdls := make(map[string]executor.JobHandler)

	if app.Mailer() != nil {
		hdls[queue.JobTypeWelcomeEmail] = handlers.NewWelcomeEmailHandler(app.Mailer(), app.Logger())
	} else {
		app.Logger().Warn("smtp disabled, welcome email jobs will fail")
	}

	return scl.NewScheduler(configProvider, app.DbQueue(), executor.NewDefaultExecutor(hdls), app.Logger())
}

package config

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Config is the full application configuration. Loaded once at startup
// from a TOML file plus environment variables for secret material, then
// published through a Provider.
type Config struct {
	Server     Server     `toml:"server"`
	Jwt        Jwt        `toml:"jwt"`
	Totp       Totp       `toml:"totp"`
	Smtp       Smtp       `toml:"smtp"`
	Scheduler  Scheduler  `toml:"scheduler"`
	RateLimits RateLimits `toml:"rate_limits"`
	Notifier   Notifier   `toml:"notifier"`
	Endpoints  Endpoints  `toml:"endpoints"`
	Log        Log        `toml:"log"`
	DBFile     string     `toml:"db_file"`
}

type Server struct {
	Addr                    string   `toml:"addr"`
	BaseURL                 string   `toml:"base_url"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
}

// Jwt holds token signing material and lifetimes. The secrets are
// mandatory and come from the environment, never from the TOML file.
type Jwt struct {
	AuthSecret           []byte   `toml:"-"`
	AuthTokenDuration    Duration `toml:"auth_token_duration"`
	RefreshSecret        []byte   `toml:"-"`
	RefreshTokenDuration Duration `toml:"refresh_token_duration"`
	ResetTicketTTL       Duration `toml:"reset_ticket_ttl"`
}

type Totp struct {
	Issuer string `toml:"issuer"`
	// Window is the tolerated clock drift in 30s steps on either side.
	Window uint `toml:"window"`
}

type Smtp struct {
	Enabled     bool   `toml:"enabled"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	FromName    string `toml:"from_name"`
	FromAddress string `toml:"from_address"`
	Username    string `toml:"username"`
	Password    string `toml:"-"` // from env
}

type Scheduler struct {
	Interval              Duration `toml:"interval"`
	MaxJobsPerTick        int      `toml:"max_jobs_per_tick"`
	ConcurrencyMultiplier int      `toml:"concurrency_multiplier"`
	JobTimeout            Duration `toml:"job_timeout"`
}

type RateLimits struct {
	WelcomeEmailCooldown Duration `toml:"welcome_email_cooldown"`
}

type Notifier struct {
	Discord Discord `toml:"discord"`
}

type Discord struct {
	Activated    bool     `toml:"activated"`
	WebhookURL   string   `toml:"-"` // from env
	APIRateLimit Duration `toml:"api_rate_limit"`
	APIBurst     int      `toml:"api_burst"`
	SendTimeout  Duration `toml:"send_timeout"`
}

// Endpoints are "METHOD /path" strings, the single source of truth for
// the route table.
type Endpoints struct {
	Signup         string `toml:"signup"`
	Login          string `toml:"login"`
	Refresh        string `toml:"refresh"`
	Logout         string `toml:"logout"`
	Setup2FA       string `toml:"setup_2fa"`
	Verify2FA      string `toml:"verify_2fa"`
	Disable2FA     string `toml:"disable_2fa"`
	ForgotPassword string `toml:"forgot_password"`
	ResetPassword  string `toml:"reset_password"`
	Me             string `toml:"me"`
}

type Log struct {
	Level   LogLevel `toml:"level"`
	Request bool     `toml:"request"`
}

// Duration wraps time.Duration for TOML round-tripping ("15m", "168h").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// LogLevel wraps slog.Level for TOML ("DEBUG", "INFO", ...).
type LogLevel struct {
	slog.Level
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	return l.Level.UnmarshalText(text)
}

func (l LogLevel) MarshalText() ([]byte, error) {
	return l.Level.MarshalText()
}

// Provider hands out the current *Config and allows atomic replacement.
// Handlers must call Get per request and not cache the result across
// requests.
type Provider struct {
	cfg atomic.Pointer[Config]
}

func NewProvider(cfg *Config) *Provider {
	p := &Provider{}
	p.cfg.Store(cfg)
	return p
}

func (p *Provider) Get() *Config {
	return p.cfg.Load()
}

func (p *Provider) Update(cfg *Config) {
	p.cfg.Store(cfg)
}

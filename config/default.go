package config

import (
	"log/slog"
	"time"
)

// NewDefaultConfig creates a Config with sensible defaults. Signing
// secrets are NOT defaulted: they must come from the environment and
// their absence fails validation at startup.
func NewDefaultConfig() *Config {
	return &Config{
		DBFile: "bhamail.db",
		Server: Server{
			Addr:                    ":8080",
			BaseURL:                 "http://localhost:8080",
			ReadTimeout:             Duration{Duration: 2 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 3 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
		},
		Jwt: Jwt{
			AuthTokenDuration:    Duration{Duration: 15 * time.Minute},
			RefreshTokenDuration: Duration{Duration: 7 * 24 * time.Hour},
			ResetTicketTTL:       Duration{Duration: 1 * time.Hour},
		},
		Totp: Totp{
			Issuer: "BhaMail",
			Window: 2,
		},
		Smtp: Smtp{
			Enabled:     false,
			Host:        "smtp.gmail.com",
			Port:        587,
			FromName:    "BhaMail",
			FromAddress: "",
			Username:    "",
		},
		Scheduler: Scheduler{
			Interval:              Duration{Duration: 60 * time.Second},
			MaxJobsPerTick:        10,
			ConcurrencyMultiplier: 2,
			JobTimeout:            Duration{Duration: 5 * time.Minute},
		},
		RateLimits: RateLimits{
			WelcomeEmailCooldown: Duration{Duration: 1 * time.Hour},
		},
		Notifier: Notifier{
			Discord: Discord{
				Activated:    false,
				APIRateLimit: Duration{Duration: 2 * time.Second},
				APIBurst:     1,
				SendTimeout:  Duration{Duration: 10 * time.Second},
			},
		},
		Endpoints: Endpoints{
			Signup:         "POST /api/auth/signup",
			Login:          "POST /api/auth/login",
			Refresh:        "POST /api/auth/refresh",
			Logout:         "POST /api/auth/logout",
			Setup2FA:       "POST /api/auth/setup-2fa",
			Verify2FA:      "POST /api/auth/verify-2fa",
			Disable2FA:     "POST /api/auth/disable-2fa",
			ForgotPassword: "POST /api/auth/forgot-password",
			ResetPassword:  "POST /api/auth/reset-password",
			Me:             "GET /api/auth/me",
		},
		Log: Log{
			Level:   LogLevel{Level: slog.LevelInfo},
			Request: true,
		},
	}
}

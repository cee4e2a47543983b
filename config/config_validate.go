package config

import (
	"errors"
	"fmt"
	"strings"
)

const minSecretLength = 32

var (
	ErrMissingAuthSecret    = errors.New("auth token signing secret is unset or too short")
	ErrMissingRefreshSecret = errors.New("refresh token signing secret is unset or too short")
	ErrSameSecrets          = errors.New("auth and refresh secrets must differ")
)

// Validate checks a Config for values the server cannot run with.
// Called at startup so configuration errors surface before the first
// request instead of as HTTP 500s.
func Validate(cfg *Config) error {
	if len(cfg.Jwt.AuthSecret) < minSecretLength {
		return fmt.Errorf("%w (need at least %d bytes in %s)", ErrMissingAuthSecret, minSecretLength, EnvJwtAuthSecret)
	}
	if len(cfg.Jwt.RefreshSecret) < minSecretLength {
		return fmt.Errorf("%w (need at least %d bytes in %s)", ErrMissingRefreshSecret, minSecretLength, EnvJwtRefreshSecret)
	}
	if string(cfg.Jwt.AuthSecret) == string(cfg.Jwt.RefreshSecret) {
		return ErrSameSecrets
	}

	if cfg.Jwt.AuthTokenDuration.Duration <= 0 {
		return errors.New("auth token duration must be positive")
	}
	if cfg.Jwt.RefreshTokenDuration.Duration <= 0 {
		return errors.New("refresh token duration must be positive")
	}
	if cfg.Jwt.ResetTicketTTL.Duration <= 0 {
		return errors.New("reset ticket ttl must be positive")
	}

	if cfg.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	if cfg.Totp.Issuer == "" {
		return errors.New("totp issuer must be set")
	}

	if cfg.Scheduler.MaxJobsPerTick <= 0 {
		return errors.New("scheduler max jobs per tick must be positive")
	}
	if cfg.Scheduler.ConcurrencyMultiplier <= 0 {
		return errors.New("scheduler concurrency multiplier must be positive")
	}

	if cfg.Smtp.Enabled {
		if cfg.Smtp.Host == "" || cfg.Smtp.Port == 0 {
			return errors.New("smtp host and port must be set when smtp is enabled")
		}
		if cfg.Smtp.FromAddress == "" || !strings.Contains(cfg.Smtp.FromAddress, "@") {
			return errors.New("smtp from_address must be a valid address when smtp is enabled")
		}
	}

	if cfg.Notifier.Discord.Activated && cfg.Notifier.Discord.WebhookURL == "" {
		return fmt.Errorf("discord notifier activated but %s is unset", EnvDiscordWebhookURL)
	}

	for name, ep := range map[string]string{
		"signup": cfg.Endpoints.Signup, "login": cfg.Endpoints.Login,
		"refresh": cfg.Endpoints.Refresh, "logout": cfg.Endpoints.Logout,
		"setup_2fa": cfg.Endpoints.Setup2FA, "verify_2fa": cfg.Endpoints.Verify2FA,
		"disable_2fa": cfg.Endpoints.Disable2FA, "forgot_password": cfg.Endpoints.ForgotPassword,
		"reset_password": cfg.Endpoints.ResetPassword, "me": cfg.Endpoints.Me,
	} {
		parts := strings.SplitN(ep, " ", 2)
		if len(parts) != 2 || !strings.HasPrefix(parts[1], "/") {
			return fmt.Errorf("endpoint %s must be \"METHOD /path\", got %q", name, ep)
		}
	}

	return nil
}

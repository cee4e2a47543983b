package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Environment variable names for secret material. Secrets never live in
// the TOML file.
const (
	EnvJwtAuthSecret     = "BHAMAIL_JWT_AUTH_SECRET"
	EnvJwtRefreshSecret  = "BHAMAIL_JWT_REFRESH_SECRET"
	EnvSmtpPassword      = "BHAMAIL_SMTP_PASSWORD"
	EnvDiscordWebhookURL = "BHAMAIL_DISCORD_WEBHOOK_URL"
)

// Load builds the runtime configuration: defaults, overridden by the TOML
// file at path (if non-empty), with secrets filled from the environment.
// Validation failures here are fatal configuration errors; the process
// must not start with unusable signing secrets.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	cfg.Jwt.AuthSecret = []byte(os.Getenv(EnvJwtAuthSecret))
	cfg.Jwt.RefreshSecret = []byte(os.Getenv(EnvJwtRefreshSecret))
	cfg.Smtp.Password = os.Getenv(EnvSmtpPassword)
	cfg.Notifier.Discord.WebhookURL = os.Getenv(EnvDiscordWebhookURL)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

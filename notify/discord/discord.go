package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bhamail/bhamail/notify"
)

// Options configures the Notifier.
type Options struct {
	WebhookURL   string
	APIRateLimit rate.Limit
	APIBurst     int
	SendTimeout  time.Duration
}

type payload struct {
	Content string `json:"content"`
}

// discordMaxMessageLength is the maximum character limit for a Discord
// message. Longer messages are truncated.
const discordMaxMessageLength = 2000

// Notifier implements notify.Notifier against a Discord webhook. Safe for
// concurrent use: fields are immutable after creation or concurrency-safe
// types. Send is non-blocking and dispatches over HTTP in a goroutine.
type Notifier struct {
	opts           Options
	logger         *slog.Logger
	httpClient     *http.Client
	apiRateLimiter *rate.Limiter
}

// New creates a new Notifier.
func New(opts Options, logger *slog.Logger) (*Notifier, error) {
	if opts.WebhookURL == "" {
		return nil, fmt.Errorf("discord: WebhookURL is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("discord: logger is required")
	}

	if opts.APIRateLimit == 0 {
		opts.APIRateLimit = rate.Every(2 * time.Second)
	}
	if opts.APIBurst <= 0 {
		opts.APIBurst = 5
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}

	return &Notifier{
		opts:           opts,
		logger:         logger,
		apiRateLimiter: rate.NewLimiter(opts.APIRateLimit, opts.APIBurst),
		httpClient:     &http.Client{},
	}, nil
}

func (dn *Notifier) formatMessage(n notify.Notification) string {
	mainMessage := fmt.Sprintf("[%s] from *%s*:\n> %s\n",
		n.Type.String(),
		n.Source,
		n.Message)

	var fieldsFormatted []string
	for k, v := range n.Fields {
		if v == nil {
			continue
		}
		valStr := fmt.Sprintf("%v", v)
		if k != "" && valStr != "" {
			fieldsFormatted = append(fieldsFormatted, fmt.Sprintf("> %s: `%s`\n", k, valStr))
		}
	}

	var fieldsSection string
	if len(fieldsFormatted) > 0 {
		fieldsSection = "\n**Fields**:\n" + strings.Join(fieldsFormatted, "")
	}

	content := mainMessage + fieldsSection
	if len(content) > discordMaxMessageLength {
		return content[:discordMaxMessageLength-3] + "..."
	}
	return content
}

// Send implements notify.Notifier. It is non-blocking: it acquires a rate
// limit token and, if successful, launches a goroutine to post to Discord.
// HTTP errors during the actual send are logged, not returned.
func (dn *Notifier) Send(_ context.Context, n notify.Notification) error {
	if !dn.apiRateLimiter.Allow() {
		dn.logger.Warn("discord: API rate limit reached, dropping notification",
			"source", n.Source, "message", n.Message)
		return nil
	}

	go func(notif notify.Notification) {
		// The caller's context is not used here: the notification should
		// still go out if the originating request finishes first.
		sendCtx, cancel := context.WithTimeout(context.Background(), dn.opts.SendTimeout)
		defer cancel()

		jsonBody, err := json.Marshal(payload{Content: dn.formatMessage(notif)})
		if err != nil {
			dn.logger.Error("discord: failed to marshal payload",
				"source", notif.Source, "error", err)
			return
		}

		req, err := http.NewRequestWithContext(sendCtx, http.MethodPost, dn.opts.WebhookURL, bytes.NewBuffer(jsonBody))
		if err != nil {
			dn.logger.Error("discord: failed to create request",
				"source", notif.Source, "error", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := dn.httpClient.Do(req)
		if err != nil {
			dn.logger.Error("discord: failed to send to discord",
				"source", notif.Source, "error", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			dn.logger.Error("discord: non-2xx status from Discord",
				"status_code", resp.StatusCode, "source", notif.Source)
			if resp.StatusCode == http.StatusTooManyRequests {
				dn.logger.Warn("discord: received 429, rate limit settings may need adjustment")
			}
			return
		}

		dn.logger.Log(sendCtx, slog.LevelDebug, "discord: notification sent",
			"source", notif.Source)
	}(n)

	return nil
}

package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/bhamail/bhamail/notify"
)

// alarm sends an operator notification when a notifier is configured.
// Fields carry identifiers only, never credentials or addresses.
func (a *App) alarm(ctx context.Context, source, message string, fields map[string]any) {
	if a.notifier == nil {
		return
	}
	n := notify.Notification{
		Timestamp: time.Now(),
		Type:      notify.AlarmNotification,
		Level:     slog.LevelError,
		Source:    source,
		Message:   message,
		Fields:    fields,
	}
	if err := a.notifier.Send(ctx, n); err != nil {
		a.Logger().Error("failed to send notification", "source", source, "err", err)
	}
}

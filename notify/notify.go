package notify

import (
	"context"
	"log/slog"
	"time"
)

type Type int

const (
	AlarmNotification Type = iota
)

func (nt Type) String() string {
	switch nt {
	case AlarmNotification:
		return "Alarm"
	default:
		return "Unknown"
	}
}

// Notification is an operator-facing event: storage failures, mail
// delivery breakage, configuration problems. Never user data.
type Notification struct {
	Timestamp time.Time
	Type      Type
	Level     slog.Level
	Source    string
	Message   string
	Fields    map[string]any
}

// Notifier dispatches notifications to a backend.
// Implementations MUST be safe for concurrent use by multiple goroutines.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bhamail/bhamail/db"
	"github.com/bhamail/bhamail/mail"
	"github.com/bhamail/bhamail/queue"
)

// WelcomeEmailHandler sends the post-signup welcome mail for queued jobs.
type WelcomeEmailHandler struct {
	mailer mail.MailerInterface
	logger *slog.Logger
}

func NewWelcomeEmailHandler(mailer mail.MailerInterface, logger *slog.Logger) *WelcomeEmailHandler {
	return &WelcomeEmailHandler{mailer: mailer, logger: logger}
}

func (h *WelcomeEmailHandler) Handle(ctx context.Context, job db.Job) error {
	var payload queue.PayloadWelcomeEmail
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse welcome email payload: %w", err)
	}

	var extra queue.PayloadWelcomeEmailExtra
	if err := json.Unmarshal(job.PayloadExtra, &extra); err != nil {
		return fmt.Errorf("failed to parse welcome email payload extra: %w", err)
	}

	if err := h.mailer.SendWelcomeEmail(ctx, extra.Email, extra.FirstName); err != nil {
		return err
	}

	h.logger.Info("📧 welcome email sent", "user_id", payload.UserID)
	return nil
}

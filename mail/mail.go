package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/bhamail/bhamail/config"
	"github.com/domodwyer/mailyak/v3"
)

// MailerInterface is the sending surface callers depend on, so tests can
// substitute a stub for the SMTP mailer.
type MailerInterface interface {
	SendWelcomeEmail(ctx context.Context, email, firstName string) error
	SendPasswordResetEmail(ctx context.Context, email, resetURL string) error
}

// Mailer handles sending emails over SMTP. Safe for concurrent use: each
// send builds a fresh mailyak client from the current config.
type Mailer struct {
	configProvider *config.Provider
}

var _ MailerInterface = (*Mailer)(nil)

// New creates a new Mailer instance
func New(provider *config.Provider) (*Mailer, error) {
	cfg := provider.Get()
	if !cfg.Smtp.Enabled {
		return nil, fmt.Errorf("mail: smtp is not enabled")
	}
	return &Mailer{configProvider: provider}, nil
}

func (m *Mailer) newMail() (*mailyak.MailYak, *config.Smtp) {
	cfg := m.configProvider.Get()
	smtpCfg := cfg.Smtp
	mail := mailyak.New(fmt.Sprintf("%s:%d", smtpCfg.Host, smtpCfg.Port),
		smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host))
	mail.From(smtpCfg.FromAddress)
	mail.FromName(smtpCfg.FromName)
	return mail, &smtpCfg
}

// send dispatches the mail in a goroutine so the caller's context governs
// how long we wait.
func (m *Mailer) send(ctx context.Context, mail *mailyak.MailYak) error {
	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// SendWelcomeEmail sends the post-signup welcome message. Callers treat
// failures as best-effort: a lost welcome mail never fails a signup.
func (m *Mailer) SendWelcomeEmail(ctx context.Context, email, firstName string) error {
	mail, _ := m.newMail()
	mail.To(email)
	mail.Subject("Welcome to BhaMail")
	mail.HTML().Set(fmt.Sprintf(`
		<h1>Welcome, %s!</h1>
		<p>Your BhaMail account is ready. Sign in to start sending and receiving mail.</p>
	`, firstName))

	if err := m.send(ctx, mail); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

// SendPasswordResetEmail sends a reset link containing the one-time
// ticket token. Unlike the welcome mail, delivery failure here must
// surface to the caller: without the mail the reset is useless.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, resetURL string) error {
	mail, _ := m.newMail()
	mail.To(email)
	mail.Subject("Reset your BhaMail password")
	mail.HTML().Set(fmt.Sprintf(`
		<h1>Password Reset</h1>
		<p>Click the link below to reset your password. The link expires in one hour.</p>
		<p><a href="%s">Reset Password</a></p>
		<p>If you did not request this, you can ignore this message.</p>
	`, resetURL))

	if err := m.send(ctx, mail); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

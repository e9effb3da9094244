// Package smtp delivers composed emails through an SMTP relay.
package smtp

import (
	"context"
	"fmt"

	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender implements mailer.Sender over SMTP using gomail
type Sender struct {
	dialer *gomail.Dialer
	cfg    *config.SMTPConfig
	logger *zap.Logger
}

// NewSender creates an SMTP sender from the given configuration
func NewSender(cfg *config.SMTPConfig, logger *zap.Logger) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers one email. The delivery runs in its own goroutine so the
// context deadline and the configured send timeout are both honored; gomail
// itself has no context support.
func (s *Sender) Send(ctx context.Context, recipient, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Warn("smtp delivery failed",
				zap.String("recipient", recipient),
				zap.Error(err))
			return fmt.Errorf("smtp delivery: %w", err)
		}
		s.logger.Info("email delivered",
			zap.String("recipient", recipient),
			zap.String("subject", subject))
		return nil
	case <-ctx.Done():
		s.logger.Warn("smtp delivery timed out",
			zap.String("recipient", recipient),
			zap.Error(ctx.Err()))
		return fmt.Errorf("smtp delivery: %w", ctx.Err())
	}
}

// Ensure Sender implements mailer.Sender
var _ mailer.Sender = (*Sender)(nil)

package mailer

import "context"

// Sender delivers a composed email to the outside world. The SMTP
// implementation lives in infrastructure; tests substitute their own.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

package service

import "context"

// Email is a rendered message ready for delivery.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer defines the interface for outbound email delivery. Implementations
// are expected to be safe for concurrent use by the mail worker.
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

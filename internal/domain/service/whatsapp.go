package service

import "context"

// WhatsAppSender sends text messages through a WhatsApp business account.
// An empty recipient means the platform's default recipient.
type WhatsAppSender interface {
	SendText(ctx context.Context, recipient, message string) error
}

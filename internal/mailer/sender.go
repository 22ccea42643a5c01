// Package mailer renders quote notifications (HTML body plus PDF attachment)
// and hands them to a Sender. It backs the email service.
package mailer

import "context"

// Attachment is a file attached to an outgoing email.
type Attachment struct {
	FileName string
	Content  []byte
}

// Message is one fully rendered email.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers rendered messages. SMTPSender is the production implementation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind selects the template and recipient of a notification.
type NotificationKind string

const (
	// KindVendorConfirmation is sent to the vendor that submitted the quote.
	KindVendorConfirmation NotificationKind = "vendor_confirmation"
	// KindOwnerAlert is sent to the marketplace owner's inbox.
	KindOwnerAlert NotificationKind = "owner_alert"
)

// NotificationRequest is everything the renderer needs to build and send
// one email.
type NotificationRequest struct {
	Kind       NotificationKind
	QuoteID    int64
	Recipient  string
	VendorName string
	Quote      QuotePayload
}

// DeliveryResult is the renderer's answer. Success=false is a logical
// failure (missing SMTP credentials, SMTP rejected the message), not a
// transport failure.
type DeliveryResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	EmailID string `json:"email_id,omitempty"`
}

// NotificationOutcome is what a caller learns about one notification.
// Skipped is set when the vendor has opted out of email.
type NotificationOutcome struct {
	Success   bool   `json:"success"`
	Skipped   bool   `json:"skipped,omitempty"`
	Message   string `json:"message"`
	Recipient string `json:"recipient,omitempty"`
	EmailID   string `json:"email_id,omitempty"`
}

// EmailStatus reports both notifications sent after a quote is created.
type EmailStatus struct {
	VendorEmail NotificationOutcome `json:"vendor_email"`
	OwnerEmail  NotificationOutcome `json:"owner_email"`
}

// EmailLogEntry records one notification handed to the renderer.
type EmailLogEntry struct {
	ID        uuid.UUID        `json:"id"`
	QuoteID   int64            `json:"quote_id"`
	Kind      NotificationKind `json:"kind"`
	Recipient string           `json:"recipient"`
	Status    string           `json:"status"` // "sent" or "failed"
	Message   string           `json:"message"`
	SentAt    time.Time        `json:"sent_at"`
}

// Email log statuses.
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

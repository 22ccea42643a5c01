package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/metrics"
	"github.com/pkordes/bluelotus-quotes/internal/repo"
)

// Renderer turns a notification request into a sent (or simulated) email.
// *notify.Client implements it over HTTP.
type Renderer interface {
	Render(ctx context.Context, req domain.NotificationRequest) (domain.DeliveryResult, error)
}

// DispatcherConfig carries the Dispatcher's settings.
type DispatcherConfig struct {
	// OwnerEmail receives owner alerts. Empty disables them with ErrBadRequest.
	OwnerEmail string
	// Timeout bounds each call to the renderer. Defaults to 30s.
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Dispatcher builds notification payloads from committed quotes and hands
// them to the Renderer, recording every attempt in the email log.
type Dispatcher struct {
	quotes   repo.QuoteRepo
	logs     repo.EmailLogRepo
	renderer Renderer
	owner    string
	timeout  time.Duration
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// NewDispatcher constructs a Dispatcher. logs may be nil to skip email logging.
func NewDispatcher(quotes repo.QuoteRepo, logs repo.EmailLogRepo, r Renderer, cfg DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		quotes:   quotes,
		logs:     logs,
		renderer: r,
		owner:    cfg.OwnerEmail,
		timeout:  cfg.Timeout,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
	}
	if d.timeout <= 0 {
		d.timeout = 30 * time.Second
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	return d
}

// Outcome messages for notifications that never reached the renderer.
const (
	msgVendorEmailDisabled = "Email notifications disabled for this vendor"
	msgVendorNoEmail       = "No email address found for this vendor"
	msgOwnerNotConfigured  = "Owner notification email is not configured"
)

// SendVendorConfirmation emails the vendor a confirmation of quoteID.
// A vendor with notifications disabled yields a skipped outcome, not an
// error. A vendor without a contact email yields domain.ErrBadRequest.
func (d *Dispatcher) SendVendorConfirmation(ctx context.Context, quoteID int64) (domain.NotificationOutcome, error) {
	snap, err := d.quotes.GetSnapshot(ctx, quoteID)
	if err != nil {
		return domain.NotificationOutcome{}, fmt.Errorf("service.Dispatcher.SendVendorConfirmation: %w", err)
	}
	out, err := d.sendVendor(ctx, snap)
	if err != nil {
		return out, fmt.Errorf("service.Dispatcher.SendVendorConfirmation: %w", err)
	}
	return out, nil
}

// SendOwnerAlert emails the configured owner address about quoteID.
// Returns domain.ErrBadRequest when no owner address is configured.
func (d *Dispatcher) SendOwnerAlert(ctx context.Context, quoteID int64) (domain.NotificationOutcome, error) {
	snap, err := d.quotes.GetSnapshot(ctx, quoteID)
	if err != nil {
		return domain.NotificationOutcome{}, fmt.Errorf("service.Dispatcher.SendOwnerAlert: %w", err)
	}
	out, err := d.sendOwner(ctx, snap)
	if err != nil {
		return out, fmt.Errorf("service.Dispatcher.SendOwnerAlert: %w", err)
	}
	return out, nil
}

// History returns every recorded notification attempt for quoteID, oldest
// first. Returns domain.ErrNotFound for an unknown quote.
func (d *Dispatcher) History(ctx context.Context, quoteID int64) ([]domain.EmailLogEntry, error) {
	if _, err := d.quotes.GetSnapshot(ctx, quoteID); err != nil {
		return nil, fmt.Errorf("service.Dispatcher.History: %w", err)
	}
	if d.logs == nil {
		return []domain.EmailLogEntry{}, nil
	}
	entries, err := d.logs.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("service.Dispatcher.History: %w", err)
	}
	if entries == nil {
		entries = []domain.EmailLogEntry{}
	}
	return entries, nil
}

// DispatchAll loads the quote once and sends both notifications concurrently.
// Neither send can cancel or block the other. Failures are logged and folded
// into the returned status; DispatchAll itself never fails.
func (d *Dispatcher) DispatchAll(ctx context.Context, quoteID int64) domain.EmailStatus {
	var status domain.EmailStatus

	snap, err := d.quotes.GetSnapshot(ctx, quoteID)
	if err != nil {
		d.log.ErrorContext(ctx, "load quote for notifications", "quote_id", quoteID, "error", err)
		failed := domain.NotificationOutcome{Message: "Failed to load quote: " + err.Error()}
		status.VendorEmail, status.OwnerEmail = failed, failed
		return status
	}

	// A plain errgroup.Group, not WithContext: one failure must not cancel the other send.
	var g errgroup.Group
	g.Go(func() error {
		out, err := d.sendVendor(ctx, snap)
		status.VendorEmail = foldOutcome(out, err)
		return nil
	})
	g.Go(func() error {
		out, err := d.sendOwner(ctx, snap)
		status.OwnerEmail = foldOutcome(out, err)
		return nil
	})
	_ = g.Wait()

	return status
}

// foldOutcome turns an error into a failed outcome carrying its message.
func foldOutcome(out domain.NotificationOutcome, err error) domain.NotificationOutcome {
	if err == nil {
		return out
	}
	out.Success = false
	out.Message = err.Error()
	return out
}

func (d *Dispatcher) sendVendor(ctx context.Context, snap domain.QuoteSnapshot) (domain.NotificationOutcome, error) {
	kind := domain.KindVendorConfirmation
	if !snap.EmailEnabled {
		d.metrics.Notification(string(kind), "skipped")
		d.log.InfoContext(ctx, "vendor confirmation skipped", "quote_id", snap.QuoteID, "vendor", snap.VendorName)
		return domain.NotificationOutcome{Skipped: true, Message: msgVendorEmailDisabled}, nil
	}
	if snap.ContactEmail == "" {
		d.metrics.Notification(string(kind), "failed")
		return domain.NotificationOutcome{}, fmt.Errorf("%w: %s", domain.ErrBadRequest, msgVendorNoEmail)
	}
	return d.render(ctx, kind, snap.ContactEmail, snap)
}

func (d *Dispatcher) sendOwner(ctx context.Context, snap domain.QuoteSnapshot) (domain.NotificationOutcome, error) {
	kind := domain.KindOwnerAlert
	if d.owner == "" {
		d.metrics.Notification(string(kind), "failed")
		return domain.NotificationOutcome{}, fmt.Errorf("%w: %s", domain.ErrBadRequest, msgOwnerNotConfigured)
	}
	return d.render(ctx, kind, d.owner, snap)
}

// render calls the renderer under the dispatch timeout and records the attempt.
func (d *Dispatcher) render(ctx context.Context, kind domain.NotificationKind, recipient string,
	snap domain.QuoteSnapshot) (domain.NotificationOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	logger := d.log.With("quote_id", snap.QuoteID, "kind", kind, "recipient", recipient)

	res, err := d.renderer.Render(ctx, domain.NotificationRequest{
		Kind:       kind,
		QuoteID:    snap.QuoteID,
		Recipient:  recipient,
		VendorName: snap.VendorName,
		Quote:      snap.Payload(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			d.metrics.Notification(string(kind), "unavailable")
			logger.WarnContext(ctx, "email service unreachable", "error", err)
		} else {
			d.metrics.Notification(string(kind), "failed")
			logger.ErrorContext(ctx, "email service call failed", "error", err)
		}
		return domain.NotificationOutcome{Recipient: recipient}, err
	}

	status := domain.EmailStatusSent
	if res.Success {
		d.metrics.Notification(string(kind), "sent")
		logger.InfoContext(ctx, "notification sent", "email_id", res.EmailID)
	} else {
		status = domain.EmailStatusFailed
		d.metrics.Notification(string(kind), "failed")
		logger.WarnContext(ctx, "email service reported failure", "message", res.Message)
	}
	d.record(context.WithoutCancel(ctx), domain.EmailLogEntry{
		QuoteID:   snap.QuoteID,
		Kind:      kind,
		Recipient: recipient,
		Status:    status,
		Message:   res.Message,
	})

	return domain.NotificationOutcome{
		Success:   res.Success,
		Message:   res.Message,
		Recipient: recipient,
		EmailID:   res.EmailID,
	}, nil
}

func (d *Dispatcher) record(ctx context.Context, entry domain.EmailLogEntry) {
	if d.logs == nil {
		return
	}
	if _, err := d.logs.Record(ctx, entry); err != nil {
		d.log.WarnContext(ctx, "record email log", "quote_id", entry.QuoteID, "kind", entry.Kind, "error", err)
	}
}

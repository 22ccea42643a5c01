package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/metrics"
)

// Config controls how the Service delivers mail.
type Config struct {
	// SimulationMode renders everything but never calls the Sender.
	SimulationMode bool
	// Configured reports whether SMTP credentials are present.
	Configured bool
	// Location is used for owner-notification timestamps. Defaults to UTC.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service renders the vendor confirmation and owner notification emails.
// Logical failures (missing credentials, SMTP rejection) are reported in the
// DeliveryResult, never as errors.
type Service struct {
	sender  Sender
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService creates a Service. sender may be nil when SimulationMode is set
// or credentials are missing. m may be nil.
func NewService(sender Sender, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sender: sender, cfg: cfg, logger: logger, metrics: m}
}

// SendVendorConfirmation emails the vendor a confirmation of quote q with the
// PDF attached.
func (s *Service) SendVendorConfirmation(ctx context.Context, to, vendorName string, q domain.QuotePayload) domain.DeliveryResult {
	kind := string(domain.KindVendorConfirmation)
	emailID := fmt.Sprintf("quote_%d", q.QuoteID)

	pdf, err := GenerateQuotePDF(q)
	if err != nil {
		return s.fail(ctx, kind, q.QuoteID, "Failed to send email", err)
	}
	if s.cfg.SimulationMode {
		s.logger.InfoContext(ctx, "email simulated", "kind", kind, "quote_id", q.QuoteID, "to", to, "pdf_bytes", len(pdf))
		s.metrics.Email(kind, "simulated")
		return domain.DeliveryResult{
			Success: true,
			Message: "Email simulation successful - PDF generated, SMTP skipped",
			EmailID: emailID + "_simulation",
		}
	}
	if !s.cfg.Configured || s.sender == nil {
		s.metrics.Email(kind, "unconfigured")
		return domain.DeliveryResult{Message: "Email service not configured (missing SMTP credentials)"}
	}

	html, err := renderEmailTemplate("vendor_confirmation.html", s.emailData(q, vendorName, "Quote Confirmation"))
	if err != nil {
		return s.fail(ctx, kind, q.QuoteID, "Failed to send email", err)
	}
	msg := Message{
		To:          to,
		Subject:     fmt.Sprintf(subjectVendorConfirmationFmt, q.QuoteID),
		HTML:        html,
		Attachments: []Attachment{{FileName: attachmentName(q.QuoteID), Content: pdf}},
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return s.fail(ctx, kind, q.QuoteID, "Failed to send email", err)
	}

	s.logger.InfoContext(ctx, "email sent", "kind", kind, "quote_id", q.QuoteID, "to", to)
	s.metrics.Email(kind, "sent")
	return domain.DeliveryResult{Success: true, Message: "Email sent successfully", EmailID: emailID}
}

// SendOwnerNotification emails the marketplace owner about quote q with the
// same PDF attached.
func (s *Service) SendOwnerNotification(ctx context.Context, to, vendorName string, q domain.QuotePayload) domain.DeliveryResult {
	kind := string(domain.KindOwnerAlert)
	emailID := fmt.Sprintf("owner_notification_quote_%d", q.QuoteID)

	pdf, err := GenerateQuotePDF(q)
	if err != nil {
		return s.fail(ctx, kind, q.QuoteID, "Failed to send owner notification email", err)
	}
	if s.cfg.SimulationMode {
		s.logger.InfoContext(ctx, "email simulated", "kind", kind, "quote_id", q.QuoteID, "to", to, "pdf_bytes", len(pdf))
		s.metrics.Email(kind, "simulated")
		return domain.DeliveryResult{
			Success: true,
			Message: "Owner notification email simulation successful - PDF generated, SMTP skipped",
			EmailID: emailID + "_simulation",
		}
	}
	if !s.cfg.Configured || s.sender == nil {
		s.metrics.Email(kind, "unconfigured")
		return domain.DeliveryResult{Message: "Email service not configured (missing SMTP credentials)"}
	}

	now := s.cfg.Now().In(s.cfg.Location)
	data := s.emailData(q, vendorName, "New Quote Received")
	data.SubmittedAt = now.Format("January 02, 2006 03:04 PM MST")
	html, err := renderEmailTemplate("owner_notification.html", data)
	if err != nil {
		return s.fail(ctx, kind, q.QuoteID, "Failed to send owner notification email", err)
	}
	msg := Message{
		To:          to,
		Subject:     fmt.Sprintf(subjectOwnerNotificationFmt, vendorName, q.QuoteID, now.Format(ownerSubjectTimeLayout)),
		HTML:        html,
		Attachments: []Attachment{{FileName: attachmentName(q.QuoteID), Content: pdf}},
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return s.fail(ctx, kind, q.QuoteID, "Failed to send owner notification email", err)
	}

	s.logger.InfoContext(ctx, "email sent", "kind", kind, "quote_id", q.QuoteID, "to", to)
	s.metrics.Email(kind, "sent")
	return domain.DeliveryResult{Success: true, Message: "Owner notification email sent successfully", EmailID: emailID}
}

func (s *Service) fail(ctx context.Context, kind string, quoteID int64, prefix string, err error) domain.DeliveryResult {
	s.logger.ErrorContext(ctx, "email failed", "kind", kind, "quote_id", quoteID, "error", err)
	s.metrics.Email(kind, "failed")
	return domain.DeliveryResult{Message: fmt.Sprintf("%s: %v", prefix, err)}
}

func attachmentName(quoteID int64) string {
	return fmt.Sprintf("quote_%d_confirmation.pdf", quoteID)
}

func (s *Service) emailData(q domain.QuotePayload, vendorName, heading string) quoteEmailData {
	if vendorName == "" {
		vendorName = q.VendorName
	}
	data := quoteEmailData{
		baseEmailData:   baseEmailData{Title: heading, Heading: heading},
		VendorName:      vendorName,
		QuoteID:         q.QuoteID,
		CountryOfOrigin: q.CountryOfOrigin,
		FishType:        q.FishType,
		ValidUntil:      longDate(q.QuoteValidTill),
		Notes:           q.Notes,
		PriceNegotiable: yesNo(q.PriceNegotiable),
		ExclusiveOffer:  yesNo(q.ExclusiveOffer),
	}
	for _, d := range q.Destinations {
		data.Destinations = append(data.Destinations, destinationLine{
			Destination: d.Destination,
			Airfreight:  moneyFloat(d.AirfreightPerKg),
			ArrivalDate: d.ArrivalDate,
			MinWeight:   number(d.MinWeight),
			MaxWeight:   number(d.MaxWeight),
		})
	}
	for _, sz := range q.Sizes {
		data.Sizes = append(data.Sizes, sizeLine{
			FishType:    sz.FishType,
			CutName:     sz.CutName,
			GradeName:   sz.GradeName,
			WeightRange: sz.WeightRange,
			PricePerKg:  moneyFloat(sz.PricePerKg),
			Quantity:    sz.Quantity,
		})
	}
	for _, b := range Breakdown(q) {
		t := breakdownTable{Destination: b.Destination, ArrivalDate: b.ArrivalDate}
		if b.HasWeightRange() {
			t.WeightRange = b.MinWeight.String() + " - " + b.MaxWeight.String() + " kg"
		}
		for _, l := range b.Lines {
			t.Lines = append(t.Lines, breakdownLine{
				FishType:    l.FishType,
				CutName:     l.CutName,
				GradeName:   l.GradeName,
				WeightRange: l.WeightRange,
				Airfreight:  money(l.Airfreight),
				Price:       money(l.Price),
				Total:       money(l.Total),
			})
		}
		data.Breakdown = append(data.Breakdown, t)
	}
	return data
}

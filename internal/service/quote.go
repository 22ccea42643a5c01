package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/metrics"
	"github.com/pkordes/bluelotus-quotes/internal/repo"
)

// Notifier sends the post-create notifications. *Dispatcher implements it.
type Notifier interface {
	DispatchAll(ctx context.Context, quoteID int64) domain.EmailStatus
}

// QuoteService validates and persists quote submissions and triggers the
// notification fan-out once the quote is committed.
type QuoteService struct {
	quotes   repo.QuoteRepo
	notifier Notifier
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// NewQuoteService constructs a QuoteService. notifier may be nil, in which case
// no notifications are sent and receipts carry no email status.
func NewQuoteService(quotes repo.QuoteRepo, notifier Notifier, log *slog.Logger, m *metrics.Metrics) *QuoteService {
	if log == nil {
		log = slog.Default()
	}
	return &QuoteService{quotes: quotes, notifier: notifier, log: log, metrics: m}
}

// Submit validates sub, creates the quote atomically and then dispatches both
// notifications. Notification failures never fail the submission; they are
// reported in the receipt's EmailStatus.
func (s *QuoteService) Submit(ctx context.Context, sub domain.QuoteSubmission) (domain.QuoteReceipt, error) {
	sub, err := normalizeSubmission(sub)
	if err != nil {
		s.metrics.QuoteCreated("rejected")
		return domain.QuoteReceipt{}, fmt.Errorf("service.QuoteService.Submit: %w", err)
	}

	id, err := s.quotes.Create(ctx, sub)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			s.metrics.QuoteCreated("rejected")
		} else {
			s.metrics.QuoteCreated("error")
		}
		return domain.QuoteReceipt{}, fmt.Errorf("service.QuoteService.Submit: %w", err)
	}
	s.metrics.QuoteCreated("created")
	s.log.InfoContext(ctx, "quote created",
		"quote_id", id,
		"vendor", sub.VendorName,
		"destinations", len(sub.Destinations),
		"products", len(sub.Products),
	)

	receipt := domain.QuoteReceipt{QuoteID: id}
	if s.notifier != nil {
		// The quote is committed; a cancelled request must not abort delivery.
		status := s.notifier.DispatchAll(context.WithoutCancel(ctx), id)
		receipt.EmailStatus = &status
	}
	return receipt, nil
}

// Get returns the committed quote with every reference resolved to its name.
func (s *QuoteService) Get(ctx context.Context, id int64) (domain.QuoteSnapshot, error) {
	if id <= 0 {
		return domain.QuoteSnapshot{}, fmt.Errorf("service.QuoteService.Get: %w: quote id must be positive", domain.ErrValidation)
	}
	snap, err := s.quotes.GetSnapshot(ctx, id)
	if err != nil {
		return domain.QuoteSnapshot{}, fmt.Errorf("service.QuoteService.Get: %w", err)
	}
	return snap, nil
}

// Delete removes a quote. Its destinations, products and email log go with it.
func (s *QuoteService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("service.QuoteService.Delete: %w: quote id must be positive", domain.ErrValidation)
	}
	if err := s.quotes.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.QuoteService.Delete: %w", err)
	}
	s.log.InfoContext(ctx, "quote deleted", "quote_id", id)
	return nil
}

// Column limits: quantity is INTEGER and every amount is NUMERIC(12, 2).
const maxQuantity = math.MaxInt32

var maxAmount = decimal.New(1, 10)

// amountOverflows reports whether d, rounded to cents, no longer fits NUMERIC(12, 2).
func amountOverflows(d decimal.Decimal) bool {
	return d.Round(2).Abs().GreaterThanOrEqual(maxAmount)
}

// normalizeSubmission trims names, resolves destination codes and enforces
// the business rules that need no database access.
func normalizeSubmission(sub domain.QuoteSubmission) (domain.QuoteSubmission, error) {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if sub.ID <= 0 {
		addf("id must be a positive integer")
	}
	sub.VendorName = strings.TrimSpace(sub.VendorName)
	if sub.VendorName == "" {
		addf("vendor_name is required")
	}
	if sub.ValidTill.IsZero() {
		addf("quote_valid_till is required")
	}
	if len(sub.Destinations) == 0 {
		addf("at least one destination is required")
	}
	if len(sub.Products) == 0 {
		addf("at least one product is required")
	}

	dests := make([]domain.DestinationSubmission, len(sub.Destinations))
	for i, d := range sub.Destinations {
		code, err := d.ResolvedCode()
		if err != nil {
			detail, ok := domain.Detail(err, domain.ErrValidation)
			if !ok {
				detail = err.Error()
			}
			addf("destinations[%d]: %s", i, detail)
		}
		d.Code = code
		d.Label = strings.TrimSpace(d.Label)
		if d.AirfreightPerKg.IsNegative() {
			addf("destinations[%d]: airfreight_per_kg must not be negative", i)
		}
		if d.MinWeight.IsNegative() {
			addf("destinations[%d]: min_weight must not be negative", i)
		}
		for _, f := range []struct {
			name  string
			value decimal.Decimal
		}{
			{"airfreight_per_kg", d.AirfreightPerKg},
			{"min_weight", d.MinWeight},
			{"max_weight", d.MaxWeight},
		} {
			if amountOverflows(f.value) {
				addf("destinations[%d]: %s exceeds 9999999999.99", i, f.name)
			}
		}
		if d.MinWeight.GreaterThan(d.MaxWeight) {
			addf("destinations[%d]: min_weight must not exceed max_weight", i)
		}
		if d.ArrivalDate.IsZero() {
			addf("destinations[%d]: arrival_date is required", i)
		}
		dests[i] = d
	}
	sub.Destinations = dests

	products := make([]domain.ProductSubmission, len(sub.Products))
	for i, p := range sub.Products {
		p.FishCommonName = strings.TrimSpace(p.FishCommonName)
		p.CutName = strings.TrimSpace(p.CutName)
		p.GradeName = strings.TrimSpace(p.GradeName)
		p.WeightRange = strings.TrimSpace(p.WeightRange)
		if p.FishCommonName == "" || p.CutName == "" || p.GradeName == "" {
			addf("products[%d]: fish, cut and grade are required", i)
		}
		if p.PricePerKg.IsNegative() {
			addf("products[%d]: price_per_kg must not be negative", i)
		}
		if amountOverflows(p.PricePerKg) {
			addf("products[%d]: price_per_kg exceeds 9999999999.99", i)
		}
		if p.Quantity <= 0 {
			addf("products[%d]: quantity must be positive", i)
		} else if p.Quantity > maxQuantity {
			addf("products[%d]: quantity must not exceed %d", i, maxQuantity)
		}
		products[i] = p
	}
	sub.Products = products

	if len(problems) > 0 {
		return sub, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
	}
	return sub, nil
}

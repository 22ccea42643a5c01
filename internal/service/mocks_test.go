package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/repo"
	"github.com/pkordes/bluelotus-quotes/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs.

type mockVendorRepo struct {
	getByCode func(ctx context.Context, code string) (domain.VendorProfile, error)
}

func (m *mockVendorRepo) GetByCode(ctx context.Context, code string) (domain.VendorProfile, error) {
	return m.getByCode(ctx, code)
}

type mockDictionaryRepo struct {
	listByCategory func(ctx context.Context, category string) ([]domain.DictionaryEntry, error)
}

func (m *mockDictionaryRepo) ListByCategory(ctx context.Context, category string) ([]domain.DictionaryEntry, error) {
	return m.listByCategory(ctx, category)
}

type mockFishRepo struct {
	listSpecies func(ctx context.Context) ([]domain.FishSpecies, error)
	listCuts    func(ctx context.Context) ([]domain.FishCut, error)
	listGrades  func(ctx context.Context) ([]domain.FishGrade, error)
}

func (m *mockFishRepo) ListSpecies(ctx context.Context) ([]domain.FishSpecies, error) {
	return m.listSpecies(ctx)
}
func (m *mockFishRepo) ListCuts(ctx context.Context) ([]domain.FishCut, error) {
	return m.listCuts(ctx)
}
func (m *mockFishRepo) ListGrades(ctx context.Context) ([]domain.FishGrade, error) {
	return m.listGrades(ctx)
}

type mockQuoteRepo struct {
	create      func(ctx context.Context, sub domain.QuoteSubmission) (int64, error)
	getSnapshot func(ctx context.Context, id int64) (domain.QuoteSnapshot, error)
	delete      func(ctx context.Context, id int64) error
}

func (m *mockQuoteRepo) Create(ctx context.Context, sub domain.QuoteSubmission) (int64, error) {
	return m.create(ctx, sub)
}
func (m *mockQuoteRepo) GetSnapshot(ctx context.Context, id int64) (domain.QuoteSnapshot, error) {
	return m.getSnapshot(ctx, id)
}
func (m *mockQuoteRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// mockEmailLogRepo collects recorded entries; it is safe for concurrent use
// because DispatchAll records from two goroutines.
type mockEmailLogRepo struct {
	mu      sync.Mutex
	entries []domain.EmailLogEntry
	err     error
}

func (m *mockEmailLogRepo) Record(_ context.Context, e domain.EmailLogEntry) (domain.EmailLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.EmailLogEntry{}, m.err
	}
	m.entries = append(m.entries, e)
	return e, nil
}
func (m *mockEmailLogRepo) ListByQuote(_ context.Context, quoteID int64) ([]domain.EmailLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.EmailLogEntry
	for _, e := range m.entries {
		if e.QuoteID == quoteID {
			out = append(out, e)
		}
	}
	return out, nil
}

// mockRenderer answers per notification kind.
type mockRenderer struct {
	render func(ctx context.Context, req domain.NotificationRequest) (domain.DeliveryResult, error)
}

func (m *mockRenderer) Render(ctx context.Context, req domain.NotificationRequest) (domain.DeliveryResult, error) {
	return m.render(ctx, req)
}

type mockNotifier struct {
	dispatchAll func(ctx context.Context, quoteID int64) domain.EmailStatus
}

func (m *mockNotifier) DispatchAll(ctx context.Context, quoteID int64) domain.EmailStatus {
	return m.dispatchAll(ctx, quoteID)
}

// compile-time checks.
var (
	_ repo.VendorRepo     = (*mockVendorRepo)(nil)
	_ repo.DictionaryRepo = (*mockDictionaryRepo)(nil)
	_ repo.FishRepo       = (*mockFishRepo)(nil)
	_ repo.QuoteRepo      = (*mockQuoteRepo)(nil)
	_ repo.EmailLogRepo   = (*mockEmailLogRepo)(nil)
	_ service.Renderer    = (*mockRenderer)(nil)
	_ service.Notifier    = (*mockNotifier)(nil)
)

// ---- fixtures ---------------------------------------------------------------

func validSubmission() domain.QuoteSubmission {
	return domain.QuoteSubmission{
		ID:         42,
		VendorName: "Acme Foods",
		ValidTill:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Destinations: []domain.DestinationSubmission{{
			Label:           "Boston (BOS)",
			AirfreightPerKg: decimal.RequireFromString("2.25"),
			ArrivalDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			MinWeight:       decimal.NewFromInt(100),
			MaxWeight:       decimal.NewFromInt(500),
		}},
		Products: []domain.ProductSubmission{{
			FishCommonName: "Salmon",
			CutName:        "Fillet",
			GradeName:      "A",
			PricePerKg:     decimal.RequireFromString("10.5"),
			Quantity:       100,
		}},
	}
}

func snapshotFixture() domain.QuoteSnapshot {
	valid := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return domain.QuoteSnapshot{
		QuoteID:      42,
		VendorName:   "Acme Foods",
		VendorCode:   "ACME",
		Country:      "Norway",
		ContactEmail: "sales@acme.example",
		EmailEnabled: true,
		ValidTill:    &valid,
		FishType:     "Salmon",
		CreatedAt:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Destinations: []domain.DestinationLine{{
			Destination:     "Boston",
			AirfreightPerKg: decimal.RequireFromString("2.25"),
			ArrivalDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			MinWeight:       decimal.NewFromInt(100),
			MaxWeight:       decimal.NewFromInt(500),
		}},
		Products: []domain.ProductLine{{
			FishType:   "Salmon",
			CutName:    "Fillet",
			GradeName:  "A",
			PricePerKg: decimal.RequireFromString("10.5"),
			Quantity:   100,
		}},
	}
}

func snapshotRepo(snap domain.QuoteSnapshot) *mockQuoteRepo {
	return &mockQuoteRepo{
		getSnapshot: func(_ context.Context, id int64) (domain.QuoteSnapshot, error) {
			if id != snap.QuoteID {
				return domain.QuoteSnapshot{}, domain.NotFound("quote", "x")
			}
			return snap, nil
		},
	}
}

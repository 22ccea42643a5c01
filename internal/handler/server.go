// Package handler implements the HTTP handlers for the Blue Lotus Foods API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, reference.go, quote.go, notification.go) but all share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/spec"
)

// ReferenceServicer defines the read-only lookups the reference handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching the database or service layer.
type ReferenceServicer interface {
	ListDictionary(ctx context.Context, category string) ([]domain.DictionaryEntry, error)
	GetVendor(ctx context.Context, code string) (domain.VendorProfile, error)
	ListFishTypes(ctx context.Context) ([]domain.FishSpecies, error)
	ListFishCuts(ctx context.Context) ([]domain.FishCut, error)
	ListFishGrades(ctx context.Context) ([]domain.FishGrade, error)
}

// QuoteServicer defines the quote operations the quote handlers depend on.
type QuoteServicer interface {
	Submit(ctx context.Context, sub domain.QuoteSubmission) (domain.QuoteReceipt, error)
	Get(ctx context.Context, id int64) (domain.QuoteSnapshot, error)
	Delete(ctx context.Context, id int64) error
}

// NotificationServicer defines the explicit (re)send operations and the
// per-quote delivery history.
type NotificationServicer interface {
	SendVendorConfirmation(ctx context.Context, quoteID int64) (domain.NotificationOutcome, error)
	SendOwnerAlert(ctx context.Context, quoteID int64) (domain.NotificationOutcome, error)
	History(ctx context.Context, quoteID int64) ([]domain.EmailLogEntry, error)
}

// Server serves every API endpoint. Wire it in main.go by mounting Routes().
type Server struct {
	reference     ReferenceServicer
	quotes        QuoteServicer
	notifications NotificationServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(reference ReferenceServicer, quotes QuoteServicer, notifications NotificationServicer) *Server {
	return &Server{reference: reference, quotes: quotes, notifications: notifications}
}

// Routes returns a chi router with every endpoint registered.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.GetRoot)
	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Get("/dictionary/{category}", s.ListDictionary)
	r.Get("/vendors/{vendor_code}", s.GetVendor)

	r.Route("/fish", func(r chi.Router) {
		r.Get("/types", s.ListFishTypes)
		r.Get("/cut", s.ListFishCuts)
		r.Get("/grade", s.ListFishGrades)
	})

	r.Route("/quotes", func(r chi.Router) {
		r.Post("/", s.CreateQuote)
		r.Get("/{quote_id}", s.GetQuote)
		r.Delete("/{quote_id}", s.DeleteQuote)
		r.Get("/{quote_id}/emails", s.ListQuoteEmails)
		r.Post("/{quote_id}/email", s.SendVendorEmail)
		r.Post("/{quote_id}/owner-notification", s.SendOwnerNotification)
	})

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

// Package emailhandler implements the HTTP surface of the email service.
package emailhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/httpx"
)

// ServiceName identifies this service in health responses.
const ServiceName = "bluelotusfoods-email"

// Mailer renders and delivers the two notification emails.
// *mailer.Service satisfies it.
type Mailer interface {
	SendVendorConfirmation(ctx context.Context, to, vendorName string, q domain.QuotePayload) domain.DeliveryResult
	SendOwnerNotification(ctx context.Context, to, vendorName string, q domain.QuotePayload) domain.DeliveryResult
}

// Server serves every email service endpoint.
type Server struct {
	mailer Mailer
}

// NewServer constructs the Server.
func NewServer(m Mailer) *Server {
	return &Server{mailer: m}
}

// Routes returns a chi router with every endpoint registered.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.GetRoot)
	r.Get("/health", s.GetHealth)

	r.Route("/email", func(r chi.Router) {
		r.Get("/health", s.GetHealth)
		r.Post("/vendor-notification", s.VendorNotification)
		r.Post("/owner-notification", s.OwnerNotification)
	})

	r.Get("/test/test-email", s.TestEmail)
	r.Post("/test/test-email", s.TestEmail)

	return r
}

// GetRoot handles GET /.
func (s *Server) GetRoot(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Blue Lotus Foods Email Service",
		"status":  "running",
		"version": "1.0.0",
	})
}

// GetHealth handles GET /health and GET /email/health.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
	})
}

// VendorNotification handles POST /email/vendor-notification.
// Delivery failures are reported as 200 with success=false.
func (s *Server) VendorNotification(w http.ResponseWriter, r *http.Request) {
	var req VendorNotificationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	res := s.mailer.SendVendorConfirmation(r.Context(), req.VendorEmail, req.VendorName, req.quote())
	httpx.WriteJSON(w, http.StatusOK, res)
}

// OwnerNotification handles POST /email/owner-notification.
func (s *Server) OwnerNotification(w http.ResponseWriter, r *http.Request) {
	var req OwnerNotificationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	res := s.mailer.SendOwnerNotification(r.Context(), req.OwnerEmail, req.VendorName, req.quote())
	httpx.WriteJSON(w, http.StatusOK, res)
}

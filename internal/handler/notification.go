package handler

import (
	"net/http"

	"github.com/pkordes/bluelotus-quotes/internal/httpx"
)

// VendorEmailResponse is the body of POST /quotes/{quote_id}/email.
// VendorEmail is omitted when the vendor has email disabled.
type VendorEmailResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	QuoteID     int64  `json:"quote_id"`
	VendorEmail string `json:"vendor_email,omitempty"`
	EmailID     string `json:"email_id,omitempty"`
}

// OwnerNotificationResponse is the body of POST /quotes/{quote_id}/owner-notification.
type OwnerNotificationResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	QuoteID    int64  `json:"quote_id"`
	OwnerEmail string `json:"owner_email"`
	EmailID    string `json:"email_id,omitempty"`
}

// SendVendorEmail handles POST /quotes/{quote_id}/email.
// A delivery the email service reports as failed is still a 200 with
// success=false; only lookup and transport errors change the status.
func (s *Server) SendVendorEmail(w http.ResponseWriter, r *http.Request) {
	id, err := quoteIDParam(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	out, err := s.notifications.SendVendorConfirmation(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, VendorEmailResponse{
		Success:     out.Success,
		Message:     out.Message,
		QuoteID:     id,
		VendorEmail: out.Recipient,
		EmailID:     out.EmailID,
	})
}

// SendOwnerNotification handles POST /quotes/{quote_id}/owner-notification.
func (s *Server) SendOwnerNotification(w http.ResponseWriter, r *http.Request) {
	id, err := quoteIDParam(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	out, err := s.notifications.SendOwnerAlert(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, OwnerNotificationResponse{
		Success:    out.Success,
		Message:    out.Message,
		QuoteID:    id,
		OwnerEmail: out.Recipient,
		EmailID:    out.EmailID,
	})
}

// ListQuoteEmails handles GET /quotes/{quote_id}/emails.
func (s *Server) ListQuoteEmails(w http.ResponseWriter, r *http.Request) {
	id, err := quoteIDParam(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	entries, err := s.notifications.History(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}

package emailhandler

import (
	"net/http"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/httpx"
)

const testRecipient = "test@example.com"

// sampleQuote is the minimal fixed quote sent by /test/test-email.
func sampleQuote() domain.QuotePayload {
	return domain.QuotePayload{
		QuoteID:         1,
		VendorName:      "Test Vendor",
		VendorCode:      "TEST",
		CountryOfOrigin: "USA",
		QuoteValidTill:  "2025-09-21T00:00:00",
		FishType:        "Test Fish",
		Destinations:    []domain.DestinationPayload{},
		Sizes:           []domain.SizePayload{},
		Notes:           "Test notes",
		CreatedAt:       "2025-09-21T10:00:00",
	}
}

// TestEmail handles GET and POST /test/test-email. It always answers 200
// with the delivery verdict.
func (s *Server) TestEmail(w http.ResponseWriter, r *http.Request) {
	q := sampleQuote()
	httpx.WriteJSON(w, http.StatusOK, s.mailer.SendVendorConfirmation(r.Context(), testRecipient, q.VendorName, q))
}

package emailhandler

import "github.com/pkordes/bluelotus-quotes/internal/domain"

// VendorNotificationRequest is the body of POST /email/vendor-notification.
type VendorNotificationRequest struct {
	QuoteID     int64               `json:"quote_id" validate:"required,gt=0"`
	VendorEmail string              `json:"vendor_email" validate:"required,email"`
	VendorName  string              `json:"vendor_name" validate:"required"`
	QuoteData   domain.QuotePayload `json:"quote_data"`
}

// OwnerNotificationRequest is the body of POST /email/owner-notification.
type OwnerNotificationRequest struct {
	QuoteID    int64               `json:"quote_id" validate:"required,gt=0"`
	OwnerEmail string              `json:"owner_email" validate:"required,email"`
	VendorName string              `json:"vendor_name" validate:"required"`
	QuoteData  domain.QuotePayload `json:"quote_data"`
}

// quote returns the payload to render. The top-level quote_id wins over any
// id inside quote_data.
func (r VendorNotificationRequest) quote() domain.QuotePayload {
	q := r.QuoteData
	q.QuoteID = r.QuoteID
	return q
}

func (r OwnerNotificationRequest) quote() domain.QuotePayload {
	q := r.QuoteData
	q.QuoteID = r.QuoteID
	return q
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/httpx"
)

// CreateQuoteRequest is the body of POST /quotes.
type CreateQuoteRequest struct {
	ID              int64                `json:"id" validate:"required"`
	VendorName      string               `json:"vendor_name" validate:"required"`
	QuoteValidTill  openapi_types.Date   `json:"quote_valid_till"`
	Notes           string               `json:"notes"`
	PriceNegotiable bool                 `json:"price_negotiable"`
	ExclusiveOffer  bool                 `json:"exclusive_offer"`
	Destinations    []DestinationRequest `json:"destinations" validate:"dive"`
	Products        []ProductRequest     `json:"products" validate:"dive"`
}

// DestinationRequest is one destination of a CreateQuoteRequest.
// Destination is the display label, e.g. "Boston (BOS)". DestinationCode,
// when present, is used instead of parsing the label.
type DestinationRequest struct {
	Destination     string             `json:"destination" validate:"required"`
	DestinationCode string             `json:"destination_code,omitempty"`
	AirfreightPerKg decimal.Decimal    `json:"airfreight_per_kg"`
	ArrivalDate     openapi_types.Date `json:"arrival_date"`
	MinWeight       decimal.Decimal    `json:"min_weight"`
	MaxWeight       decimal.Decimal    `json:"max_weight"`
}

// ProductRequest is one product line of a CreateQuoteRequest.
type ProductRequest struct {
	FishCommonName string          `json:"fish_common_name" validate:"required"`
	WeightRange    string          `json:"weight_range"`
	CutName        string          `json:"cut_name" validate:"required"`
	GradeName      string          `json:"grade_name" validate:"required"`
	PricePerKg     decimal.Decimal `json:"price_per_kg"`
	Quantity       int             `json:"quantity"`
}

// CreateQuoteResponse is the 201 body of POST /quotes. QuoteID and ID carry
// the same value; both keys are kept for existing clients.
type CreateQuoteResponse struct {
	Message     string              `json:"message"`
	QuoteID     int64               `json:"quote_id"`
	ID          int64               `json:"id"`
	EmailStatus *domain.EmailStatus `json:"email_status,omitempty"`
}

// CreateQuote handles POST /quotes.
func (s *Server) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var body CreateQuoteRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	receipt, err := s.quotes.Submit(r.Context(), requestToSubmission(body))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, CreateQuoteResponse{
		Message:     "Quote created successfully",
		QuoteID:     receipt.QuoteID,
		ID:          receipt.QuoteID,
		EmailStatus: receipt.EmailStatus,
	})
}

// GetQuote handles GET /quotes/{quote_id}.
// The body has the same shape as the quote_data sent to the email service.
func (s *Server) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := quoteIDParam(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	snap, err := s.quotes.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snap.Payload())
}

// DeleteQuote handles DELETE /quotes/{quote_id}.
func (s *Server) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, err := quoteIDParam(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := s.quotes.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// quoteIDParam binds the {quote_id} path parameter as an int64.
func quoteIDParam(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "quote_id", chi.URLParam(r, "quote_id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, fmt.Errorf("%w: invalid quote_id: %v", domain.ErrValidation, err)
	}
	return id, nil
}

// requestToSubmission converts a CreateQuoteRequest body into a domain.QuoteSubmission.
func requestToSubmission(body CreateQuoteRequest) domain.QuoteSubmission {
	sub := domain.QuoteSubmission{
		ID:              body.ID,
		VendorName:      body.VendorName,
		ValidTill:       body.QuoteValidTill.Time,
		Notes:           body.Notes,
		PriceNegotiable: body.PriceNegotiable,
		ExclusiveOffer:  body.ExclusiveOffer,
		Destinations:    make([]domain.DestinationSubmission, len(body.Destinations)),
		Products:        make([]domain.ProductSubmission, len(body.Products)),
	}
	for i, d := range body.Destinations {
		sub.Destinations[i] = domain.DestinationSubmission{
			Label:           d.Destination,
			Code:            d.DestinationCode,
			AirfreightPerKg: d.AirfreightPerKg,
			ArrivalDate:     d.ArrivalDate.Time,
			MinWeight:       d.MinWeight,
			MaxWeight:       d.MaxWeight,
		}
	}
	for i, p := range body.Products {
		sub.Products[i] = domain.ProductSubmission{
			FishCommonName: p.FishCommonName,
			WeightRange:    p.WeightRange,
			CutName:        p.CutName,
			GradeName:      p.GradeName,
			PricePerKg:     p.PricePerKg,
			Quantity:       p.Quantity,
		}
	}
	return sub
}

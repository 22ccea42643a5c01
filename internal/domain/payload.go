package domain

import (
	"time"
)

// QuotePayload is the JSON shape of a quote sent to the email service.
// Money and weights are plain numbers and dates are strings, so the renderer
// never needs the database types.
type QuotePayload struct {
	QuoteID         int64                `json:"quote_id"`
	VendorName      string               `json:"vendor_name"`
	VendorCode      string               `json:"vendor_code"`
	CountryOfOrigin string               `json:"country_of_origin"`
	QuoteValidTill  string               `json:"quote_valid_till"`
	FishType        string               `json:"fish_type"`
	Destinations    []DestinationPayload `json:"destinations"`
	Sizes           []SizePayload        `json:"sizes"`
	Notes           string               `json:"notes"`
	PriceNegotiable bool                 `json:"price_negotiable"`
	ExclusiveOffer  bool                 `json:"exclusive_offer"`
	CreatedAt       string               `json:"created_at"`
}

// DestinationPayload is one destination row of a QuotePayload.
type DestinationPayload struct {
	Destination     string  `json:"destination"`
	AirfreightPerKg float64 `json:"airfreight_per_kg"`
	ArrivalDate     string  `json:"arrival_date"`
	MinWeight       float64 `json:"min_weight"`
	MaxWeight       float64 `json:"max_weight"`
}

// SizePayload is one product row of a QuotePayload.
type SizePayload struct {
	FishType    string  `json:"fish_type"`
	CutName     string  `json:"cut_name"`
	GradeName   string  `json:"grade_name"`
	WeightRange string  `json:"weight_range"`
	PricePerKg  float64 `json:"price_per_kg"`
	Quantity    int     `json:"quantity"`
}

// Date layouts used on the wire.
const (
	DateLayout      = "2006-01-02"
	ValidTillLayout = "2006-01-02T00:00:00"
)

// Payload converts the snapshot into the renderer payload.
func (s QuoteSnapshot) Payload() QuotePayload {
	p := QuotePayload{
		QuoteID:         s.QuoteID,
		VendorName:      s.VendorName,
		VendorCode:      s.VendorCode,
		CountryOfOrigin: s.Country,
		FishType:        s.FishType,
		Notes:           s.Notes,
		PriceNegotiable: s.PriceNegotiable,
		ExclusiveOffer:  s.ExclusiveOffer,
		Destinations:    make([]DestinationPayload, 0, len(s.Destinations)),
		Sizes:           make([]SizePayload, 0, len(s.Products)),
	}
	if s.ValidTill != nil {
		p.QuoteValidTill = s.ValidTill.Format(ValidTillLayout)
	}
	if !s.CreatedAt.IsZero() {
		p.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}

	for _, d := range s.Destinations {
		p.Destinations = append(p.Destinations, DestinationPayload{
			Destination:     d.Destination,
			AirfreightPerKg: d.AirfreightPerKg.InexactFloat64(),
			ArrivalDate:     d.ArrivalDate.Format(DateLayout),
			MinWeight:       d.MinWeight.InexactFloat64(),
			MaxWeight:       d.MaxWeight.InexactFloat64(),
		})
	}
	for _, pr := range s.Products {
		p.Sizes = append(p.Sizes, SizePayload{
			FishType:    pr.FishType,
			CutName:     pr.CutName,
			GradeName:   pr.GradeName,
			WeightRange: pr.WeightRange,
			PricePerKg:  pr.PricePerKg.InexactFloat64(),
			Quantity:    pr.Quantity,
		})
	}
	return p
}

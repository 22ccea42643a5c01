package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteSubmission is a vendor's quote as entered by a person: the vendor,
// destinations and products are named by display labels, not ids.
// ID is chosen by the caller; the system never generates quote ids.
type QuoteSubmission struct {
	ID              int64
	VendorName      string
	ValidTill       time.Time
	Notes           string
	PriceNegotiable bool
	ExclusiveOffer  bool
	Destinations    []DestinationSubmission
	Products        []ProductSubmission
}

// DestinationSubmission is one shipping destination of a submission.
// Code is the dictionary code; when empty it is parsed from Label.
type DestinationSubmission struct {
	Label           string
	Code            string
	AirfreightPerKg decimal.Decimal
	ArrivalDate     time.Time
	MinWeight       decimal.Decimal
	MaxWeight       decimal.Decimal
}

// ProductSubmission is one priced product line of a submission.
type ProductSubmission struct {
	FishCommonName string
	WeightRange    string
	CutName        string
	GradeName      string
	PricePerKg     decimal.Decimal
	Quantity       int
}

// QuoteSnapshot is a committed quote re-read with every reference resolved
// to its display name. It is what notifications are built from.
type QuoteSnapshot struct {
	QuoteID         int64
	VendorName      string
	VendorCode      string
	Country         string
	ContactEmail    string
	EmailEnabled    bool
	ValidTill       *time.Time
	FishType        string // distinct species names, comma separated, or "N/A"
	Notes           string
	PriceNegotiable bool
	ExclusiveOffer  bool
	CreatedAt       time.Time
	Destinations    []DestinationLine
	Products        []ProductLine
}

// DestinationLine is a quote destination with its dictionary name.
type DestinationLine struct {
	Destination     string
	AirfreightPerKg decimal.Decimal
	ArrivalDate     time.Time
	MinWeight       decimal.Decimal
	MaxWeight       decimal.Decimal
}

// ProductLine is a quote product with species, cut and grade names.
type ProductLine struct {
	FishType    string
	CutName     string
	GradeName   string
	WeightRange string
	PricePerKg  decimal.Decimal
	Quantity    int
}

// QuoteReceipt is returned to the submitter after a quote has been committed.
// EmailStatus is nil when no notifications were attempted.
type QuoteReceipt struct {
	QuoteID     int64
	EmailStatus *EmailStatus
}

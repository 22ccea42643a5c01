package mailer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
)

// BreakdownLine is one product's landed price at one destination.
type BreakdownLine struct {
	FishType    string
	CutName     string
	GradeName   string
	WeightRange string
	Airfreight  decimal.Decimal
	Price       decimal.Decimal
	Total       decimal.Decimal
}

// DestinationBreakdown prices every product of a quote at one destination.
type DestinationBreakdown struct {
	Destination string
	ArrivalDate string
	MinWeight   decimal.Decimal
	MaxWeight   decimal.Decimal
	Lines       []BreakdownLine
}

// HasWeightRange reports whether both weight bounds are set.
func (d DestinationBreakdown) HasWeightRange() bool {
	return !d.MinWeight.IsZero() && !d.MaxWeight.IsZero()
}

// Breakdown computes airfreight + price per kg for each destination and
// product pair. It returns nil unless the quote has both destinations and
// products.
func Breakdown(q domain.QuotePayload) []DestinationBreakdown {
	if len(q.Destinations) == 0 || len(q.Sizes) == 0 {
		return nil
	}
	out := make([]DestinationBreakdown, 0, len(q.Destinations))
	for _, dest := range q.Destinations {
		freight := decimal.NewFromFloat(dest.AirfreightPerKg)
		b := DestinationBreakdown{
			Destination: dest.Destination,
			ArrivalDate: dest.ArrivalDate,
			MinWeight:   decimal.NewFromFloat(dest.MinWeight),
			MaxWeight:   decimal.NewFromFloat(dest.MaxWeight),
			Lines:       make([]BreakdownLine, 0, len(q.Sizes)),
		}
		for _, size := range q.Sizes {
			price := decimal.NewFromFloat(size.PricePerKg)
			b.Lines = append(b.Lines, BreakdownLine{
				FishType:    size.FishType,
				CutName:     size.CutName,
				GradeName:   size.GradeName,
				WeightRange: size.WeightRange,
				Airfreight:  freight,
				Price:       price,
				Total:       freight.Add(price),
			})
		}
		out = append(out, b)
	}
	return out
}

// money formats d as dollars with two decimals, e.g. "$12.75".
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// moneyFloat formats a payload amount as dollars with two decimals.
func moneyFloat(f float64) string {
	return money(decimal.NewFromFloat(f))
}

// number formats a payload quantity without trailing zeros, e.g. "100" or "12.5".
func number(f float64) string {
	return decimal.NewFromFloat(f).String()
}

// payloadTimeLayouts are tried in order when reading payload timestamps.
var payloadTimeLayouts = []string{
	time.RFC3339,
	domain.ValidTillLayout,
	domain.DateLayout,
}

// parsePayloadTime reads a payload date or timestamp.
func parsePayloadTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range payloadTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// longDate renders "2025-07-01T00:00:00" as "July 01, 2025". Unparseable
// input is returned unchanged.
func longDate(s string) string {
	t, ok := parsePayloadTime(s)
	if !ok {
		return s
	}
	return t.Format("January 02, 2006")
}

// longDateTime renders a timestamp as "June 01, 2025 09:00 AM".
func longDateTime(s string) string {
	t, ok := parsePayloadTime(s)
	if !ok {
		return s
	}
	return t.Format("January 02, 2006 03:04 PM")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

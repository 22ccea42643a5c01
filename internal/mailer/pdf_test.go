package mailer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/mailer"
)

func TestGenerateQuotePDF(t *testing.T) {
	doc, err := mailer.GenerateQuotePDF(quoteFixture())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateQuotePDF_UnparseableDatesAndNoRows(t *testing.T) {
	doc, err := mailer.GenerateQuotePDF(domain.QuotePayload{
		QuoteID:        1,
		QuoteValidTill: "soon",
		CreatedAt:      "",
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestBreakdown(t *testing.T) {
	q := quoteFixture()
	q.Destinations = append(q.Destinations, domain.DestinationPayload{
		Destination: "New York (JFK)", AirfreightPerKg: 3.1, ArrivalDate: "2025-06-21",
	})
	q.Sizes = append(q.Sizes, domain.SizePayload{FishType: "Salmon", CutName: "Whole", GradeName: "B", PricePerKg: 0.2, Quantity: 5})

	got := mailer.Breakdown(q)

	require.Len(t, got, 2)
	require.Len(t, got[0].Lines, 2)
	assert.Equal(t, "12.75", got[0].Lines[0].Total.StringFixed(2))
	assert.Equal(t, "2.45", got[0].Lines[1].Total.StringFixed(2))
	assert.Equal(t, "3.30", got[1].Lines[1].Total.StringFixed(2))
	assert.True(t, got[0].HasWeightRange())
	assert.False(t, got[1].HasWeightRange())
}

func TestBreakdown_NeedsDestinationsAndSizes(t *testing.T) {
	q := quoteFixture()
	q.Sizes = nil
	assert.Nil(t, mailer.Breakdown(q))

	q = quoteFixture()
	q.Destinations = nil
	assert.Nil(t, mailer.Breakdown(q))
}

package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	subjectVendorConfirmationFmt = "Quote Confirmation #%d - Blue Lotus Foods"
	subjectOwnerNotificationFmt  = "New Quote Message - %s - quote #%d - %s"
	ownerSubjectTimeLayout       = "01/02/2006 03:04 PM"
)

type baseEmailData struct {
	Title   string
	Heading string
}

type quoteEmailData struct {
	baseEmailData
	VendorName      string
	QuoteID         int64
	CountryOfOrigin string
	FishType        string
	ValidUntil      string
	SubmittedAt     string
	Destinations    []destinationLine
	Sizes           []sizeLine
	Breakdown       []breakdownTable
	Notes           string
	PriceNegotiable string
	ExclusiveOffer  string
}

type destinationLine struct {
	Destination string
	Airfreight  string
	ArrivalDate string
	MinWeight   string
	MaxWeight   string
}

type sizeLine struct {
	FishType    string
	CutName     string
	GradeName   string
	WeightRange string
	PricePerKg  string
	Quantity    int
}

type breakdownTable struct {
	Destination string
	ArrivalDate string
	WeightRange string
	Lines       []breakdownLine
}

type breakdownLine struct {
	FishType    string
	CutName     string
	GradeName   string
	WeightRange string
	Airfreight  string
	Price       string
	Total       string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/quote_details.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

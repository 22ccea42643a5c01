package mailer

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
)

// ── Colour palette ──────────────────────────────────────────────────────

var (
	colorTitle     = &props.Color{Red: 31, Green: 78, Blue: 121}   // #1f4e79
	colorHeading   = &props.Color{Red: 45, Green: 90, Blue: 160}   // #2d5aa0
	colorTableHead = &props.Color{Red: 68, Green: 114, Blue: 196}  // #4472c4
	colorSummary   = &props.Color{Red: 30, Green: 64, Blue: 175}   // #1e40af
	colorLabel     = &props.Color{Red: 240, Green: 240, Blue: 240} // #f0f0f0
	colorBeige     = &props.Color{Red: 245, Green: 245, Blue: 220}
	colorAlt       = &props.Color{Red: 249, Green: 250, Blue: 251} // #f9fafb
	colorWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorText      = &props.Color{Red: 51, Green: 51, Blue: 51}
	colorBorder    = &props.Color{Red: 200, Green: 200, Blue: 200}
)

// GenerateQuotePDF renders the quote confirmation PDF attached to both emails.
func GenerateQuotePDF(q domain.QuotePayload) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(20).
		WithTopMargin(20).
		WithRightMargin(20).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(buildFooter()); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(row.New(12).Add(
		col.New(12).Add(text.New("VENDOR QUOTE CONFIRMATION", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Color: colorTitle,
		})),
	))
	m.AddRows(row.New(4))

	m.AddRows(buildQuoteInfo(q)...)
	m.AddRows(row.New(8))

	if len(q.Destinations) > 0 {
		m.AddRows(buildDestinationsTable(q.Destinations)...)
		m.AddRows(row.New(8))
	}

	if len(q.Sizes) > 0 {
		m.AddRows(buildProductsTable(q.Sizes)...)
		m.AddRows(row.New(8))
	}

	if breakdown := Breakdown(q); len(breakdown) > 0 {
		m.AddRows(sectionHeading("QUOTE SUMMARY"))
		for _, b := range breakdown {
			m.AddRows(buildBreakdown(b)...)
			m.AddRows(row.New(6))
		}
	}

	m.AddRows(buildAdditionalInfo(q)...)

	if q.Notes != "" {
		m.AddRows(row.New(4))
		m.AddRows(sectionHeading("NOTES"))
		m.AddRows(row.New(12).Add(
			col.New(12).Add(text.New(q.Notes, props.Text{Size: 9, Color: colorText})),
		))
	}

	m.AddRows(row.New(10))
	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("Thank you for your quote submission!", props.Text{Size: 10, Color: colorText}))),
		row.New(6).Add(col.New(12).Add(text.New("Blue Lotus Foods Team", props.Text{Size: 10, Style: fontstyle.Bold, Color: colorText}))),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func sectionHeading(title string) core.Row {
	return row.New(9).Add(
		col.New(12).Add(text.New(title, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Color: colorHeading,
		})),
	)
}

// ── Quote information ───────────────────────────────────────────────────

func buildQuoteInfo(q domain.QuotePayload) []core.Row {
	pairs := [][2]string{
		{"Quote ID:", strconv.FormatInt(q.QuoteID, 10)},
		{"Vendor:", q.VendorName},
		{"Country of Origin:", q.CountryOfOrigin},
		{"Valid Until:", longDate(q.QuoteValidTill)},
		{"Fish Type:", q.FishType},
		{"Date Created:", longDateTime(q.CreatedAt)},
	}
	rows := make([]core.Row, 0, len(pairs))
	for _, p := range pairs {
		if p[1] == "" {
			p[1] = "-"
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(p[0], props.Text{Size: 10, Style: fontstyle.Bold, Color: colorText, Top: 1.5, Left: 2})).
				WithStyle(&props.Cell{BackgroundColor: colorLabel}),
			col.New(8).Add(text.New(p[1], props.Text{Size: 10, Color: colorText, Top: 1.5, Left: 2})),
		))
	}
	return rows
}

// ── Tables ──────────────────────────────────────────────────────────────

var (
	headerText = props.Text{Size: 9, Style: fontstyle.Bold, Color: colorWhite, Align: align.Center, Top: 2}
	cellText   = props.Text{Size: 9, Color: colorText, Align: align.Center, Top: 1.5}
)

func headerRow(cols []int, labels []string, bg *props.Color) core.Row {
	cs := make([]core.Col, len(labels))
	for i, l := range labels {
		cs[i] = col.New(cols[i]).Add(text.New(l, headerText))
	}
	return row.New(8).Add(cs...).WithStyle(&props.Cell{
		BackgroundColor: bg,
		BorderType:      border.Top | border.Bottom,
		BorderColor:     colorBorder,
	})
}

func bodyRow(cols []int, values []string, style props.Text, bg *props.Color) core.Row {
	cs := make([]core.Col, len(values))
	for i, v := range values {
		cs[i] = col.New(cols[i]).Add(text.New(v, style))
	}
	return row.New(7).Add(cs...).WithStyle(&props.Cell{
		BackgroundColor: bg,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	})
}

func buildDestinationsTable(dests []domain.DestinationPayload) []core.Row {
	cols := []int{4, 2, 2, 2, 2}
	rows := []core.Row{
		sectionHeading("DESTINATIONS & LOGISTICS"),
		headerRow(cols, []string{"Destination", "Airfreight/Kg", "Arrival Date", "Min Weight", "Max Weight"}, colorTableHead),
	}
	for _, d := range dests {
		rows = append(rows, bodyRow(cols, []string{
			d.Destination,
			moneyFloat(d.AirfreightPerKg),
			d.ArrivalDate,
			number(d.MinWeight),
			number(d.MaxWeight),
		}, cellText, colorBeige))
	}
	return rows
}

func buildProductsTable(sizes []domain.SizePayload) []core.Row {
	cols := []int{2, 2, 2, 2, 2, 2}
	rows := []core.Row{
		sectionHeading("PRODUCT DETAILS & PRICING"),
		headerRow(cols, []string{"Fish Type", "Cut", "Grade", "Weight Range", "Price/Kg", "Quantity"}, colorTableHead),
	}
	for _, s := range sizes {
		rows = append(rows, bodyRow(cols, []string{
			s.FishType,
			s.CutName,
			s.GradeName,
			s.WeightRange,
			moneyFloat(s.PricePerKg),
			strconv.Itoa(s.Quantity),
		}, cellText, colorBeige))
	}
	return rows
}

func buildBreakdown(b DestinationBreakdown) []core.Row {
	cols := []int{2, 2, 1, 2, 2, 1, 2}
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(
			fmt.Sprintf("%s - Arrival: %s", b.Destination, b.ArrivalDate),
			props.Text{Size: 11, Style: fontstyle.Bold, Color: colorText},
		))),
		headerRow(cols, []string{"Fish", "Cut", "Grade", "Wt/Fish (Kg up)", "Airfreight/kg", "Price/kg", "Total/kg"}, colorSummary),
	}
	for i, l := range b.Lines {
		bg := colorAlt
		if i%2 == 1 {
			bg = colorWhite
		}
		rows = append(rows, bodyRow(cols, []string{
			l.FishType,
			l.CutName,
			l.GradeName,
			l.WeightRange,
			money(l.Airfreight),
			money(l.Price),
			money(l.Total),
		}, cellText, bg))
	}
	if b.HasWeightRange() {
		rows = append(rows, row.New(7).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Weight Range: %s - %s kg", b.MinWeight.String(), b.MaxWeight.String()),
			props.Text{Size: 9, Color: colorText, Top: 2},
		))))
	}
	return rows
}

// ── Additional information ──────────────────────────────────────────────

func buildAdditionalInfo(q domain.QuotePayload) []core.Row {
	rows := []core.Row{sectionHeading("ADDITIONAL INFORMATION")}
	if q.PriceNegotiable {
		rows = append(rows, infoLine("- Price is negotiable"))
	}
	if q.ExclusiveOffer {
		rows = append(rows, infoLine("- This is an exclusive offer"))
	}
	return rows
}

func infoLine(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{Size: 10, Color: colorText})))
}

// ── Footer (registered, repeats on every page) ──────────────────────────

func buildFooter() core.Row {
	return row.New(10).Add(
		col.New(12).Add(text.New("Blue Lotus Foods LLC", props.Text{
			Size:  7,
			Color: colorText,
			Align: align.Center,
			Top:   4,
		})),
	).WithStyle(&props.Cell{BorderType: border.Top, BorderColor: colorLabel})
}

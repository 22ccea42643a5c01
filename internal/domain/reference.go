// Package domain contains the core data types for the quote intake services.
// It is imported by every other internal package (repo, service, handler,
// mailer) and holds no I/O.
package domain

import "strings"

// CategoryDestination is the dictionary category used to resolve quote
// destinations.
const CategoryDestination = "DESTINATION"

// Vendor is a seafood supplier that submits quotes.
// Vendors are deactivated rather than deleted; inactive vendors are never
// resolvable by name or code.
type Vendor struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Country      string `json:"country"`
	ContactEmail string `json:"-"`
	Active       bool   `json:"-"`
	EmailEnabled bool   `json:"-"`
}

// VendorProfile is a vendor together with the advisory id the next quote
// should use. NextQuoteID is max(quote.id)+1, or 1 when there are no quotes.
type VendorProfile struct {
	Vendor
	NextQuoteID int64 `json:"nextquoteid"`
}

// DictionaryEntry is a category-scoped code/name pair, e.g. an airport in the
// DESTINATION category.
type DictionaryEntry struct {
	ID          int64   `json:"id"`
	Category    string  `json:"-"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// NormalizeCategory upper-cases and trims a dictionary category so that
// "destination" and "DESTINATION" address the same entries.
func NormalizeCategory(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}

// FishSpecies is a species vendors can quote. Only active species are listed
// or resolvable.
type FishSpecies struct {
	ID             int64   `json:"id"`
	CommonName     string  `json:"common_name"`
	ScientificName *string `json:"scientific_name"`
}

// FishCut is a processing cut such as "Fillet" or "Whole".
type FishCut struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FishGrade is a quality grade such as "A".
type FishGrade struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

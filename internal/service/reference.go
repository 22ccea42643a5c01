// Package service contains the business logic for the quote intake API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/repo"
)

// ReferenceService serves the read-only reference listings.
// Every listing treats an empty result as domain.ErrNotFound.
type ReferenceService struct {
	vendors    repo.VendorRepo
	dictionary repo.DictionaryRepo
	fish       repo.FishRepo
}

// NewReferenceService constructs a ReferenceService backed by the provided repos.
func NewReferenceService(vendors repo.VendorRepo, dictionary repo.DictionaryRepo, fish repo.FishRepo) *ReferenceService {
	return &ReferenceService{vendors: vendors, dictionary: dictionary, fish: fish}
}

// ListDictionary returns the active entries of category. The category is
// upper-cased and trimmed first, so "destination" and "DESTINATION" match.
// A blank category is an unknown one and never reaches the database.
func (s *ReferenceService) ListDictionary(ctx context.Context, category string) ([]domain.DictionaryEntry, error) {
	category = domain.NormalizeCategory(category)
	if category == "" {
		return nil, fmt.Errorf("service.ReferenceService.ListDictionary: %w", domain.NotFound("dictionary entries", category))
	}

	entries, err := s.dictionary.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("service.ReferenceService.ListDictionary: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.NotFound("dictionary entries", category)
	}
	return entries, nil
}

// GetVendor returns the active vendor with code plus the advisory next quote id.
// Vendor codes are stored upper-case, so the lookup upper-cases its input.
func (s *ReferenceService) GetVendor(ctx context.Context, code string) (domain.VendorProfile, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.VendorProfile{}, fmt.Errorf("service.ReferenceService.GetVendor: %w", domain.NotFound("vendor", code))
	}
	v, err := s.vendors.GetByCode(ctx, code)
	if err != nil {
		return domain.VendorProfile{}, fmt.Errorf("service.ReferenceService.GetVendor: %w", err)
	}
	return v, nil
}

// ListFishTypes returns the active species in insertion order.
func (s *ReferenceService) ListFishTypes(ctx context.Context) ([]domain.FishSpecies, error) {
	species, err := s.fish.ListSpecies(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReferenceService.ListFishTypes: %w", err)
	}
	if len(species) == 0 {
		return nil, domain.NotFound("fish types", "")
	}
	return species, nil
}

// ListFishCuts returns all cuts ordered by name.
func (s *ReferenceService) ListFishCuts(ctx context.Context) ([]domain.FishCut, error) {
	cuts, err := s.fish.ListCuts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReferenceService.ListFishCuts: %w", err)
	}
	if len(cuts) == 0 {
		return nil, domain.NotFound("fish cuts", "")
	}
	return cuts, nil
}

// ListFishGrades returns all grades ordered by name.
func (s *ReferenceService) ListFishGrades(ctx context.Context) ([]domain.FishGrade, error) {
	grades, err := s.fish.ListGrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReferenceService.ListFishGrades: %w", err)
	}
	if len(grades) == 0 {
		return nil, domain.NotFound("fish grades", "")
	}
	return grades, nil
}

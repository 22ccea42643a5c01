package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/service"
)

func TestReferenceService_ListDictionary_NormalizesCategory(t *testing.T) {
	var seen []string
	dict := &mockDictionaryRepo{
		listByCategory: func(_ context.Context, category string) ([]domain.DictionaryEntry, error) {
			seen = append(seen, category)
			return []domain.DictionaryEntry{{ID: 1, Code: "BOS", Name: "Boston"}}, nil
		},
	}
	svc := service.NewReferenceService(nil, dict, nil)

	lower, err := svc.ListDictionary(context.Background(), "destination")
	require.NoError(t, err)
	upper, err := svc.ListDictionary(context.Background(), " DESTINATION ")
	require.NoError(t, err)

	assert.Equal(t, []string{"DESTINATION", "DESTINATION"}, seen)
	assert.Equal(t, lower, upper)
}

func TestReferenceService_ListDictionary_EmptyIsNotFound(t *testing.T) {
	dict := &mockDictionaryRepo{
		listByCategory: func(_ context.Context, _ string) ([]domain.DictionaryEntry, error) {
			return nil, nil
		},
	}
	svc := service.NewReferenceService(nil, dict, nil)

	_, err := svc.ListDictionary(context.Background(), "boston")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "BOSTON")
}

func TestReferenceService_BlankKeysAreNotFound(t *testing.T) {
	dict := &mockDictionaryRepo{
		listByCategory: func(context.Context, string) ([]domain.DictionaryEntry, error) {
			t.Fatal("a blank category must not be queried")
			return nil, nil
		},
	}
	vendors := &mockVendorRepo{
		getByCode: func(context.Context, string) (domain.VendorProfile, error) {
			t.Fatal("a blank vendor code must not be queried")
			return domain.VendorProfile{}, nil
		},
	}
	svc := service.NewReferenceService(vendors, dict, nil)

	_, err := svc.ListDictionary(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GetVendor(context.Background(), "\t")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "vendor", nf.Entity)
}

func TestReferenceService_GetVendor(t *testing.T) {
	vendors := &mockVendorRepo{
		getByCode: func(_ context.Context, code string) (domain.VendorProfile, error) {
			if code != "ACME" {
				return domain.VendorProfile{}, domain.NotFound("vendor", code)
			}
			return domain.VendorProfile{Vendor: domain.Vendor{ID: 1, Code: "ACME", Name: "Acme Foods"}, NextQuoteID: 43}, nil
		},
	}
	svc := service.NewReferenceService(vendors, nil, nil)

	got, err := svc.GetVendor(context.Background(), " acme ")
	require.NoError(t, err)
	assert.Equal(t, int64(43), got.NextQuoteID)

	_, err = svc.GetVendor(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReferenceService_FishListings_EmptyIsNotFound(t *testing.T) {
	fish := &mockFishRepo{
		listSpecies: func(context.Context) ([]domain.FishSpecies, error) { return nil, nil },
		listCuts:    func(context.Context) ([]domain.FishCut, error) { return []domain.FishCut{}, nil },
		listGrades:  func(context.Context) ([]domain.FishGrade, error) { return nil, nil },
	}
	svc := service.NewReferenceService(nil, nil, fish)
	ctx := context.Background()

	_, err := svc.ListFishTypes(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.ListFishCuts(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.ListFishGrades(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReferenceService_FishListings_PassThrough(t *testing.T) {
	repoErr := errors.New("db exploded")
	fish := &mockFishRepo{
		listSpecies: func(context.Context) ([]domain.FishSpecies, error) {
			return []domain.FishSpecies{{ID: 1, CommonName: "Salmon"}}, nil
		},
		listCuts: func(context.Context) ([]domain.FishCut, error) {
			return []domain.FishCut{{ID: 2, Name: "Fillet"}}, nil
		},
		listGrades: func(context.Context) ([]domain.FishGrade, error) { return nil, repoErr },
	}
	svc := service.NewReferenceService(nil, nil, fish)
	ctx := context.Background()

	species, err := svc.ListFishTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Salmon", species[0].CommonName)

	cuts, err := svc.ListFishCuts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fillet", cuts[0].Name)

	_, err = svc.ListFishGrades(ctx)
	assert.ErrorIs(t, err, repoErr)
}

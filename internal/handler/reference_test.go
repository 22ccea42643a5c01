package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/handler"
)

func referenceServer(m *mockReferenceServicer) *handler.Server {
	return handler.NewServer(m, nil, nil)
}

func TestListDictionary_passesCategoryThrough(t *testing.T) {
	var seen string
	srv := referenceServer(&mockReferenceServicer{
		listDictionary: func(_ context.Context, category string) ([]domain.DictionaryEntry, error) {
			seen = category
			return []domain.DictionaryEntry{{ID: 1, Code: "BOS", Name: "Boston"}}, nil
		},
	})

	rec := serve(srv, http.MethodGet, "/dictionary/destination", nil)

	assertStatus(t, http.StatusOK, rec)
	assert.Equal(t, "destination", seen)
	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "BOS", body[0]["code"])
	assert.Contains(t, body[0], "description")
}

func TestListDictionary_returns404WhenEmpty(t *testing.T) {
	srv := referenceServer(&mockReferenceServicer{
		listDictionary: func(_ context.Context, category string) ([]domain.DictionaryEntry, error) {
			return nil, domain.NotFound("dictionary entries", "BOSTON")
		},
	})

	rec := serve(srv, http.MethodGet, "/dictionary/boston", nil)

	assertStatus(t, http.StatusNotFound, rec)
	detail := decodeError(t, rec)
	assert.Equal(t, "not_found", detail.Code)
	assert.Equal(t, "dictionary entries not found: BOSTON", detail.Message)
}

func TestGetVendor_returnsNextQuoteID(t *testing.T) {
	srv := referenceServer(&mockReferenceServicer{
		getVendor: func(_ context.Context, code string) (domain.VendorProfile, error) {
			return domain.VendorProfile{
				Vendor: domain.Vendor{
					ID: 1, Code: code, Name: "Acme Foods", Country: "Norway",
					ContactEmail: "sales@acme.example", Active: true,
				},
				NextQuoteID: 43,
			}, nil
		},
	})

	rec := serve(srv, http.MethodGet, "/vendors/ACME", nil)

	assertStatus(t, http.StatusOK, rec)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ACME", body["code"])
	assert.Equal(t, "Acme Foods", body["name"])
	assert.EqualValues(t, 43, body["nextquoteid"])
	assert.NotContains(t, body, "ContactEmail")
}

func TestGetVendor_repeatedReadsAreIdentical(t *testing.T) {
	srv := referenceServer(&mockReferenceServicer{
		getVendor: func(context.Context, string) (domain.VendorProfile, error) {
			return domain.VendorProfile{Vendor: domain.Vendor{ID: 1, Code: "ACME", Name: "Acme Foods"}, NextQuoteID: 7}, nil
		},
	})

	first := serve(srv, http.MethodGet, "/vendors/ACME", nil)
	second := serve(srv, http.MethodGet, "/vendors/ACME", nil)

	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGetVendor_returns404(t *testing.T) {
	srv := referenceServer(&mockReferenceServicer{
		getVendor: func(_ context.Context, code string) (domain.VendorProfile, error) {
			return domain.VendorProfile{}, domain.NotFound("vendor", code)
		},
	})

	rec := serve(srv, http.MethodGet, "/vendors/GONE", nil)

	assertStatus(t, http.StatusNotFound, rec)
	assert.Equal(t, "vendor not found: GONE", decodeError(t, rec).Message)
}

func TestFishEndpoints(t *testing.T) {
	srv := referenceServer(&mockReferenceServicer{
		listFishTypes: func(context.Context) ([]domain.FishSpecies, error) {
			return []domain.FishSpecies{{ID: 1, CommonName: "Salmon"}}, nil
		},
		listFishCuts: func(context.Context) ([]domain.FishCut, error) {
			return nil, domain.NotFound("fish cuts", "")
		},
		listFishGrades: func(context.Context) ([]domain.FishGrade, error) {
			return nil, errors.New("relation \"fish_grade\" does not exist")
		},
	})

	rec := serve(srv, http.MethodGet, "/fish/types", nil)
	assertStatus(t, http.StatusOK, rec)
	var species []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&species))
	assert.Equal(t, "Salmon", species[0]["common_name"])

	rec = serve(srv, http.MethodGet, "/fish/cut", nil)
	assertStatus(t, http.StatusNotFound, rec)

	rec = serve(srv, http.MethodGet, "/fish/grade", nil)
	assertStatus(t, http.StatusInternalServerError, rec)
	assert.Contains(t, decodeError(t, rec).Message, "fish_grade")
}

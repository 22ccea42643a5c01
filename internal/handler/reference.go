package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/bluelotus-quotes/internal/httpx"
)

// ListDictionary handles GET /dictionary/{category}.
func (s *Server) ListDictionary(w http.ResponseWriter, r *http.Request) {
	entries, err := s.reference.ListDictionary(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}

// GetVendor handles GET /vendors/{vendor_code}.
func (s *Server) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := s.reference.GetVendor(r.Context(), chi.URLParam(r, "vendor_code"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vendor)
}

// ListFishTypes handles GET /fish/types.
func (s *Server) ListFishTypes(w http.ResponseWriter, r *http.Request) {
	species, err := s.reference.ListFishTypes(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, species)
}

// ListFishCuts handles GET /fish/cut.
func (s *Server) ListFishCuts(w http.ResponseWriter, r *http.Request) {
	cuts, err := s.reference.ListFishCuts(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cuts)
}

// ListFishGrades handles GET /fish/grade.
func (s *Server) ListFishGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := s.reference.ListFishGrades(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, grades)
}

package handler_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bluelotus-quotes/internal/handler"
)

// TestGetHealth_returns200WithHealthyStatus verifies that GET /health returns
// HTTP 200 and names the service.
func TestGetHealth_returns200WithHealthyStatus(t *testing.T) {
	rec := serve(handler.NewServer(nil, nil, nil), http.MethodGet, "/health", nil)

	assertStatus(t, http.StatusOK, rec)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "bluelotusfoods-api", body["service"])
}

func TestGetRoot_listsEndpoints(t *testing.T) {
	rec := serve(handler.NewServer(nil, nil, nil), http.MethodGet, "/", nil)

	assertStatus(t, http.StatusOK, rec)
	var body struct {
		Status    string            `json:"status"`
		Endpoints map[string]string `json:"available_endpoints"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "running", body.Status)
	assert.Equal(t, "/quotes", body.Endpoints["quotes"])
}

func TestGetOpenAPI_servesEmbeddedDocument(t *testing.T) {
	rec := serve(handler.NewServer(nil, nil, nil), http.MethodGet, "/openapi.yaml", nil)

	assertStatus(t, http.StatusOK, rec)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "openapi:"))
}

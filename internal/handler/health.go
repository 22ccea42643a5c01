package handler

import (
	"net/http"

	"github.com/pkordes/bluelotus-quotes/internal/httpx"
)

// ServiceName identifies this service in health responses.
const ServiceName = "bluelotusfoods-api"

// GetRoot handles GET /.
func (s *Server) GetRoot(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to Blue Lotus Foods API",
		"status":  "running",
		"available_endpoints": map[string]string{
			"documentation": "/openapi.yaml",
			"dictionary":    "/dictionary",
			"vendors":       "/vendors",
			"fish":          "/fish",
			"quotes":        "/quotes",
			"metrics":       "/metrics",
		},
	})
}

// GetHealth handles GET /health.
// It returns HTTP 200 whenever the process is serving; it does not check the database.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
	})
}

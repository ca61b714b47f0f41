package rest

import "net/http"

type indexResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Version     string            `json:"version,omitempty"`
	Endpoints   map[string]string `json:"endpoints"`
}

// Index serves GET / with the service name and its routes.
func Index(version string) http.HandlerFunc {
	resp := indexResponse{
		Name:        "PokeScout API",
		Description: "Pokémon catalog backed by PostgreSQL and populated from PokeAPI",
		Version:     version,
		Endpoints: map[string]string{
			"health":       "GET /health",
			"ready":        "GET /ready",
			"list":         "GET /api/pokemon?limit=&offset=",
			"get_by_id":    "GET /api/pokemon/{id}",
			"get_by_name":  "GET /api/pokemon/name/{name}",
			"fetch":        "POST /api/pokemon/fetch/{name}",
			"fetch_batch":  "POST /api/pokemon/fetch/batch",
			"delete_by_id": "DELETE /api/pokemon/{id}",
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}

// NotFound answers unknown routes with the error envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "the requested resource was not found")
}

package rest

import (
	"net/http"

	"github.com/heartmarshall/pokescout-backend/internal/transport/middleware"
)

// NewRouter registers all routes. fetchLimit wraps the single fetch and
// batchLimit the batch fetch, the two routes that reach the upstream provider.
func NewRouter(
	pokemon *PokemonHandler,
	health *HealthHandler,
	version string,
	fetchLimit, batchLimit middleware.Middleware,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", Index(version))
	mux.HandleFunc("GET /health", health.Live)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)

	mux.HandleFunc("GET /api/pokemon", pokemon.List)
	mux.HandleFunc("GET /api/pokemon/{$}", pokemon.List)
	mux.HandleFunc("GET /api/pokemon/{id}", pokemon.GetByID)
	mux.HandleFunc("GET /api/pokemon/name/{name}", pokemon.GetByName)
	mux.HandleFunc("DELETE /api/pokemon/{id}", pokemon.Delete)
	mux.Handle("POST /api/pokemon/fetch/batch", batchLimit(http.HandlerFunc(pokemon.FetchBatch)))
	mux.Handle("POST /api/pokemon/fetch/{name}", fetchLimit(http.HandlerFunc(pokemon.Fetch)))

	mux.HandleFunc("/", NotFound)

	return mux
}

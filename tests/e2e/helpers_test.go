//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/pokescout-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/pokescout-backend/internal/app"
	"github.com/heartmarshall/pokescout-backend/internal/config"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL      string
	Client   *http.Client
	Pool     *pgxpool.Pool
	Upstream *fakePokeAPI
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// fakePokeAPI serves /pokemon/{name}. Names containing "bogus" are 404,
// names starting with "broken" come back with five stats, everything else
// is a fire/flying Pokémon with a pokedex number unique to the name.
// ---------------------------------------------------------------------------

type fakePokeAPI struct {
	mu      sync.Mutex
	hits    map[string]int
	numbers map[string]int
}

func (f *fakePokeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/pokemon/")

	f.mu.Lock()
	f.hits[name]++
	num, ok := f.numbers[name]
	if !ok {
		num = testhelper.NextPokedexNumber()
		f.numbers[name] = num
	}
	f.mu.Unlock()

	if strings.Contains(name, "bogus") {
		http.NotFound(w, r)
		return
	}

	stats := []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}
	if strings.HasPrefix(name, "broken") {
		stats = stats[:5]
	}
	statEntries := make([]map[string]any, len(stats))
	for i, s := range stats {
		statEntries[i] = map[string]any{"base_stat": 50 + i, "effort": 0, "stat": map[string]any{"name": s, "url": ""}}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"id":     num,
		"name":   name,
		"height": 17,
		"weight": 905,
		"sprites": map[string]any{
			"front_default": "https://img.example/" + name + ".png",
			"front_shiny":   nil,
		},
		"types": []map[string]any{
			{"slot": 2, "type": map[string]any{"name": "flying", "url": ""}},
			{"slot": 1, "type": map[string]any{"name": "fire", "url": ""}},
		},
		"stats": statEntries,
		"abilities": []map[string]any{
			{"ability": map[string]any{"name": "blaze", "url": ""}, "is_hidden": false, "slot": 1},
			{"ability": map[string]any{"name": "solar-power", "url": ""}, "is_hidden": true, "slot": 3},
		},
	})
}

func (f *fakePokeAPI) Hits(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[name]
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper) and a fake PokeAPI.
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	upstream := &fakePokeAPI{hits: map[string]int{}, numbers: map[string]int{}}
	upstreamSrv := httptest.NewServer(upstream)
	t.Cleanup(upstreamSrv.Close)

	cfg := &config.Config{
		PokeAPI: config.PokeAPIConfig{
			BaseURL:   upstreamSrv.URL,
			Timeout:   5 * time.Second,
			UserAgent: "pokescout-e2e",
		},
		Catalog: config.CatalogConfig{
			DefaultListLimit: 100,
			MaxListLimit:     500,
			MaxBatchSize:     50,
		},
		RateLimit: config.RateLimitConfig{FetchPerMinute: 0},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,DELETE,OPTIONS",
			AllowedHeaders: "Accept,Content-Type",
			MaxAge:         86400,
		},
	}

	handler, cleanup := app.NewHandler(cfg, logger, pool)
	t.Cleanup(cleanup)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:      srv.URL,
		Client:   srv.Client(),
		Pool:     pool,
		Upstream: upstream,
	}
}

// apiResponse is the decoded response envelope.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details []string        `json:"details"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Total   *int            `json:"total"`
	Results *struct {
		Success       []string `json:"success"`
		Failed        []string `json:"failed"`
		AlreadyExists []string `json:"already_exists"`
		Total         int      `json:"total"`
	} `json:"results"`
}

type pokemonBody struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PokedexNumber int    `json:"pokedex_number"`
	Types         []struct {
		Name string `json:"name"`
		Slot int    `json:"slot"`
	} `json:"types"`
	Stats []struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	} `json:"stats"`
	Abilities []struct {
		Name     string `json:"name"`
		IsHidden bool   `json:"is_hidden"`
		Slot     int    `json:"slot"`
	} `json:"abilities"`
}

// call sends a request and returns status + decoded envelope.
func (ts *testServer) call(t *testing.T, method, path string, body any) (int, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func decodePokemon(t *testing.T, raw json.RawMessage) pokemonBody {
	t.Helper()
	var p pokemonBody
	require.NoError(t, json.Unmarshal(raw, &p))
	return p
}

// countRows returns the number of rows in table matching the given pokemon id.
func countRows(t *testing.T, pool *pgxpool.Pool, table string, pokemonID int64) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		fmt.Sprintf("SELECT count(*) FROM %s WHERE pokemon_id = $1", table), pokemonID).Scan(&n)
	require.NoError(t, err)
	return n
}

package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/pokescout-backend/internal/config"
	"github.com/heartmarshall/pokescout-backend/internal/provider"
)

const (
	defaultBaseURL   = "https://pokeapi.co/api/v2"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "pokescout-backend"

	// Upper bound on a decoded upstream document.
	maxBodyBytes = 4 << 20
)

// Provider fetches Pokémon documents from PokeAPI.
type Provider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from the pokeapi config section.
// Zero values fall back to the public API defaults.
func NewProvider(cfg config.PokeAPIConfig, logger *slog.Logger) *Provider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Provider{
		baseURL:    baseURL,
		userAgent:  ua,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "pokeapi"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	return NewProvider(config.PokeAPIConfig{BaseURL: baseURL, Timeout: timeout}, logger)
}

// FetchPokemon issues a single GET for the lower-cased name. Every failure
// (timeout, transport error, non-2xx status, bad body) wraps
// provider.ErrUnavailable. There are no retries.
func (p *Provider) FetchPokemon(ctx context.Context, name string) (*provider.RawPokemon, error) {
	key := strings.ToLower(name)
	reqURL := p.baseURL + "/pokemon/" + url.PathEscape(key)

	p.log.DebugContext(ctx, "pokeapi request", slog.String("name", key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: create request: %w: %w", provider.ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "pokeapi request failed",
			slog.String("name", key),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("pokeapi: request failed: %w: %w", provider.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		p.log.InfoContext(ctx, "pokeapi non-success status",
			slog.String("name", key),
			slog.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("pokeapi: unexpected status %d: %w", resp.StatusCode, provider.ErrUnavailable)
	}

	var raw provider.RawPokemon
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&raw); err != nil {
		p.log.WarnContext(ctx, "pokeapi decode failed",
			slog.String("name", key),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("pokeapi: decode json: %w: %w", provider.ErrUnavailable, err)
	}

	p.log.DebugContext(ctx, "pokeapi response",
		slog.String("name", key),
		slog.Int("status", resp.StatusCode),
		slog.Int("types", len(raw.Types)),
		slog.Int("stats", len(raw.Stats)),
		slog.Int("abilities", len(raw.Abilities)),
		slog.Duration("took", time.Since(start)),
	)

	return &raw, nil
}

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if err := c.PokeAPI.validate(); err != nil {
		return fmt.Errorf("pokeapi: %w", err)
	}

	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if c.RateLimit.FetchPerMinute < 0 {
		return fmt.Errorf("rate_limit.fetch_per_minute must be >= 0 (got %d)", c.RateLimit.FetchPerMinute)
	}

	return nil
}

func (p *PokeAPIConfig) validate() error {
	if p.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", p.Timeout)
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", p.BaseURL)
	}
	p.BaseURL = strings.TrimRight(p.BaseURL, "/")

	return nil
}

func (c *CatalogConfig) validate() error {
	if c.DefaultListLimit <= 0 {
		return fmt.Errorf("default_list_limit must be > 0 (got %d)", c.DefaultListLimit)
	}
	if c.MaxListLimit < c.DefaultListLimit {
		return fmt.Errorf("max_list_limit must be >= default_list_limit (got %d < %d)", c.MaxListLimit, c.DefaultListLimit)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("max_batch_size must be > 0 (got %d)", c.MaxBatchSize)
	}
	return nil
}

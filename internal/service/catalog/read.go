package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pokescout-backend/internal/domain"
)

// ListResult is one page of stored Pokémon.
type ListResult struct {
	Items  []domain.Pokemon
	Total  int
	Limit  int
	Offset int
}

// List returns stored Pokémon ordered by pokedex number. A non-positive
// limit means the default; limits above the cap are clamped.
func (s *Service) List(ctx context.Context, limit, offset int) (*ListResult, error) {
	if limit <= 0 {
		limit = s.limits.DefaultListLimit
	}
	limit = min(limit, s.limits.MaxListLimit)
	offset = max(offset, 0)

	items, err := s.pokemon.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pokemon: %w", err)
	}
	total, err := s.pokemon.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count pokemon: %w", err)
	}

	return &ListResult{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// GetByID returns a stored Pokémon by primary key.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Pokemon, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be a positive integer")
	}
	return s.pokemon.GetByID(ctx, id)
}

// GetByName returns a stored Pokémon by name. It never calls upstream.
func (s *Service) GetByName(ctx context.Context, rawName string) (*domain.Pokemon, error) {
	name, err := domain.SanitizeName(rawName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	return s.pokemon.GetByName(ctx, name)
}

// Delete removes a Pokémon with its stats, abilities and type links.
// Shared types stay.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("id", "must be a positive integer")
	}
	if err := s.pokemon.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "pokemon deleted", slog.Int64("pokemon_id", id))
	return nil
}

func slogName(name string) slog.Attr {
	return slog.String("name", name)
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/pokescout-backend/internal/domain"
)

// FetchResult is the outcome of FetchAndPersist.
type FetchResult struct {
	Pokemon *domain.Pokemon
	// Created is false when the Pokémon was already stored.
	Created bool
}

// FetchAndPersist returns the stored Pokémon with the given name, fetching
// it from upstream and writing it in one transaction when it is missing.
// Repeated calls with the same name never create a second row.
func (s *Service) FetchAndPersist(ctx context.Context, rawName string) (*FetchResult, error) {
	name, err := domain.SanitizeName(rawName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidName, err)
	}

	// 1. Already stored?
	existing, err := s.pokemon.GetByName(ctx, name)
	if err == nil {
		s.log.DebugContext(ctx, "pokemon already stored", slogName(name), "pokemon_id", existing.ID)
		return &FetchResult{Pokemon: existing, Created: false}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup pokemon %s: %w", name, err)
	}

	// 2. Upstream, outside the transaction.
	raw, err := s.upstream.FetchPokemon(ctx, name)
	if err != nil {
		s.log.WarnContext(ctx, "upstream fetch failed", slogName(name), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	// 3. Transform and validate.
	data, err := Transform(raw)
	if err != nil {
		s.log.WarnContext(ctx, "malformed upstream record", slogName(name), "error", err)
		return nil, err
	}
	if err := ValidatePokemonData(data); err != nil {
		s.log.WarnContext(ctx, "pokemon data failed validation", slogName(name), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	// 4. The lookup key may be an alias of a stored record (upstream
	// resolves "25" to pikachu), so check again under the canonical identity.
	existing, err = s.findStored(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("lookup pokemon %s: %w", data.Name, err)
	}
	if existing != nil {
		s.log.DebugContext(ctx, "pokemon already stored under canonical name",
			slogName(name), "stored_name", existing.Name, "pokemon_id", existing.ID)
		return &FetchResult{Pokemon: existing, Created: false}, nil
	}

	// 5. Write everything or nothing.
	var created *domain.Pokemon
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.pokemon.CreateWithRelations(ctx, data)
		return txErr
	})
	if err != nil {
		// A concurrent request stored the same Pokémon first.
		if errors.Is(err, domain.ErrAlreadyExists) {
			if stored, lookupErr := s.findStored(ctx, data); lookupErr == nil && stored != nil {
				s.log.InfoContext(ctx, "pokemon stored concurrently", slogName(stored.Name), "pokemon_id", stored.ID)
				return &FetchResult{Pokemon: stored, Created: false}, nil
			}
		}
		s.log.ErrorContext(ctx, "pokemon write rolled back", slogName(name), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	s.log.InfoContext(ctx, "pokemon stored",
		slogName(created.Name),
		"pokemon_id", created.ID,
		"pokedex_number", created.PokedexNumber,
	)
	return &FetchResult{Pokemon: created, Created: true}, nil
}

// findStored looks a transformed record up by its name and pokedex number.
// Returns (nil, nil) when neither is stored.
func (s *Service) findStored(ctx context.Context, data *domain.PokemonData) (*domain.Pokemon, error) {
	p, err := s.pokemon.GetByName(ctx, data.Name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	p, err = s.pokemon.GetByPokedexNumber(ctx, data.PokedexNumber)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return nil, nil
}

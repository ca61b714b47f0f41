// Package catalog implements the Pokémon catalog: reads, the
// fetch-transform-validate-persist pipeline and batch sync.
package catalog

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/pokescout-backend/internal/config"
	"github.com/heartmarshall/pokescout-backend/internal/domain"
	"github.com/heartmarshall/pokescout-backend/internal/provider"
)

type pokemonRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Pokemon, error)
	GetByName(ctx context.Context, name string) (*domain.Pokemon, error)
	GetByPokedexNumber(ctx context.Context, number int) (*domain.Pokemon, error)
	List(ctx context.Context, limit, offset int) ([]domain.Pokemon, error)
	Count(ctx context.Context) (int, error)
	CreateWithRelations(ctx context.Context, data *domain.PokemonData) (*domain.Pokemon, error)
	Delete(ctx context.Context, id int64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type upstreamProvider interface {
	FetchPokemon(ctx context.Context, name string) (*provider.RawPokemon, error)
}

// Service implements catalog operations.
type Service struct {
	log      *slog.Logger
	pokemon  pokemonRepo
	tx       txManager
	upstream upstreamProvider
	limits   config.CatalogConfig
}

// NewService creates a new catalog service. Zero limits fall back to the
// config defaults (list 100/500, batch 50).
func NewService(
	logger *slog.Logger,
	pokemon pokemonRepo,
	tx txManager,
	upstream upstreamProvider,
	limits config.CatalogConfig,
) *Service {
	if limits.DefaultListLimit <= 0 {
		limits.DefaultListLimit = 100
	}
	if limits.MaxListLimit < limits.DefaultListLimit {
		limits.MaxListLimit = max(500, limits.DefaultListLimit)
	}
	if limits.MaxBatchSize <= 0 {
		limits.MaxBatchSize = 50
	}

	return &Service{
		log:      logger.With("service", "catalog"),
		pokemon:  pokemon,
		tx:       tx,
		upstream: upstream,
		limits:   limits,
	}
}

// MaxBatchSize returns the largest accepted Sync batch.
func (s *Service) MaxBatchSize() int {
	return s.limits.MaxBatchSize
}

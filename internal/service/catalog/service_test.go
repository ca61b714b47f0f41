package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/pokescout-backend/internal/config"
	"github.com/heartmarshall/pokescout-backend/internal/domain"
	"github.com/heartmarshall/pokescout-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockPokemonRepo struct {
	GetByIDFunc             func(ctx context.Context, id int64) (*domain.Pokemon, error)
	GetByNameFunc           func(ctx context.Context, name string) (*domain.Pokemon, error)
	GetByPokedexNumberFunc  func(ctx context.Context, number int) (*domain.Pokemon, error)
	ListFunc                func(ctx context.Context, limit, offset int) ([]domain.Pokemon, error)
	CountFunc               func(ctx context.Context) (int, error)
	CreateWithRelationsFunc func(ctx context.Context, data *domain.PokemonData) (*domain.Pokemon, error)
	DeleteFunc              func(ctx context.Context, id int64) error
}

func (m *mockPokemonRepo) GetByID(ctx context.Context, id int64) (*domain.Pokemon, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockPokemonRepo) GetByName(ctx context.Context, name string) (*domain.Pokemon, error) {
	return m.GetByNameFunc(ctx, name)
}

func (m *mockPokemonRepo) GetByPokedexNumber(ctx context.Context, number int) (*domain.Pokemon, error) {
	if m.GetByPokedexNumberFunc != nil {
		return m.GetByPokedexNumberFunc(ctx, number)
	}
	return nil, fmt.Errorf("pokemon #%d: %w", number, domain.ErrNotFound)
}

func (m *mockPokemonRepo) List(ctx context.Context, limit, offset int) ([]domain.Pokemon, error) {
	return m.ListFunc(ctx, limit, offset)
}

func (m *mockPokemonRepo) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

func (m *mockPokemonRepo) CreateWithRelations(ctx context.Context, data *domain.PokemonData) (*domain.Pokemon, error) {
	return m.CreateWithRelationsFunc(ctx, data)
}

func (m *mockPokemonRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	// Default: pass-through (no real transaction).
	return fn(ctx)
}

type mockUpstream struct {
	FetchPokemonFunc func(ctx context.Context, name string) (*provider.RawPokemon, error)
}

func (m *mockUpstream) FetchPokemon(ctx context.Context, name string) (*provider.RawPokemon, error) {
	return m.FetchPokemonFunc(ctx, name)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testLimits() config.CatalogConfig {
	return config.CatalogConfig{DefaultListLimit: 100, MaxListLimit: 500, MaxBatchSize: 50}
}

func newTestService(repo *mockPokemonRepo, tx *mockTxManager, up *mockUpstream) *Service {
	if tx == nil {
		tx = &mockTxManager{}
	}
	return NewService(slog.Default(), repo, tx, up, testLimits())
}

func ptr[T any](v T) *T { return &v }

func named(name string) *provider.RawNamedResource {
	return &provider.RawNamedResource{Name: ptr(name), URL: "https://pokeapi.co/api/v2/x/" + name + "/"}
}

// makeRaw builds a complete upstream record with one or two types.
func makeRaw(name string, id int, types ...string) *provider.RawPokemon {
	raw := &provider.RawPokemon{
		Name:    ptr(name),
		ID:      ptr(id),
		Height:  ptr(4),
		Weight:  ptr(60),
		Sprites: &provider.RawSprites{FrontDefault: ptr("https://img/" + name + ".png")},
	}
	for i, t := range types {
		raw.Types = append(raw.Types, provider.RawTypeSlot{Slot: ptr(i + 1), Type: named(t)})
	}
	for i, s := range []string{
		domain.StatHP, domain.StatAttack, domain.StatDefense,
		domain.StatSpecialAttack, domain.StatSpecialDefense, domain.StatSpeed,
	} {
		raw.Stats = append(raw.Stats, provider.RawStat{BaseStat: ptr(40 + i*5), Stat: named(s)})
	}
	raw.Abilities = []provider.RawAbilitySlot{
		{Ability: named("static"), IsHidden: ptr(false), Slot: ptr(1)},
		{Ability: named("lightning-rod"), IsHidden: ptr(true), Slot: ptr(3)},
	}
	return raw
}

// persisted converts PokemonData into what the repository would return.
func persisted(id int64, data *domain.PokemonData) *domain.Pokemon {
	p := &domain.Pokemon{
		Record:             domain.Record{ID: id},
		Name:               data.Name,
		PokedexNumber:      data.PokedexNumber,
		Height:             data.Height,
		Weight:             data.Weight,
		SpriteFrontDefault: data.SpriteFrontDefault,
		SpriteFrontShiny:   data.SpriteFrontShiny,
	}
	for _, t := range data.Types {
		p.Types = append(p.Types, domain.PokemonType{Type: domain.Type{Name: strings.ToLower(t.Name)}, Slot: t.Slot})
	}
	for _, s := range data.Stats {
		p.Stats = append(p.Stats, domain.Stat{PokemonID: id, Name: s.Name, Value: s.Value})
	}
	for _, a := range data.Abilities {
		p.Abilities = append(p.Abilities, domain.Ability{PokemonID: id, Name: a.Name, IsHidden: a.IsHidden, Slot: a.Slot})
	}
	return p
}

func notFound(name string) error {
	return fmt.Errorf("pokemon %s: %w", name, domain.ErrNotFound)
}

// memoryRepo is a mockPokemonRepo backed by a map, so that a write is
// visible to the next lookup. Like the real schema it rejects a second row
// with the same name or pokedex number.
func memoryRepo() (*mockPokemonRepo, map[string]*domain.Pokemon) {
	store := map[string]*domain.Pokemon{}
	var nextID int64
	byNumber := func(number int) *domain.Pokemon {
		for _, p := range store {
			if p.PokedexNumber == number {
				return p
			}
		}
		return nil
	}
	repo := &mockPokemonRepo{
		GetByNameFunc: func(_ context.Context, name string) (*domain.Pokemon, error) {
			if p, ok := store[strings.ToLower(name)]; ok {
				return p, nil
			}
			return nil, notFound(name)
		},
		GetByPokedexNumberFunc: func(_ context.Context, number int) (*domain.Pokemon, error) {
			if p := byNumber(number); p != nil {
				return p, nil
			}
			return nil, fmt.Errorf("pokemon #%d: %w", number, domain.ErrNotFound)
		},
		CreateWithRelationsFunc: func(_ context.Context, data *domain.PokemonData) (*domain.Pokemon, error) {
			if _, ok := store[strings.ToLower(data.Name)]; ok || byNumber(data.PokedexNumber) != nil {
				return nil, fmt.Errorf("pokemon %s: %w", data.Name, domain.ErrAlreadyExists)
			}
			nextID++
			p := persisted(nextID, data)
			store[strings.ToLower(p.Name)] = p
			return p, nil
		},
	}
	return repo, store
}

// Package pokemon implements the Pokémon aggregate repository using PostgreSQL.
// A Pokémon is stored across pokemon, pokemon_types (junction with slot),
// pokemon_type, pokemon_stat and pokemon_ability.
package pokemon

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/pokescout-backend/internal/adapter/postgres"
	"github.com/heartmarshall/pokescout-backend/internal/domain"
)

const entity = "pokemon"

var pokemonColumns = []string{
	"id", "name", "pokedex_number", "height", "weight",
	"sprite_front_default", "sprite_front_shiny", "created_at", "updated_at",
}

// Repo provides Pokémon persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new Pokémon repository. db is usually a *pgxpool.Pool;
// inside TxManager.RunInTx the transaction from the context is used instead.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns the full aggregate by primary key.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Pokemon, error) {
	query := postgres.Builder().
		Select(pokemonColumns...).
		From("pokemon").
		Where(sq.Eq{"id": id})

	return r.getOne(ctx, query, id)
}

// GetByName returns the full aggregate by name, case-insensitively.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Pokemon, error) {
	query := postgres.Builder().
		Select(pokemonColumns...).
		From("pokemon").
		Where("lower(name) = lower(?)", name)

	return r.getOne(ctx, query, name)
}

// GetByPokedexNumber returns the full aggregate by national pokedex number.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByPokedexNumber(ctx context.Context, number int) (*domain.Pokemon, error) {
	query := postgres.Builder().
		Select(pokemonColumns...).
		From("pokemon").
		Where(sq.Eq{"pokedex_number": number})

	return r.getOne(ctx, query, number)
}

// List returns up to limit aggregates ordered by pokedex number.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.Pokemon, error) {
	if limit <= 0 {
		return []domain.Pokemon{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	sql, args, err := postgres.Builder().
		Select(pokemonColumns...).
		From("pokemon").
		OrderBy("pokedex_number", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list pokemon: build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []pokemonRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list pokemon: %w", err)
	}

	result := make([]domain.Pokemon, len(rows))
	for i, row := range rows {
		result[i] = toDomainPokemon(row)
	}

	if err := loadRelations(ctx, q, result); err != nil {
		return nil, fmt.Errorf("list pokemon: %w", err)
	}

	return result, nil
}

// Count returns the total number of stored Pokémon.
func (r *Repo) Count(ctx context.Context) (int, error) {
	sql, args, err := postgres.Builder().Select("count(*)").From("pokemon").ToSql()
	if err != nil {
		return 0, fmt.Errorf("count pokemon: build query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pokemon: %w", err)
	}
	return n, nil
}

func (r *Repo) getOne(ctx context.Context, query sq.SelectBuilder, key any) (*domain.Pokemon, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("get pokemon: build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var row pokemonRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, key)
	}

	list := []domain.Pokemon{toDomainPokemon(row)}
	if err := loadRelations(ctx, q, list); err != nil {
		return nil, fmt.Errorf("get pokemon %v: %w", key, err)
	}

	return &list[0], nil
}

// loadRelations fills Types, Stats and Abilities of every element of list
// with one query per child table.
func loadRelations(ctx context.Context, q postgres.Querier, list []domain.Pokemon) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]int64, len(list))
	index := make(map[int64]int, len(list))
	for i := range list {
		ids[i] = list[i].ID
		index[list[i].ID] = i
	}

	// Types, ordered by slot.
	sql, args, err := postgres.Builder().
		Select("pt.pokemon_id", "pt.slot", "t.id", "t.name", "t.created_at", "t.updated_at").
		From("pokemon_types pt").
		Join("pokemon_type t ON t.id = pt.type_id").
		Where("pt.pokemon_id = ANY(?)", ids).
		OrderBy("pt.pokemon_id", "pt.slot").
		ToSql()
	if err != nil {
		return fmt.Errorf("build types query: %w", err)
	}
	var typeRows []typeLinkRow
	if err := pgxscan.Select(ctx, q, &typeRows, sql, args...); err != nil {
		return fmt.Errorf("load types: %w", err)
	}
	for _, tr := range typeRows {
		if i, ok := index[tr.PokemonID]; ok {
			list[i].Types = append(list[i].Types, tr.toDomain())
		}
	}

	// Stats, in insertion order.
	sql, args, err = postgres.Builder().
		Select("id", "pokemon_id", "name", "value", "created_at", "updated_at").
		From("pokemon_stat").
		Where("pokemon_id = ANY(?)", ids).
		OrderBy("pokemon_id", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build stats query: %w", err)
	}
	var statRows []statRow
	if err := pgxscan.Select(ctx, q, &statRows, sql, args...); err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	for _, sr := range statRows {
		if i, ok := index[sr.PokemonID]; ok {
			list[i].Stats = append(list[i].Stats, toDomainStat(sr))
		}
	}

	// Abilities, ordered by slot.
	sql, args, err = postgres.Builder().
		Select("id", "pokemon_id", "name", "is_hidden", "slot", "created_at", "updated_at").
		From("pokemon_ability").
		Where("pokemon_id = ANY(?)", ids).
		OrderBy("pokemon_id", "slot", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build abilities query: %w", err)
	}
	var abilityRows []abilityRow
	if err := pgxscan.Select(ctx, q, &abilityRows, sql, args...); err != nil {
		return fmt.Errorf("load abilities: %w", err)
	}
	for _, ar := range abilityRows {
		if i, ok := index[ar.PokemonID]; ok {
			list[i].Abilities = append(list[i].Abilities, toDomainAbility(ar))
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateWithRelations inserts the pokemon row, get-or-creates each type
// (stored lowercase), links it with its slot, then inserts the stats and
// abilities. It must run inside TxManager.RunInTx: a failure part-way
// leaves rows that only the caller's rollback removes.
// Returns domain.ErrAlreadyExists on a name or pokedex number collision.
func (r *Repo) CreateWithRelations(ctx context.Context, data *domain.PokemonData) (*domain.Pokemon, error) {
	if data == nil {
		return nil, fmt.Errorf("create pokemon: %w", domain.ErrValidation)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	// 1. Pokemon row.
	sql, args, err := postgres.Builder().
		Insert("pokemon").
		Columns("name", "pokedex_number", "height", "weight", "sprite_front_default", "sprite_front_shiny").
		Values(data.Name, data.PokedexNumber, data.Height, data.Weight, data.SpriteFrontDefault, data.SpriteFrontShiny).
		Suffix("RETURNING " + strings.Join(pokemonColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("create pokemon: build insert: %w", err)
	}

	var row pokemonRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, data.Name)
	}
	p := toDomainPokemon(row)

	// 2. Types and junction rows.
	for _, ts := range data.Types {
		typ, err := getOrCreateType(ctx, q, ts.Name)
		if err != nil {
			return nil, err
		}

		sql, args, err := postgres.Builder().
			Insert("pokemon_types").
			Columns("pokemon_id", "type_id", "slot").
			Values(p.ID, typ.ID, ts.Slot).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("link type: build insert: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return nil, postgres.MapError(err, "pokemon_types", fmt.Sprintf("%d/%s", p.ID, typ.Name))
		}

		p.Types = append(p.Types, domain.PokemonType{Type: typ, Slot: ts.Slot})
	}
	sort.SliceStable(p.Types, func(i, j int) bool { return p.Types[i].Slot < p.Types[j].Slot })

	// 3. Stats.
	if len(data.Stats) > 0 {
		insert := postgres.Builder().
			Insert("pokemon_stat").
			Columns("pokemon_id", "name", "value").
			Suffix("RETURNING id, pokemon_id, name, value, created_at, updated_at")
		for _, s := range data.Stats {
			insert = insert.Values(p.ID, s.Name, s.Value)
		}
		sql, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("insert stats: build insert: %w", err)
		}

		var rows []statRow
		if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
			return nil, postgres.MapError(err, "pokemon_stat", p.ID)
		}
		for _, sr := range rows {
			p.Stats = append(p.Stats, toDomainStat(sr))
		}
	}

	// 4. Abilities.
	if len(data.Abilities) > 0 {
		insert := postgres.Builder().
			Insert("pokemon_ability").
			Columns("pokemon_id", "name", "is_hidden", "slot").
			Suffix("RETURNING id, pokemon_id, name, is_hidden, slot, created_at, updated_at")
		for _, a := range data.Abilities {
			insert = insert.Values(p.ID, a.Name, a.IsHidden, a.Slot)
		}
		sql, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("insert abilities: build insert: %w", err)
		}

		var rows []abilityRow
		if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
			return nil, postgres.MapError(err, "pokemon_ability", p.ID)
		}
		for _, ar := range rows {
			p.Abilities = append(p.Abilities, toDomainAbility(ar))
		}
		sort.SliceStable(p.Abilities, func(i, j int) bool { return p.Abilities[i].Slot < p.Abilities[j].Slot })
	}

	return &p, nil
}

// getOrCreateType returns the pokemon_type row for name, creating it when
// missing. The no-op DO UPDATE makes RETURNING yield the existing row.
func getOrCreateType(ctx context.Context, q postgres.Querier, name string) (domain.Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	sql, args, err := postgres.Builder().
		Insert("pokemon_type").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id, name, created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.Type{}, fmt.Errorf("get or create type: build insert: %w", err)
	}

	var row typeRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Type{}, postgres.MapError(err, "pokemon_type", name)
	}
	return toDomainType(row), nil
}

// Delete removes a Pokémon. Stats, abilities and type links cascade;
// the shared pokemon_type rows survive.
// Returns domain.ErrNotFound if absent.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	sql, args, err := postgres.Builder().
		Delete("pokemon").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("delete pokemon: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

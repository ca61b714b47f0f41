package testhelper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/pokescout-backend/internal/domain"
)

// Pokedex numbers handed out by SeedPokemon and NextPokedexNumber. Starts
// far above real species so seeded rows never collide with fetched ones.
var pokedexSeq atomic.Int64

func init() { pokedexSeq.Store(100_000) }

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueName returns a lowercase name that passes domain.SanitizeName and
// does not collide with other test data.
func UniqueName(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}

// NextPokedexNumber returns a pokedex number not used by any other seed.
func NextPokedexNumber() int {
	return int(pokedexSeq.Add(1))
}

// SeedType get-or-creates a pokemon_type row.
func SeedType(t *testing.T, pool *pgxpool.Pool, name string) domain.Type {
	t.Helper()

	var typ domain.Type
	err := pool.QueryRow(context.Background(),
		`INSERT INTO pokemon_type (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET updated_at = pokemon_type.updated_at
		 RETURNING id, name, created_at, updated_at`,
		name,
	).Scan(&typ.ID, &typ.Name, &typ.CreatedAt, &typ.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedType %q: %v", name, err)
	}
	return typ
}

// SeedPokemon creates a pokemon with two types (slot 1 "fire", slot 2
// "flying"), the six standard stats and two abilities. Returns the
// populated aggregate.
func SeedPokemon(t *testing.T, pool *pgxpool.Pool, name string) domain.Pokemon {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	sprite := "https://img.example/" + name + ".png"
	p := domain.Pokemon{
		Record:             domain.Record{CreatedAt: now, UpdatedAt: now},
		Name:               name,
		PokedexNumber:      NextPokedexNumber(),
		Height:             17,
		Weight:             905,
		SpriteFrontDefault: &sprite,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO pokemon (name, pokedex_number, height, weight, sprite_front_default, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.Name, p.PokedexNumber, p.Height, p.Weight, p.SpriteFrontDefault, now, now,
	).Scan(&p.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedPokemon insert pokemon: %v", err)
	}

	for i, typeName := range []string{"fire", "flying"} {
		typ := SeedType(t, pool, typeName)
		slot := i + 1
		if _, err := pool.Exec(ctx,
			`INSERT INTO pokemon_types (pokemon_id, type_id, slot) VALUES ($1, $2, $3)`,
			p.ID, typ.ID, slot,
		); err != nil {
			t.Fatalf("testhelper: SeedPokemon link type %q: %v", typeName, err)
		}
		p.Types = append(p.Types, domain.PokemonType{Type: typ, Slot: slot})
	}

	stats := []domain.StatValue{
		{Name: domain.StatHP, Value: 78},
		{Name: domain.StatAttack, Value: 84},
		{Name: domain.StatDefense, Value: 78},
		{Name: domain.StatSpecialAttack, Value: 109},
		{Name: domain.StatSpecialDefense, Value: 85},
		{Name: domain.StatSpeed, Value: 100},
	}
	for _, s := range stats {
		st := domain.Stat{Record: domain.Record{CreatedAt: now, UpdatedAt: now}, PokemonID: p.ID, Name: s.Name, Value: s.Value}
		if err := pool.QueryRow(ctx,
			`INSERT INTO pokemon_stat (pokemon_id, name, value, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			p.ID, s.Name, s.Value, now, now,
		).Scan(&st.ID); err != nil {
			t.Fatalf("testhelper: SeedPokemon insert stat %q: %v", s.Name, err)
		}
		p.Stats = append(p.Stats, st)
	}

	abilities := []domain.AbilitySlot{
		{Name: "blaze", IsHidden: false, Slot: 1},
		{Name: "solar-power", IsHidden: true, Slot: 3},
	}
	for _, a := range abilities {
		ab := domain.Ability{Record: domain.Record{CreatedAt: now, UpdatedAt: now}, PokemonID: p.ID, Name: a.Name, IsHidden: a.IsHidden, Slot: a.Slot}
		if err := pool.QueryRow(ctx,
			`INSERT INTO pokemon_ability (pokemon_id, name, is_hidden, slot, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			p.ID, a.Name, a.IsHidden, a.Slot, now, now,
		).Scan(&ab.ID); err != nil {
			t.Fatalf("testhelper: SeedPokemon insert ability %q: %v", a.Name, err)
		}
		p.Abilities = append(p.Abilities, ab)
	}

	return p
}

package pokemon

import (
	"time"

	"github.com/heartmarshall/pokescout-backend/internal/domain"
)

type pokemonRow struct {
	ID                 int64     `db:"id"`
	Name               string    `db:"name"`
	PokedexNumber      int       `db:"pokedex_number"`
	Height             int       `db:"height"`
	Weight             int       `db:"weight"`
	SpriteFrontDefault *string   `db:"sprite_front_default"`
	SpriteFrontShiny   *string   `db:"sprite_front_shiny"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

type typeRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// typeLinkRow is a pokemon_type row joined through pokemon_types.
type typeLinkRow struct {
	PokemonID int64     `db:"pokemon_id"`
	Slot      int       `db:"slot"`
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type statRow struct {
	ID        int64     `db:"id"`
	PokemonID int64     `db:"pokemon_id"`
	Name      string    `db:"name"`
	Value     int       `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type abilityRow struct {
	ID        int64     `db:"id"`
	PokemonID int64     `db:"pokemon_id"`
	Name      string    `db:"name"`
	IsHidden  bool      `db:"is_hidden"`
	Slot      int       `db:"slot"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDomainPokemon(r pokemonRow) domain.Pokemon {
	return domain.Pokemon{
		Record:             domain.Record{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Name:               r.Name,
		PokedexNumber:      r.PokedexNumber,
		Height:             r.Height,
		Weight:             r.Weight,
		SpriteFrontDefault: r.SpriteFrontDefault,
		SpriteFrontShiny:   r.SpriteFrontShiny,
		Types:              []domain.PokemonType{},
		Stats:              []domain.Stat{},
		Abilities:          []domain.Ability{},
	}
}

func toDomainType(r typeRow) domain.Type {
	return domain.Type{
		Record: domain.Record{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Name:   r.Name,
	}
}

func (r typeLinkRow) toDomain() domain.PokemonType {
	return domain.PokemonType{
		Type: toDomainType(typeRow{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}),
		Slot: r.Slot,
	}
}

func toDomainStat(r statRow) domain.Stat {
	return domain.Stat{
		Record:    domain.Record{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		PokemonID: r.PokemonID,
		Name:      r.Name,
		Value:     r.Value,
	}
}

func toDomainAbility(r abilityRow) domain.Ability {
	return domain.Ability{
		Record:    domain.Record{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		PokemonID: r.PokemonID,
		Name:      r.Name,
		IsHidden:  r.IsHidden,
		Slot:      r.Slot,
	}
}

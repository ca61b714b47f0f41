package catalog

import (
	"fmt"

	"github.com/heartmarshall/pokescout-backend/internal/domain"
	"github.com/heartmarshall/pokescout-backend/internal/provider"
)

// Transform maps an upstream record into PokemonData. It reports
// ErrMalformedUpstreamData naming the first missing required key. Sprites,
// the ability hidden flag and the ability slot are optional.
func Transform(raw *provider.RawPokemon) (*domain.PokemonData, error) {
	if raw == nil {
		return nil, malformed("record")
	}

	switch {
	case raw.Name == nil:
		return nil, malformed("name")
	case raw.ID == nil:
		return nil, malformed("id")
	case raw.Height == nil:
		return nil, malformed("height")
	case raw.Weight == nil:
		return nil, malformed("weight")
	}

	data := &domain.PokemonData{
		Name:          *raw.Name,
		PokedexNumber: *raw.ID,
		Height:        *raw.Height,
		Weight:        *raw.Weight,
		Types:         make([]domain.TypeSlot, 0, len(raw.Types)),
		Stats:         make([]domain.StatValue, 0, len(raw.Stats)),
		Abilities:     make([]domain.AbilitySlot, 0, len(raw.Abilities)),
	}
	if raw.Sprites != nil {
		data.SpriteFrontDefault = raw.Sprites.FrontDefault
		data.SpriteFrontShiny = raw.Sprites.FrontShiny
	}

	for i, t := range raw.Types {
		if t.Type == nil || t.Type.Name == nil {
			return nil, malformed(fmt.Sprintf("types[%d].type.name", i))
		}
		if t.Slot == nil {
			return nil, malformed(fmt.Sprintf("types[%d].slot", i))
		}
		data.Types = append(data.Types, domain.TypeSlot{Name: *t.Type.Name, Slot: *t.Slot})
	}

	for i, s := range raw.Stats {
		if s.Stat == nil || s.Stat.Name == nil {
			return nil, malformed(fmt.Sprintf("stats[%d].stat.name", i))
		}
		if s.BaseStat == nil {
			return nil, malformed(fmt.Sprintf("stats[%d].base_stat", i))
		}
		data.Stats = append(data.Stats, domain.StatValue{Name: *s.Stat.Name, Value: *s.BaseStat})
	}

	for i, a := range raw.Abilities {
		if a.Ability == nil || a.Ability.Name == nil {
			return nil, malformed(fmt.Sprintf("abilities[%d].ability.name", i))
		}
		ability := domain.AbilitySlot{Name: *a.Ability.Name, Slot: 1}
		if a.IsHidden != nil {
			ability.IsHidden = *a.IsHidden
		}
		if a.Slot != nil {
			ability.Slot = *a.Slot
		}
		data.Abilities = append(data.Abilities, ability)
	}

	return data, nil
}

func malformed(key string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedUpstreamData, key)
}

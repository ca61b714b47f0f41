package rest

import (
	"time"

	"github.com/heartmarshall/pokescout-backend/internal/domain"
	"github.com/heartmarshall/pokescout-backend/internal/service/catalog"
)

type pokemonDTO struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	PokedexNumber      int          `json:"pokedex_number"`
	Height             int          `json:"height"`
	Weight             int          `json:"weight"`
	SpriteFrontDefault *string      `json:"sprite_front_default"`
	SpriteFrontShiny   *string      `json:"sprite_front_shiny"`
	Types              []typeDTO    `json:"types"`
	Stats              []statDTO    `json:"stats"`
	Abilities          []abilityDTO `json:"abilities"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

type typeDTO struct {
	Name string `json:"name"`
	Slot int    `json:"slot"`
}

type statDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type abilityDTO struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"is_hidden"`
	Slot     int    `json:"slot"`
}

type syncResultDTO struct {
	Success       []string `json:"success"`
	Failed        []string `json:"failed"`
	AlreadyExists []string `json:"already_exists"`
	Total         int      `json:"total"`
}

func toPokemonDTO(p *domain.Pokemon) pokemonDTO {
	dto := pokemonDTO{
		ID:                 p.ID,
		Name:               p.Name,
		PokedexNumber:      p.PokedexNumber,
		Height:             p.Height,
		Weight:             p.Weight,
		SpriteFrontDefault: p.SpriteFrontDefault,
		SpriteFrontShiny:   p.SpriteFrontShiny,
		Types:              make([]typeDTO, len(p.Types)),
		Stats:              make([]statDTO, len(p.Stats)),
		Abilities:          make([]abilityDTO, len(p.Abilities)),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	for i, t := range p.Types {
		dto.Types[i] = typeDTO{Name: t.Name, Slot: t.Slot}
	}
	for i, s := range p.Stats {
		dto.Stats[i] = statDTO{Name: s.Name, Value: s.Value}
	}
	for i, a := range p.Abilities {
		dto.Abilities[i] = abilityDTO{Name: a.Name, IsHidden: a.IsHidden, Slot: a.Slot}
	}
	return dto
}

func toPokemonDTOs(items []domain.Pokemon) []pokemonDTO {
	out := make([]pokemonDTO, len(items))
	for i := range items {
		out[i] = toPokemonDTO(&items[i])
	}
	return out
}

func toSyncResultDTO(r *catalog.SyncResult) syncResultDTO {
	return syncResultDTO{
		Success:       r.Success,
		Failed:        r.Failed,
		AlreadyExists: r.AlreadyExists,
		Total:         r.Total,
	}
}

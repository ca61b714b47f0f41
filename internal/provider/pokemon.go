// Package provider defines the records returned by upstream data providers.
package provider

import "errors"

// ErrUnavailable is returned by providers when a record could not be
// obtained: timeout, transport failure, non-2xx status or an undecodable body.
var ErrUnavailable = errors.New("provider: record unavailable")

// RawPokemon mirrors the upstream /pokemon/{name} document. Pointer fields
// stay nil when the key is absent so that callers can tell missing from zero.
type RawPokemon struct {
	Name      *string          `json:"name"`
	ID        *int             `json:"id"`
	Height    *int             `json:"height"`
	Weight    *int             `json:"weight"`
	Sprites   *RawSprites      `json:"sprites"`
	Types     []RawTypeSlot    `json:"types"`
	Stats     []RawStat        `json:"stats"`
	Abilities []RawAbilitySlot `json:"abilities"`
}

// RawSprites holds the sprite URLs the catalog keeps.
type RawSprites struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
}

// RawNamedResource is the upstream {name, url} reference.
type RawNamedResource struct {
	Name *string `json:"name"`
	URL  string  `json:"url"`
}

// RawTypeSlot is one entry of the upstream "types" list.
type RawTypeSlot struct {
	Slot *int              `json:"slot"`
	Type *RawNamedResource `json:"type"`
}

// RawStat is one entry of the upstream "stats" list.
type RawStat struct {
	BaseStat *int              `json:"base_stat"`
	Effort   int               `json:"effort"`
	Stat     *RawNamedResource `json:"stat"`
}

// RawAbilitySlot is one entry of the upstream "abilities" list.
type RawAbilitySlot struct {
	Ability  *RawNamedResource `json:"ability"`
	IsHidden *bool             `json:"is_hidden"`
	Slot     *int              `json:"slot"`
}

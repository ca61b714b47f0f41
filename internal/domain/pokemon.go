package domain

import "time"

// Stat names every stored Pokémon carries, in upstream order.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// Catalog invariants shared by validation and storage.
const (
	MinTypes     = 1
	MaxTypes     = 2
	StatCount    = 6
	MinAbilities = 1
)

// Record holds the metadata every stored entity carries.
type Record struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pokemon is the stored aggregate: the pokemon row plus its type links,
// stats and abilities.
type Pokemon struct {
	Record
	Name               string
	PokedexNumber      int
	Height             int
	Weight             int
	SpriteFrontDefault *string
	SpriteFrontShiny   *string

	Types     []PokemonType // ordered by slot
	Stats     []Stat        // insertion order
	Abilities []Ability     // ordered by slot
}

// Type is a shared elemental type. Names are stored lowercase.
type Type struct {
	Record
	Name string
}

// PokemonType is a type as seen through the pokemon_types junction.
type PokemonType struct {
	Type
	Slot int
}

// Stat is one base stat of a Pokémon.
type Stat struct {
	Record
	PokemonID int64
	Name      string
	Value     int
}

// Ability is one ability slot of a Pokémon.
type Ability struct {
	Record
	PokemonID int64
	Name      string
	IsHidden  bool
	Slot      int
}

// PokemonData is the transformed, not yet persisted shape of an upstream record.
type PokemonData struct {
	Name               string
	PokedexNumber      int
	Height             int
	Weight             int
	SpriteFrontDefault *string
	SpriteFrontShiny   *string

	Types     []TypeSlot
	Stats     []StatValue
	Abilities []AbilitySlot
}

// TypeSlot links a type name to its display slot (1 = primary, 2 = secondary).
type TypeSlot struct {
	Name string
	Slot int
}

// StatValue is a stat name with its base value.
type StatValue struct {
	Name  string
	Value int
}

// AbilitySlot is an ability name with its hidden flag and slot.
type AbilitySlot struct {
	Name     string
	IsHidden bool
	Slot     int
}

// TypeNames returns the type names ordered by slot.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, len(p.Types))
	for i, t := range p.Types {
		names[i] = t.Name
	}
	return names
}

// StatValue returns the base value of the named stat and whether it exists.
func (p *Pokemon) StatValue(name string) (int, bool) {
	for _, s := range p.Stats {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

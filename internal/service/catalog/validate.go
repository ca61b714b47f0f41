package catalog

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/pokescout-backend/internal/domain"
)

// ValidatePokemonData checks a transformed record before it is written.
// Every violated rule is reported, not only the first.
func ValidatePokemonData(data *domain.PokemonData) error {
	if data == nil {
		return domain.NewValidationError("record", "required")
	}

	var errs []domain.FieldError
	add := func(field, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(data.Name) == "" {
		add("name", "required")
	}
	if data.PokedexNumber < 1 {
		add("pokedex_number", "must be >= 1")
	}
	if data.Height < 0 {
		add("height", "must be >= 0")
	}
	if data.Weight < 0 {
		add("weight", "must be >= 0")
	}

	if n := len(data.Types); n < domain.MinTypes || n > domain.MaxTypes {
		add("types", fmt.Sprintf("must have %d or %d entries, got %d", domain.MinTypes, domain.MaxTypes, n))
	}
	seen := make(map[int]bool, len(data.Types))
	for _, t := range data.Types {
		if seen[t.Slot] {
			add("types", fmt.Sprintf("duplicate slot %d", t.Slot))
			continue
		}
		seen[t.Slot] = true
	}

	if n := len(data.Stats); n != domain.StatCount {
		add("stats", fmt.Sprintf("expected %d, got %d", domain.StatCount, n))
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Package domain defines the core types and interfaces for the alchemy
// workshop. All other packages depend on domain; domain depends on nothing
// outside the standard library and x/text.
package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Recipe is a grimoire entry describing a named mixture. Recipes are never
// mutated in place; the catalog only appends and removes them.
type Recipe struct {
	ID          int64
	Name        string
	Ingredients []string
	Difficulty  string
	Effect      string
	Rarity      Rarity
	Color       string // hex, e.g. "#e74c3c"
	Icon        string // a single glyph or emoji
}

// Rarity is the quality tier of a recipe. Used for display grouping only.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

// Rarities lists every tier from lowest to highest.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// String returns the display name of the tier.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// Rank orders tiers for display, higher first. Unknown tiers sort last.
func (r Rarity) Rank() int {
	if r < RarityCommon || r > RarityLegendary {
		return -1
	}
	return int(r)
}

var titleCaser = cases.Title(language.English)

// ParseRarity converts a tier name to a Rarity. Matching ignores case and
// surrounding whitespace.
func ParseRarity(s string) (Rarity, error) {
	name := titleCaser.String(strings.TrimSpace(s))
	for _, r := range Rarities {
		if r.String() == name {
			return r, nil
		}
	}
	return RarityCommon, fmt.Errorf("%w: %q", ErrInvalidRarity, s)
}

// Clone returns a deep copy so callers can't alias the catalog's slices.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	c := *r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	return &c
}

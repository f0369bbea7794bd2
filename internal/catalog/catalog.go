// Package catalog provides the read-only species reference data the rules
// engine draws from. The data ships embedded in the binary; the catalog is
// immutable after Load and safe for concurrent use.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"pta-server/shared/models"
)

//go:embed data/species.json
var dataFS embed.FS

// Species is one dex entry.
type Species struct {
	DexNo          int              `json:"dexNo"`
	Name           string           `json:"name"`
	Types          []string         `json:"types"`
	Stats          models.StatBlock `json:"stats"`
	Moves          []string         `json:"moves"`
	CatchRate      int              `json:"catchRate"`
	Size           string           `json:"size"`
	Weight         string           `json:"weight"`
	Rarity         string           `json:"rarity"`
	Genderless     bool             `json:"genderless,omitempty"`
	AlternateForms []string         `json:"alternateForms,omitempty"`
}

// Catalog is the loaded species set.
type Catalog struct {
	byName   map[string]*Species
	maxDexNo int
}

var natures = []string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

// Load parses the embedded species data.
func Load() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/species.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read species data: %w", err)
	}
	var entries []Species
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse species data: %w", err)
	}
	c := &Catalog{byName: make(map[string]*Species, len(entries))}
	for i := range entries {
		sp := &entries[i]
		c.byName[strings.ToLower(sp.Name)] = sp
		if sp.DexNo > c.maxDexNo {
			c.maxDexNo = sp.DexNo
		}
	}
	return c, nil
}

// ResolveSpecies looks a species up by name, case-insensitively. Underscores
// stand in for slashes in form names coming off the wire.
func (c *Catalog) ResolveSpecies(name string) (*Species, error) {
	key := strings.ToLower(strings.ReplaceAll(name, "_", "/"))
	sp, ok := c.byName[key]
	if !ok {
		return nil, fmt.Errorf("unknown species %q: %w", name, models.ErrNotFound)
	}
	return sp, nil
}

// SpeciesCount returns the exclusive upper bound of valid dex numbers.
func (c *Catalog) SpeciesCount() int {
	return c.maxDexNo + 1
}

// ValidDexNo reports whether n falls inside the catalog's dex range.
func (c *Catalog) ValidDexNo(n int) bool {
	return n >= 1 && n < c.SpeciesCount()
}

// SpawnOptions control NewPokemon. Zero values mean "randomize".
type SpawnOptions struct {
	Nickname   string
	Gender     string
	Nature     string
	Status     string
	ForceShiny bool
}

const shinyOdds = 512

// NewPokemon builds a wild pokemon record from a species entry. Gender and
// nature are randomized unless supplied; shininess rolls at 1 in 512.
func (c *Catalog) NewPokemon(sp *Species, gameID uuid.UUID, opts SpawnOptions) models.Pokemon {
	gender := opts.Gender
	if sp.Genderless {
		gender = "Genderless"
	} else if gender == "" {
		if rand.Intn(2) == 0 {
			gender = "Male"
		} else {
			gender = "Female"
		}
	}
	nature := opts.Nature
	if nature == "" {
		nature = natures[rand.Intn(len(natures))]
	}
	status := opts.Status
	if status == "" {
		status = models.StatusNormal
	}
	nickname := opts.Nickname
	if nickname == "" {
		nickname = sp.Name
	}
	nickname = models.TruncateNickname(nickname)
	return models.Pokemon{
		PokemonID:    uuid.New(),
		GameID:       gameID,
		DexNo:        sp.DexNo,
		SpeciesName:  sp.Name,
		Nickname:     nickname,
		Gender:       gender,
		Nature:       nature,
		Status:       status,
		Types:        append([]string(nil), sp.Types...),
		Moves:        append([]string(nil), sp.Moves...),
		CatchRate:    sp.CatchRate,
		IsShiny:      opts.ForceShiny || rand.Intn(shinyOdds) == 0,
		PokemonStats: sp.Stats,
		CurrentHP:    sp.Stats.HP,
		Size:         sp.Size,
		Weight:       sp.Weight,
	}
}

// HasAlternateForm reports whether form is one of the species' alternate
// forms, case-insensitively.
func (sp *Species) HasAlternateForm(form string) bool {
	target := strings.ToLower(strings.ReplaceAll(form, "_", "/"))
	for _, f := range sp.AlternateForms {
		if strings.ToLower(f) == target {
			return true
		}
	}
	return false
}

// HasType reports whether the species carries the given type.
func (sp *Species) HasType(t string) bool {
	for _, typ := range sp.Types {
		if strings.EqualFold(typ, t) {
			return true
		}
	}
	return false
}

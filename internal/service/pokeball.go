package service

import (
	"strings"

	"pta-server/shared/models"
)

// Modifier tiers. Lower is better for the thrower: the catch succeeds when
// roll(1..100) + modifier < catch rate.
const (
	basicBallModifier = 5
	greatBallModifier = 0
	ultraBallModifier = -5

	masterBallModifier = -100
	safariModifier     = -20
	typeBallModifier   = -15
	envBallModifier    = -12
	nicheBallModifier  = -10

	faintedPenalty = 100

	// UnknownBallModifier guarantees failure and signals a bad ball name.
	UnknownBallModifier = 1000
)

// typeBalls maps each type-affine ball to the types it favors.
var typeBalls = map[string][]string{
	"heat_ball":   {"Electric", "Fire"},
	"earth_ball":  {"Grass", "Ground"},
	"fine_ball":   {"Normal", "Fairy"},
	"haunt_ball":  {"Dark", "Ghost"},
	"net_ball":    {"Water", "Bug"},
	"mystic_ball": {"Dragon", "Psychic"},
	"air_ball":    {"Flying", "Ice"},
	"mold_ball":   {"Poison", "Fighting"},
	"solid_ball":  {"Rock", "Steel"},
}

// envBalls maps each terrain ball to the environment tag it favors.
var envBalls = map[string]string{
	"rainforest_ball": "Rainforest",
	"cave_ball":       "Cave",
	"taiga_ball":      "Taiga",
	"artic_ball":      "Artic",
	"desert_ball":     "Desert",
	"urban_ball":      "Urban",
	"freshwater_ball": "Freshwater",
	"beach_ball":      "Beach",
	"tundra_ball":     "Tundra",
	"grassland_ball":  "Grassland",
	"marsh_ball":      "Marsh",
	"forest_ball":     "Forest",
	"mountain_ball":   "Mountain",
	"dusk_ball":       "NoSunlight",
}

// NormalizeBall canonicalizes a pokeball name: lower case, spaces to
// underscores.
func NormalizeBall(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// KnownBall reports whether the name parses as a pokeball.
func KnownBall(name string) bool {
	return CatchModifier(name, &models.Pokemon{CurrentHP: 1}, &models.Setting{}, false) != UnknownBallModifier
}

// CatchModifier computes the roll modifier for throwing the named ball at
// the target inside the given encounter. priorCaught is whether the thrower
// has already caught this species.
func CatchModifier(ball string, target *models.Pokemon, setting *models.Setting, priorCaught bool) int {
	name := NormalizeBall(ball)

	// A fainted target escapes every ball except the save ball.
	if target.IsFainted() && name != "save_ball" {
		return faintedPenalty
	}

	if types, ok := typeBalls[name]; ok {
		for _, t := range types {
			if targetHasType(target, t) {
				return typeBallModifier
			}
		}
		return basicBallModifier
	}
	if env, ok := envBalls[name]; ok {
		if setting.HasEnvironment(env) {
			return envBallModifier
		}
		return basicBallModifier
	}

	switch name {
	case "poke_ball", "level_ball", "nest_ball", "quick_ball", "moon_ball", "love_ball":
		return basicBallModifier
	case "great_ball", "heal_ball", "friend_ball":
		return greatBallModifier
	case "ultra_ball", "cherish_ball", "premier_ball", "luxury_ball", "timer_ball", "fast_ball", "basic_ball":
		return ultraBallModifier
	case "master_ball":
		return masterBallModifier
	case "park_ball", "sport_ball", "safari_ball":
		if setting.HasEnvironment("Safari") {
			return safariModifier
		}
		return basicBallModifier
	case "heavy_ball":
		if target.Weight == "Heavy" || target.Weight == "Superweight" {
			return typeBallModifier
		}
		return basicBallModifier
	case "lure_ball":
		if setting.Type == models.SettingHostile || setting.Type == models.SettingHybrid {
			return nicheBallModifier
		}
		return basicBallModifier
	case "save_ball":
		if target.IsFainted() {
			return nicheBallModifier
		}
		return basicBallModifier
	case "repeat_ball":
		if priorCaught {
			return nicheBallModifier
		}
		return basicBallModifier
	case "dream_ball":
		if strings.EqualFold(target.Status, models.StatusAsleep) {
			return nicheBallModifier
		}
		return basicBallModifier
	}
	return UnknownBallModifier
}

func targetHasType(p *models.Pokemon, t string) bool {
	for _, typ := range p.Types {
		if strings.EqualFold(typ, t) {
			return true
		}
	}
	return false
}

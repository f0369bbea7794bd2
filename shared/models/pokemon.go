package models

import "github.com/google/uuid"

// Pokemon statuses the rules engine cares about. Status is free-form
// otherwise; these values have mechanical effects.
const (
	StatusNormal = "Normal"
	StatusAsleep = "Asleep"
)

// Pokemon is a single creature record. TrainerID is uuid.Nil for wild
// pokemon; OriginalTrainerID is set once at first capture and never changes.
type Pokemon struct {
	PokemonID         uuid.UUID `db:"pokemon_id" json:"pokemonId"`
	DexNo             int       `db:"dex_no" json:"dexNo"`
	SpeciesName       string    `db:"species_name" json:"speciesName"`
	Nickname          string    `db:"nickname" json:"nickname"`
	Form              string    `db:"form" json:"form"`
	Gender            string    `db:"gender" json:"gender"`
	Nature            string    `db:"nature" json:"nature"`
	Status            string    `db:"status" json:"status"`
	Types             []string  `db:"types" json:"types"`
	Moves             []string  `db:"moves" json:"moves"`
	CatchRate         int       `db:"catch_rate" json:"catchRate"`
	IsShiny           bool      `db:"is_shiny" json:"isShiny"`
	IsOnActiveTeam    bool      `db:"is_on_active_team" json:"isOnActiveTeam"`
	CanEvolve         bool      `db:"can_evolve" json:"canEvolve"`
	Pokeball          string    `db:"pokeball" json:"pokeball"`
	TrainerID         uuid.UUID `db:"trainer_id" json:"trainerId"`
	OriginalTrainerID uuid.UUID `db:"original_trainer_id" json:"originalTrainerId"`
	GameID            uuid.UUID `db:"game_id" json:"gameId"`
	PokemonStats      StatBlock `db:"pokemon_stats" json:"pokemonStats"`
	CurrentHP         int       `db:"current_hp" json:"currentHP"`
	Size              string    `db:"size" json:"size"`
	Weight            string    `db:"weight" json:"weight"`
}

// TruncateNickname caps a nickname at MaxNicknameLength runes, so a
// multi-byte name is never cut mid-rune.
func TruncateNickname(nickname string) string {
	runes := []rune(nickname)
	if len(runes) > MaxNicknameLength {
		return string(runes[:MaxNicknameLength])
	}
	return nickname
}

// IsFainted reports whether the pokemon is out of hit points.
func (p *Pokemon) IsFainted() bool {
	return p.CurrentHP < 1
}

// IsWild reports whether the pokemon has no owner.
func (p *Pokemon) IsWild() bool {
	return p.TrainerID == uuid.Nil
}

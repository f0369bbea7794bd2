package models

import "github.com/google/uuid"

// Game-wide limits enforced by the services.
const (
	MaxItemStack        = 100
	MaxPartySize        = 6
	MaxNicknameLength   = 18
	MinMoveCount        = 3
	MaxMoveCount        = 6
	MaxSettingNameLimit = 30
)

// StatBlock is the six-stat spread shared by trainers, npcs and pokemon.
type StatBlock struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// Item is one bag entry. Amount never exceeds MaxItemStack.
type Item struct {
	Name    string `json:"name"`
	Effects string `json:"effects"`
	Amount  int    `json:"amount"`
	Type    string `json:"type"`
}

// Trainer is a player character inside one game. IsAllowed tracks GM
// approval for joining, IsOnline tracks connection presence.
type Trainer struct {
	TrainerID      uuid.UUID `db:"trainer_id" json:"trainerId"`
	UserID         uuid.UUID `db:"user_id" json:"userId"`
	GameID         uuid.UUID `db:"game_id" json:"gameId"`
	TrainerName    string    `db:"trainer_name" json:"trainerName"`
	IsGM           bool      `db:"is_gm" json:"isGM"`
	IsAllowed      bool      `db:"is_allowed" json:"isAllowed"`
	IsOnline       bool      `db:"is_online" json:"isOnline"`
	Money          int       `db:"money" json:"money"`
	Honors         []string  `db:"honors" json:"honors"`
	TrainerClasses []string  `db:"trainer_classes" json:"trainerClasses"`
	Feats          []string  `db:"feats" json:"feats"`
	Items          []Item    `db:"items" json:"items"`
	TrainerStats   StatBlock `db:"trainer_stats" json:"trainerStats"`
	CurrentHP      int       `db:"current_hp" json:"currentHP"`
	Origin         string    `db:"origin" json:"origin"`
	Description    string    `db:"description" json:"description"`
}

// NPC is a game-master controlled character. It carries just enough of the
// trainer shape to stand in an encounter.
type NPC struct {
	NPCID          uuid.UUID `db:"npc_id" json:"npcId"`
	GameID         uuid.UUID `db:"game_id" json:"gameId"`
	TrainerName    string    `db:"trainer_name" json:"trainerName"`
	TrainerClasses []string  `db:"trainer_classes" json:"trainerClasses"`
	Feats          []string  `db:"feats" json:"feats"`
	TrainerStats   StatBlock `db:"trainer_stats" json:"trainerStats"`
	CurrentHP      int       `db:"current_hp" json:"currentHP"`
}

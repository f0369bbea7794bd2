package models

import "github.com/google/uuid"

// DexItem records one trainer's progress against one dex entry.
// Both flags are monotonic, and IsCaught implies IsSeen.
type DexItem struct {
	TrainerID uuid.UUID `db:"trainer_id" json:"trainerId"`
	GameID    uuid.UUID `db:"game_id" json:"gameId"`
	DexNo     int       `db:"dex_no" json:"dexNo"`
	IsSeen    bool      `db:"is_seen" json:"isSeen"`
	IsCaught  bool      `db:"is_caught" json:"isCaught"`
}

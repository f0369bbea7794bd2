package models

import (
	"time"

	"github.com/google/uuid"
)

// GameLog is one line of a game's audit trail. Every mutating operation
// against a game appends one.
type GameLog struct {
	LogID     uuid.UUID `db:"log_id" json:"logId"`
	GameID    uuid.UUID `db:"game_id" json:"gameId"`
	Actor     string    `db:"actor" json:"user"`
	Action    string    `db:"action" json:"action"`
	Timestamp time.Time `db:"created_at" json:"logTimestamp"`
}

// NewGameLog stamps a log entry with the current time.
func NewGameLog(gameID uuid.UUID, actor, action string) GameLog {
	return GameLog{
		LogID:     uuid.New(),
		GameID:    gameID,
		Actor:     actor,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}

package models

import "github.com/google/uuid"

// Game is a single tabletop session. The password hash guards joining,
// the nickname is what players see in listings.
type Game struct {
	GameID       uuid.UUID `db:"game_id" json:"gameId"`
	Nickname     string    `db:"nickname" json:"nickname"`
	IsOnline     bool      `db:"is_online" json:"isOnline"`
	PasswordHash string    `db:"password_hash" json:"-"`
}

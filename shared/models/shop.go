package models

import "github.com/google/uuid"

// Ware is one line of a shop's inventory. Quantity -1 means unlimited stock.
type Ware struct {
	Cost     int    `json:"cost"`
	Effects  string `json:"effects"`
	Quantity int    `json:"quantity"`
	Type     string `json:"type"`
}

// Shop sells items to trainers within one game.
type Shop struct {
	ShopID    uuid.UUID       `db:"shop_id" json:"shopId"`
	GameID    uuid.UUID       `db:"game_id" json:"gameId"`
	Name      string          `db:"name" json:"name"`
	IsActive  bool            `db:"is_active" json:"isActive"`
	Inventory map[string]Ware `db:"inventory" json:"inventory"`
}

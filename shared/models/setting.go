package models

import (
	"strings"

	"github.com/google/uuid"
)

// SettingType classifies an encounter.
type SettingType string

const (
	SettingHostile    SettingType = "Hostile"
	SettingNonHostile SettingType = "NonHostile"
	SettingHybrid     SettingType = "Hybrid"
)

// ValidSettingType reports whether t is one of the known encounter types.
func ValidSettingType(t SettingType) bool {
	switch t {
	case SettingHostile, SettingNonHostile, SettingHybrid:
		return true
	}
	return false
}

// ParticipantType tags the source record a participant was derived from.
type ParticipantType string

const (
	ParticipantTrainer        ParticipantType = "Trainer"
	ParticipantPokemon        ParticipantType = "Pokemon"
	ParticipantEnemyNpc       ParticipantType = "EnemyNpc"
	ParticipantEnemyPokemon   ParticipantType = "EnemyPokemon"
	ParticipantNeutralNpc     ParticipantType = "NeutralNpc"
	ParticipantNeutralPokemon ParticipantType = "NeutralPokemon"
)

// MapPosition is a cell on the encounter grid.
type MapPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SettingParticipant is a denormalized snapshot of a trainer, npc or pokemon
// standing on the encounter grid. HP values go stale until RefreshHP.
type SettingParticipant struct {
	ParticipantID uuid.UUID       `json:"participantId"`
	Name          string          `json:"name"`
	Type          ParticipantType `json:"type"`
	Position      MapPosition     `json:"position"`
	Speed         int             `json:"speed"`
	CurrentHP     int             `json:"currentHP"`
}

// Setting is one encounter. At most one setting per game is active at a time.
type Setting struct {
	SettingID    uuid.UUID            `db:"setting_id" json:"settingId"`
	GameID       uuid.UUID            `db:"game_id" json:"gameId"`
	Name         string               `db:"name" json:"name"`
	Type         SettingType          `db:"type" json:"type"`
	IsActive     bool                 `db:"is_active" json:"isActive"`
	Participants []SettingParticipant `db:"participants" json:"participants"`
	Environment  []string             `db:"environment" json:"environment"`
	Shops        []uuid.UUID          `db:"shops" json:"shops"`
}

// ParticipantAt returns the participant occupying the given cell, or nil.
func (s *Setting) ParticipantAt(pos MapPosition) *SettingParticipant {
	for i := range s.Participants {
		if s.Participants[i].Position == pos {
			return &s.Participants[i]
		}
	}
	return nil
}

// Participant returns the participant with the given id, or nil.
func (s *Setting) Participant(id uuid.UUID) *SettingParticipant {
	for i := range s.Participants {
		if s.Participants[i].ParticipantID == id {
			return &s.Participants[i]
		}
	}
	return nil
}

// HasEnvironment reports whether the setting carries the given environment
// tag, case-insensitively.
func (s *Setting) HasEnvironment(tag string) bool {
	for _, env := range s.Environment {
		if strings.EqualFold(env, tag) {
			return true
		}
	}
	return false
}

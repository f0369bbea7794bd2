package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// SettingService is the encounter state machine: creation, the single-active
// rule, grid placement and movement, and HP refresh.
type SettingService interface {
	CreateSetting(ctx context.Context, gameID uuid.UUID, name string, settingType models.SettingType) (*models.Setting, error)
	GetSetting(ctx context.Context, settingID uuid.UUID) (*models.Setting, error)
	GetActiveSetting(ctx context.Context, gameID uuid.UUID) (*models.Setting, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Setting, error)
	SetActive(ctx context.Context, settingID uuid.UUID, actor string) (*models.Setting, error)
	SetInactive(ctx context.Context, settingID uuid.UUID, actor string) (*models.Setting, error)
	Join(ctx context.Context, settingID uuid.UUID, participant models.SettingParticipant) (*models.Setting, error)
	// Move relocates a participant. actorTrainerID is the trainer making the
	// move; uuid.Nil marks a GM move, which skips both the ownership check
	// and the speed limit. A player may only move their own trainer piece or
	// a pokemon they own, and the Euclidean distance must not exceed the
	// participant's speed.
	Move(ctx context.Context, settingID, participantID uuid.UUID, dest models.MapPosition, actorTrainerID uuid.UUID) (*models.Setting, error)
	Leave(ctx context.Context, settingID, participantID uuid.UUID) (*models.Setting, error)
	RefreshHP(ctx context.Context, settingID uuid.UUID) (*models.Setting, error)
	SetEnvironment(ctx context.Context, settingID uuid.UUID, tags []string) (*models.Setting, error)
	DeleteSetting(ctx context.Context, settingID uuid.UUID) error
}

// Compile-time check
var _ SettingService = (*settingServiceImpl)(nil)

type settingServiceImpl struct {
	settings repository.SettingRepository
	trainers repository.TrainerRepository
	npcs     repository.NPCRepository
	pokemon  repository.PokemonRepository
	recorder *logRecorder
	locks    *gameLock
	logger   *zap.Logger
}

func NewSettingService(
	settings repository.SettingRepository,
	trainers repository.TrainerRepository,
	npcs repository.NPCRepository,
	pokemon repository.PokemonRepository,
	recorder *logRecorder,
	locks *gameLock,
	logger *zap.Logger,
) SettingService {
	return &settingServiceImpl{
		settings: settings,
		trainers: trainers,
		npcs:     npcs,
		pokemon:  pokemon,
		recorder: recorder,
		locks:    locks,
		logger:   logger.Named("SettingService"),
	}
}

func (s *settingServiceImpl) CreateSetting(ctx context.Context, gameID uuid.UUID, name string, settingType models.SettingType) (*models.Setting, error) {
	name = strings.TrimSpace(name)
	if len(name) < 1 || len(name) > models.MaxSettingNameLimit {
		return nil, fmt.Errorf("setting name must be 1 to %d characters: %w", models.MaxSettingNameLimit, models.ErrInvalidInput)
	}
	if !models.ValidSettingType(settingType) {
		return nil, fmt.Errorf("unknown setting type %q: %w", settingType, models.ErrInvalidInput)
	}
	setting := &models.Setting{
		SettingID:    uuid.New(),
		GameID:       gameID,
		Name:         name,
		Type:         settingType,
		IsActive:     false,
		Participants: []models.SettingParticipant{},
		Environment:  []string{},
		Shops:        []uuid.UUID{},
	}
	if err := s.settings.Create(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *settingServiceImpl) GetSetting(ctx context.Context, settingID uuid.UUID) (*models.Setting, error) {
	return s.settings.GetByID(ctx, settingID)
}

func (s *settingServiceImpl) GetActiveSetting(ctx context.Context, gameID uuid.UUID) (*models.Setting, error) {
	return s.settings.GetActiveByGame(ctx, gameID)
}

func (s *settingServiceImpl) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Setting, error) {
	return s.settings.ListByGame(ctx, gameID)
}

// SetActive activates an encounter. Only one per game may be active.
func (s *settingServiceImpl) SetActive(ctx context.Context, settingID uuid.UUID, actor string) (*models.Setting, error) {
	setting, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(setting.GameID.String())
	defer unlock()

	active, err := s.settings.GetActiveByGame(ctx, setting.GameID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if active != nil && active.SettingID != setting.SettingID {
		return nil, fmt.Errorf("encounter %q is already active: %w", active.Name, models.ErrConflict)
	}

	setting.IsActive = true
	if err := s.settings.Update(ctx, setting); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, setting.GameID, actor,
		fmt.Sprintf("activated a new encounter (%s)", setting.Name))
	return setting, nil
}

// SetInactive always succeeds for an existing setting.
func (s *settingServiceImpl) SetInactive(ctx context.Context, settingID uuid.UUID, actor string) (*models.Setting, error) {
	setting, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(setting.GameID.String())
	defer unlock()

	setting.IsActive = false
	if err := s.settings.Update(ctx, setting); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, setting.GameID, actor,
		fmt.Sprintf("has closed encounter (%s)", setting.Name))
	return setting, nil
}

func (s *settingServiceImpl) Join(ctx context.Context, settingID uuid.UUID, participant models.SettingParticipant) (*models.Setting, error) {
	setting, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(setting.GameID.String())
	defer unlock()

	setting, err = s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	if setting.Participant(participant.ParticipantID) != nil {
		return nil, fmt.Errorf("participant already present: %w", models.ErrConflict)
	}
	if occupant := setting.ParticipantAt(participant.Position); occupant != nil {
		return nil, fmt.Errorf("cell (%d, %d) is occupied by %s: %w",
			participant.Position.X, participant.Position.Y, occupant.Name, models.ErrConflict)
	}

	setting.Participants = append(setting.Participants, participant)
	if err := s.settings.Update(ctx, setting); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, setting.GameID, participant.Name,
		fmt.Sprintf("joined %s at point (%d, %d)", setting.Name, participant.Position.X, participant.Position.Y))
	return setting, nil
}

func (s *settingServiceImpl) Move(ctx context.Context, settingID, participantID uuid.UUID, dest models.MapPosition, actorTrainerID uuid.UUID) (*models.Setting, error) {
	setting, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(setting.GameID.String())
	defer unlock()

	setting, err = s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	mover := setting.Participant(participantID)
	if mover == nil {
		return nil, fmt.Errorf("participant not in encounter: %w", models.ErrNotFound)
	}
	if actorTrainerID != uuid.Nil {
		if err := s.authorizeMove(ctx, mover, actorTrainerID); err != nil {
			return nil, err
		}
		dx := float64(dest.X - mover.Position.X)
		dy := float64(dest.Y - mover.Position.Y)
		if math.Sqrt(dx*dx+dy*dy) > float64(mover.Speed) {
			return nil, fmt.Errorf("point (%d, %d) exceeds speed %d: %w",
				dest.X, dest.Y, mover.Speed, models.ErrMovementRange)
		}
	}
	if occupant := setting.ParticipantAt(dest); occupant != nil && occupant.ParticipantID != participantID {
		return nil, fmt.Errorf("cell (%d, %d) is occupied by %s: %w",
			dest.X, dest.Y, occupant.Name, models.ErrConflict)
	}

	mover.Position = dest
	if err := s.settings.Update(ctx, setting); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, setting.GameID, mover.Name,
		fmt.Sprintf("moved to point (%d, %d)", dest.X, dest.Y))
	return setting, nil
}

// authorizeMove verifies the acting trainer owns the piece being moved:
// their own trainer participant or a pokemon they own. NPC pieces are run
// by the GM.
func (s *settingServiceImpl) authorizeMove(ctx context.Context, mover *models.SettingParticipant, actorTrainerID uuid.UUID) error {
	switch mover.Type {
	case models.ParticipantTrainer:
		if mover.ParticipantID != actorTrainerID {
			return fmt.Errorf("%s belongs to another trainer: %w", mover.Name, models.ErrForbidden)
		}
	case models.ParticipantPokemon, models.ParticipantEnemyPokemon, models.ParticipantNeutralPokemon:
		pokemon, err := s.pokemon.GetByID(ctx, mover.ParticipantID)
		if err != nil {
			return err
		}
		if pokemon.TrainerID != actorTrainerID {
			return fmt.Errorf("%s belongs to another trainer: %w", mover.Name, models.ErrForbidden)
		}
	default:
		return fmt.Errorf("%s is run by the GM: %w", mover.Name, models.ErrForbidden)
	}
	return nil
}

func (s *settingServiceImpl) Leave(ctx context.Context, settingID, participantID uuid.UUID) (*models.Setting, error) {
	setting, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(setting.GameID.String())
	defer unlock()

	setting, err = s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	removed := removeParticipant(setting, participantID)
	if removed == nil {
		return nil, fmt.Errorf("participant not in encounter: %w", models.ErrNotFound)
	}
	if err := s.settings.Update(ctx, setting); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, setting.GameID, removed.Name,
		fmt.Sprintf("has been removed from %s", setting.Name))
	return setting, nil
}

func removeParticipant(setting *models.Setting, participantID uuid.UUID) *models.SettingParticipant {
	for i := range setting.Participants {
		if setting.Participants[i].ParticipantID == participantID {
			removed := setting.Participants[i]
			setting.Participants = append(setting.Participants[:i], setting.Participants[i+1:]...)
			return &removed
		}
	}
	return nil
}

// RefreshHP rebuilds each participant's HP snapshot from its live source
// record. Participants whose source record vanished are left as they are.
func (s *settingServiceImpl) RefreshHP(ctx context.Context, settingID uuid.UUID) (*models.Setting, error) {
	setting, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(setting.GameID.String())
	defer unlock()

	setting, err = s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	for i := range setting.Participants {
		p := &setting.Participants[i]
		switch p.Type {
		case models.ParticipantTrainer:
			if trainer, err := s.trainers.GetByID(ctx, p.ParticipantID); err == nil {
				p.CurrentHP = trainer.CurrentHP
				p.Speed = trainer.TrainerStats.Speed
			}
		case models.ParticipantEnemyNpc, models.ParticipantNeutralNpc:
			if npc, err := s.npcs.GetByID(ctx, p.ParticipantID); err == nil {
				p.CurrentHP = npc.CurrentHP
				p.Speed = npc.TrainerStats.Speed
			}
		case models.ParticipantPokemon, models.ParticipantEnemyPokemon, models.ParticipantNeutralPokemon:
			if pokemon, err := s.pokemon.GetByID(ctx, p.ParticipantID); err == nil {
				p.CurrentHP = pokemon.CurrentHP
				p.Speed = pokemon.PokemonStats.Speed
			}
		}
	}
	if err := s.settings.Update(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *settingServiceImpl) SetEnvironment(ctx context.Context, settingID uuid.UUID, tags []string) (*models.Setting, error) {
	setting, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	setting.Environment = tags
	if err := s.settings.Update(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *settingServiceImpl) DeleteSetting(ctx context.Context, settingID uuid.UUID) error {
	return s.settings.Delete(ctx, settingID)
}

// ParticipantFromTrainer derives an encounter snapshot from a trainer record.
func ParticipantFromTrainer(trainer *models.Trainer, pos models.MapPosition) models.SettingParticipant {
	return models.SettingParticipant{
		ParticipantID: trainer.TrainerID,
		Name:          trainer.TrainerName,
		Type:          models.ParticipantTrainer,
		Position:      pos,
		Speed:         trainer.TrainerStats.Speed,
		CurrentHP:     trainer.CurrentHP,
	}
}

// ParticipantFromNPC derives an encounter snapshot from an npc record.
func ParticipantFromNPC(npc *models.NPC, participantType models.ParticipantType, pos models.MapPosition) models.SettingParticipant {
	return models.SettingParticipant{
		ParticipantID: npc.NPCID,
		Name:          npc.TrainerName,
		Type:          participantType,
		Position:      pos,
		Speed:         npc.TrainerStats.Speed,
		CurrentHP:     npc.CurrentHP,
	}
}

// ParticipantFromPokemon derives an encounter snapshot from a pokemon record.
func ParticipantFromPokemon(pokemon *models.Pokemon, participantType models.ParticipantType, pos models.MapPosition) models.SettingParticipant {
	return models.SettingParticipant{
		ParticipantID: pokemon.PokemonID,
		Name:          pokemon.Nickname,
		Type:          participantType,
		Position:      pos,
		Speed:         pokemon.PokemonStats.Speed,
		CurrentHP:     pokemon.CurrentHP,
	}
}

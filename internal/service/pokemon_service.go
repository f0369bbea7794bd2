package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/internal/catalog"
	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// PokemonService covers the lifecycle of owned creatures: evolution, form
// switching and the small single-field updates.
type PokemonService interface {
	GetPokemon(ctx context.Context, pokemonID uuid.UUID) (*models.Pokemon, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.Pokemon, error)
	Evolve(ctx context.Context, pokemonID uuid.UUID, targetSpecies, nickname string, keptMoves, newMoves []string) (*models.Pokemon, error)
	SwitchForm(ctx context.Context, pokemonID uuid.UUID, form string) (*models.Pokemon, error)
	UpdateHP(ctx context.Context, pokemonID uuid.UUID, hp int) (*models.Pokemon, error)
	SetNickname(ctx context.Context, pokemonID uuid.UUID, nickname string) error
	MarkEvolvable(ctx context.Context, pokemonID uuid.UUID) error
	SetActiveTeam(ctx context.Context, pokemonID uuid.UUID, onTeam bool) error
	DeletePokemon(ctx context.Context, pokemonID uuid.UUID) error
}

// Compile-time check
var _ PokemonService = (*pokemonServiceImpl)(nil)

type pokemonServiceImpl struct {
	pokemon  repository.PokemonRepository
	trainers repository.TrainerRepository
	dex      repository.DexRepository
	catalog  *catalog.Catalog
	recorder *logRecorder
	locks    *gameLock
	logger   *zap.Logger
}

func NewPokemonService(
	pokemon repository.PokemonRepository,
	trainers repository.TrainerRepository,
	dex repository.DexRepository,
	cat *catalog.Catalog,
	recorder *logRecorder,
	locks *gameLock,
	logger *zap.Logger,
) PokemonService {
	return &pokemonServiceImpl{
		pokemon:  pokemon,
		trainers: trainers,
		dex:      dex,
		catalog:  cat,
		recorder: recorder,
		locks:    locks,
		logger:   logger.Named("PokemonService"),
	}
}

func (s *pokemonServiceImpl) GetPokemon(ctx context.Context, pokemonID uuid.UUID) (*models.Pokemon, error) {
	return s.pokemon.GetByID(ctx, pokemonID)
}

func (s *pokemonServiceImpl) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.Pokemon, error) {
	return s.pokemon.ListByTrainer(ctx, trainerID)
}

// Evolve replaces the record with a fresh one built from the target species.
// The caller chooses which current moves to keep and which new ones to learn;
// identity fields carry over untouched.
func (s *pokemonServiceImpl) Evolve(ctx context.Context, pokemonID uuid.UUID, targetSpecies, nickname string, keptMoves, newMoves []string) (*models.Pokemon, error) {
	current, err := s.pokemon.GetByID(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	if !current.CanEvolve {
		return nil, fmt.Errorf("pokemon is not cleared to evolve: %w", models.ErrInvalidInput)
	}

	total := len(keptMoves) + len(newMoves)
	if total < models.MinMoveCount || total > models.MaxMoveCount {
		return nil, fmt.Errorf("move count %d outside allowed range: %w", total, models.ErrInvalidInput)
	}
	for _, kept := range keptMoves {
		if !containsFold(current.Moves, kept) {
			return nil, fmt.Errorf("kept move %q is not known: %w", kept, models.ErrInvalidInput)
		}
	}

	species, err := s.catalog.ResolveSpecies(targetSpecies)
	if err != nil {
		return nil, fmt.Errorf("target species: %w", models.ErrInvalidInput)
	}

	unlock := s.locks.Lock(current.GameID.String())
	defer unlock()

	if nickname == "" {
		nickname = current.Nickname
		// A default nickname follows the species forward.
		if strings.EqualFold(current.Nickname, current.SpeciesName) {
			nickname = species.Name
		}
	}
	nickname = models.TruncateNickname(nickname)

	evolved := s.catalog.NewPokemon(species, current.GameID, catalog.SpawnOptions{
		Nickname: nickname,
		Gender:   current.Gender,
		Nature:   current.Nature,
		Status:   current.Status,
	})
	evolved.PokemonID = current.PokemonID
	evolved.TrainerID = current.TrainerID
	evolved.OriginalTrainerID = current.OriginalTrainerID
	evolved.IsOnActiveTeam = current.IsOnActiveTeam
	evolved.IsShiny = current.IsShiny
	evolved.CanEvolve = current.CanEvolve
	evolved.Pokeball = current.Pokeball
	evolved.Moves = append(append([]string{}, keptMoves...), newMoves...)

	if err := s.pokemon.Update(ctx, &evolved); err != nil {
		return nil, fmt.Errorf("failed to save evolved pokemon: %w", err)
	}

	if trainer, terr := s.trainers.GetByID(ctx, evolved.TrainerID); terr == nil {
		s.markCaught(ctx, trainer, evolved.DexNo)
		s.recorder.Record(ctx, evolved.GameID, trainer.TrainerName,
			fmt.Sprintf("evolved their %s to an %s", current.Nickname, species.Name))
	}
	return &evolved, nil
}

// SwitchForm moves the pokemon between its species' alternate forms. Moves
// and stats stay as they are.
func (s *pokemonServiceImpl) SwitchForm(ctx context.Context, pokemonID uuid.UUID, form string) (*models.Pokemon, error) {
	pokemon, err := s.pokemon.GetByID(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	species, err := s.catalog.ResolveSpecies(pokemon.SpeciesName)
	if err != nil {
		return nil, fmt.Errorf("species lookup: %w", err)
	}
	normalized := strings.ReplaceAll(form, "_", "/")
	if !species.HasAlternateForm(normalized) {
		return nil, fmt.Errorf("species %s has no %q form: %w", species.Name, form, models.ErrInvalidInput)
	}
	pokemon.Form = normalized
	if err := s.pokemon.Update(ctx, pokemon); err != nil {
		return nil, fmt.Errorf("failed to save form switch: %w", err)
	}
	if trainer, terr := s.trainers.GetByID(ctx, pokemon.TrainerID); terr == nil {
		s.recorder.Record(ctx, pokemon.GameID, trainer.TrainerName,
			fmt.Sprintf("changed their %s to its %s form", pokemon.Nickname, normalized))
	}
	return pokemon, nil
}

// UpdateHP sets current HP, bounded to [-maxHP, maxHP].
func (s *pokemonServiceImpl) UpdateHP(ctx context.Context, pokemonID uuid.UUID, hp int) (*models.Pokemon, error) {
	pokemon, err := s.pokemon.GetByID(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	maxHP := pokemon.PokemonStats.HP
	if hp > maxHP {
		hp = maxHP
	}
	if hp < -maxHP {
		hp = -maxHP
	}
	pokemon.CurrentHP = hp
	if err := s.pokemon.Update(ctx, pokemon); err != nil {
		return nil, fmt.Errorf("failed to save hp: %w", err)
	}
	return pokemon, nil
}

func (s *pokemonServiceImpl) SetNickname(ctx context.Context, pokemonID uuid.UUID, nickname string) error {
	if strings.TrimSpace(nickname) == "" {
		return fmt.Errorf("nickname is required: %w", models.ErrInvalidInput)
	}
	nickname = models.TruncateNickname(nickname)
	pokemon, err := s.pokemon.GetByID(ctx, pokemonID)
	if err != nil {
		return err
	}
	pokemon.Nickname = nickname
	return s.pokemon.Update(ctx, pokemon)
}

func (s *pokemonServiceImpl) MarkEvolvable(ctx context.Context, pokemonID uuid.UUID) error {
	pokemon, err := s.pokemon.GetByID(ctx, pokemonID)
	if err != nil {
		return err
	}
	pokemon.CanEvolve = true
	return s.pokemon.Update(ctx, pokemon)
}

func (s *pokemonServiceImpl) SetActiveTeam(ctx context.Context, pokemonID uuid.UUID, onTeam bool) error {
	pokemon, err := s.pokemon.GetByID(ctx, pokemonID)
	if err != nil {
		return err
	}
	if onTeam && !pokemon.IsOnActiveTeam {
		count, err := s.pokemon.CountActiveTeam(ctx, pokemon.TrainerID)
		if err != nil {
			return err
		}
		if count >= models.MaxPartySize {
			return fmt.Errorf("active team is full: %w", models.ErrConflict)
		}
	}
	pokemon.IsOnActiveTeam = onTeam
	return s.pokemon.Update(ctx, pokemon)
}

func (s *pokemonServiceImpl) DeletePokemon(ctx context.Context, pokemonID uuid.UUID) error {
	return s.pokemon.Delete(ctx, pokemonID)
}

// markCaught lazily creates the dex entry and raises both flags.
func (s *pokemonServiceImpl) markCaught(ctx context.Context, trainer *models.Trainer, dexNo int) {
	if !s.catalog.ValidDexNo(dexNo) {
		return
	}
	item := &models.DexItem{
		TrainerID: trainer.TrainerID,
		GameID:    trainer.GameID,
		DexNo:     dexNo,
		IsSeen:    true,
		IsCaught:  true,
	}
	if err := s.dex.Upsert(ctx, item); err != nil {
		s.logger.Warn("Failed to mark dex entry caught",
			zap.String("trainerID", trainer.TrainerID.String()), zap.Int("dexNo", dexNo), zap.Error(err))
	}
}

func containsFold(list []string, target string) bool {
	for _, s := range list {
		if strings.EqualFold(s, target) {
			return true
		}
	}
	return false
}

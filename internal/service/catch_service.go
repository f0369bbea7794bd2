package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/internal/catalog"
	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// CatchResult reports one catch attempt.
type CatchResult struct {
	Success bool            `json:"success"`
	Roll    int             `json:"roll"`
	Pokemon *models.Pokemon `json:"pokemon,omitempty"`
	Message string          `json:"message"`
}

// CatchService rolls catch attempts and spawns wild pokemon.
type CatchService interface {
	// Catch throws one ball at a wild pokemon. catchRate is the difficulty
	// of this particular throw, decided by the caller, not by the engine.
	// The ball is consumed whether or not the attempt lands.
	Catch(ctx context.Context, trainerID, pokemonID uuid.UUID, ball, nickname string, catchRate int) (*CatchResult, error)
	// SpawnWild creates an unowned pokemon in the game.
	SpawnWild(ctx context.Context, gameID uuid.UUID, speciesName string, opts catalog.SpawnOptions) (*models.Pokemon, error)
}

// Compile-time check
var _ CatchService = (*catchServiceImpl)(nil)

type catchServiceImpl struct {
	trainers repository.TrainerRepository
	pokemon  repository.PokemonRepository
	settings repository.SettingRepository
	dex      repository.DexRepository
	catalog  *catalog.Catalog
	recorder *logRecorder
	locks    *gameLock
	logger   *zap.Logger
	rollDie  func() int
}

func NewCatchService(
	trainers repository.TrainerRepository,
	pokemon repository.PokemonRepository,
	settings repository.SettingRepository,
	dex repository.DexRepository,
	cat *catalog.Catalog,
	recorder *logRecorder,
	locks *gameLock,
	logger *zap.Logger,
) CatchService {
	return &catchServiceImpl{
		trainers: trainers,
		pokemon:  pokemon,
		settings: settings,
		dex:      dex,
		catalog:  cat,
		recorder: recorder,
		locks:    locks,
		logger:   logger.Named("CatchService"),
		rollDie:  func() int { return rand.Intn(100) + 1 },
	}
}

func (s *catchServiceImpl) Catch(ctx context.Context, trainerID, pokemonID uuid.UUID, ball, nickname string, catchRate int) (*CatchResult, error) {
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if !trainer.IsOnline {
		return nil, fmt.Errorf("trainer is offline: %w", models.ErrForbidden)
	}

	unlock := s.locks.Lock(trainer.GameID.String())
	defer unlock()

	target, err := s.pokemon.GetByID(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	if !target.IsWild() {
		return nil, fmt.Errorf("pokemon already has a trainer: %w", models.ErrConflict)
	}
	if target.GameID != trainer.GameID {
		return nil, fmt.Errorf("pokemon belongs to another game: %w", models.ErrInvalidInput)
	}
	setting, err := s.settings.GetActiveByGame(ctx, trainer.GameID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("no active encounter: %w", models.ErrConflict)
		}
		return nil, err
	}
	if !KnownBall(ball) {
		return nil, fmt.Errorf("unknown pokeball %q: %w", ball, models.ErrInvalidInput)
	}

	// One ball leaves the bag no matter how the throw goes.
	trainer, err = s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	held := findBall(trainer, ball)
	if held == nil || held.Amount < 1 {
		return nil, fmt.Errorf("no %q in bag: %w", ball, models.ErrConflict)
	}
	removeItem(trainer, ItemRequest{Name: held.Name, Amount: 1})
	if err := s.trainers.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("failed to consume pokeball: %w", err)
	}

	priorCaught := false
	if entry, derr := s.dex.Get(ctx, trainerID, target.DexNo); derr == nil {
		priorCaught = entry.IsCaught
	}

	roll := s.rollDie() + CatchModifier(ball, target, setting, priorCaught)
	if roll >= catchRate {
		s.recorder.Record(ctx, trainer.GameID, trainer.TrainerName,
			fmt.Sprintf("failed to catch %s", target.Nickname))
		return &CatchResult{
			Success: false,
			Roll:    roll,
			Message: fmt.Sprintf("%s broke free", target.Nickname),
		}, nil
	}

	// Caught: claim the pokemon and pull it off the grid.
	if removeParticipant(setting, target.PokemonID) != nil {
		if err := s.settings.Update(ctx, setting); err != nil {
			return nil, fmt.Errorf("failed to remove catch from encounter: %w", err)
		}
	}
	activeCount, err := s.pokemon.CountActiveTeam(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	target.Pokeball = NormalizeBall(ball)
	target.TrainerID = trainerID
	target.OriginalTrainerID = trainerID
	target.IsOnActiveTeam = activeCount < models.MaxPartySize
	if nickname != "" {
		target.Nickname = models.TruncateNickname(nickname)
	}
	if err := s.pokemon.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to claim pokemon: %w", err)
	}
	s.markCaught(ctx, trainer, target.DexNo)

	s.recorder.Record(ctx, trainer.GameID, trainer.TrainerName,
		fmt.Sprintf("successfully caught a %s named '%s' at %s",
			target.SpeciesName, target.Nickname, time.Now().UTC().Format(time.RFC3339)))
	return &CatchResult{
		Success: true,
		Roll:    roll,
		Pokemon: target,
		Message: fmt.Sprintf("caught %s", target.Nickname),
	}, nil
}

// findBall matches bag entries against the thrown ball name, tolerating the
// space/underscore difference between display and wire forms.
func findBall(trainer *models.Trainer, ball string) *models.Item {
	want := NormalizeBall(ball)
	for i := range trainer.Items {
		if NormalizeBall(trainer.Items[i].Name) == want {
			return &trainer.Items[i]
		}
	}
	return nil
}

func (s *catchServiceImpl) markCaught(ctx context.Context, trainer *models.Trainer, dexNo int) {
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
		s.logger.Warn("Failed to mark dex entry after catch",
			zap.String("trainerID", trainer.TrainerID.String()), zap.Int("dexNo", dexNo), zap.Error(err))
	}
}

func (s *catchServiceImpl) SpawnWild(ctx context.Context, gameID uuid.UUID, speciesName string, opts catalog.SpawnOptions) (*models.Pokemon, error) {
	species, err := s.catalog.ResolveSpecies(speciesName)
	if err != nil {
		return nil, fmt.Errorf("species: %w", models.ErrInvalidInput)
	}
	wild := s.catalog.NewPokemon(species, gameID, opts)
	if err := s.pokemon.Create(ctx, &wild); err != nil {
		return nil, err
	}
	s.logger.Info("Wild pokemon spawned",
		zap.String("gameID", gameID.String()),
		zap.String("species", species.Name),
		zap.Bool("shiny", wild.IsShiny))
	return &wild, nil
}

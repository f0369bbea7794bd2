package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pta-server/internal/catalog"
	"pta-server/shared/models"
)

func newThrower(gameID uuid.UUID, balls ...models.Item) *models.Trainer {
	if balls == nil {
		balls = []models.Item{}
	}
	return &models.Trainer{
		TrainerID:   uuid.New(),
		GameID:      gameID,
		TrainerName: "Ash",
		IsOnline:    true,
		Items:       balls,
	}
}

func newWildPokemon(gameID uuid.UUID) *models.Pokemon {
	return &models.Pokemon{
		PokemonID:   uuid.New(),
		GameID:      gameID,
		DexNo:       25,
		SpeciesName: "Pikachu",
		Nickname:    "Pikachu",
		Status:      models.StatusNormal,
		CatchRate:   40,
		CurrentHP:   5,
	}
}

func TestCatch(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	t.Run("Master ball always lands", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainer := newThrower(gameID, models.Item{Name: "Master Ball", Amount: 1, Type: "Pokeball"})
		target := newWildPokemon(gameID)
		setting := newSetting(gameID)
		setting.IsActive = true

		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil)
		m.pokemon.On("GetByID", ctx, target.PokemonID).Return(target, nil).Once()
		m.settings.On("GetActiveByGame", ctx, gameID).Return(setting, nil).Once()
		m.trainers.On("Update", ctx, mock.MatchedBy(func(tr *models.Trainer) bool {
			return len(tr.Items) == 0
		})).Return(nil).Once()
		m.dex.On("Get", ctx, trainer.TrainerID, 25).Return(nil, models.ErrNotFound).Once()
		m.pokemon.On("CountActiveTeam", ctx, trainer.TrainerID).Return(3, nil).Once()
		m.pokemon.On("Update", ctx, mock.MatchedBy(func(p *models.Pokemon) bool {
			return p.TrainerID == trainer.TrainerID &&
				p.OriginalTrainerID == trainer.TrainerID &&
				p.Pokeball == "master_ball" &&
				p.IsOnActiveTeam
		})).Return(nil).Once()
		m.dex.On("Upsert", ctx, mock.MatchedBy(func(item *models.DexItem) bool {
			return item.DexNo == 25 && item.IsCaught
		})).Return(nil).Once()

		result, err := svcs.Catch.Catch(ctx, trainer.TrainerID, target.PokemonID, "Master Ball", "Sparky", 40)

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Sparky", result.Pokemon.Nickname)
		m.pokemon.AssertExpectations(t)
		m.dex.AssertExpectations(t)
	})

	t.Run("Zero catch rate never lands but still costs the ball", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainer := newThrower(gameID, models.Item{Name: "Great Ball", Amount: 2, Type: "Pokeball"})
		target := newWildPokemon(gameID)
		setting := newSetting(gameID)
		setting.IsActive = true

		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil)
		m.pokemon.On("GetByID", ctx, target.PokemonID).Return(target, nil).Once()
		m.settings.On("GetActiveByGame", ctx, gameID).Return(setting, nil).Once()
		m.trainers.On("Update", ctx, mock.MatchedBy(func(tr *models.Trainer) bool {
			return tr.Items[0].Amount == 1
		})).Return(nil).Once()
		m.dex.On("Get", ctx, trainer.TrainerID, 25).Return(nil, models.ErrNotFound).Once()

		result, err := svcs.Catch.Catch(ctx, trainer.TrainerID, target.PokemonID, "great_ball", "", 0)

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Nil(t, result.Pokemon)
		m.pokemon.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Offline trainer may not throw", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainer := newThrower(gameID)
		trainer.IsOnline = false
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil).Once()

		_, err := svcs.Catch.Catch(ctx, trainer.TrainerID, uuid.New(), "poke_ball", "", 40)

		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("Owned pokemon cannot be caught", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainer := newThrower(gameID)
		target := newWildPokemon(gameID)
		target.TrainerID = uuid.New()
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil)
		m.pokemon.On("GetByID", ctx, target.PokemonID).Return(target, nil).Once()

		_, err := svcs.Catch.Catch(ctx, trainer.TrainerID, target.PokemonID, "poke_ball", "", 40)

		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("No active encounter", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainer := newThrower(gameID)
		target := newWildPokemon(gameID)
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil)
		m.pokemon.On("GetByID", ctx, target.PokemonID).Return(target, nil).Once()
		m.settings.On("GetActiveByGame", ctx, gameID).Return(nil, models.ErrNotFound).Once()

		_, err := svcs.Catch.Catch(ctx, trainer.TrainerID, target.PokemonID, "poke_ball", "", 40)

		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("Unknown pokeball", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainer := newThrower(gameID)
		target := newWildPokemon(gameID)
		setting := newSetting(gameID)
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil)
		m.pokemon.On("GetByID", ctx, target.PokemonID).Return(target, nil).Once()
		m.settings.On("GetActiveByGame", ctx, gameID).Return(setting, nil).Once()

		_, err := svcs.Catch.Catch(ctx, trainer.TrainerID, target.PokemonID, "beach ball", "", 40)

		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("No matching ball in the bag", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainer := newThrower(gameID, models.Item{Name: "Potion", Amount: 3})
		target := newWildPokemon(gameID)
		setting := newSetting(gameID)
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil)
		m.pokemon.On("GetByID", ctx, target.PokemonID).Return(target, nil).Once()
		m.settings.On("GetActiveByGame", ctx, gameID).Return(setting, nil).Once()

		_, err := svcs.Catch.Catch(ctx, trainer.TrainerID, target.PokemonID, "poke_ball", "", 40)

		assert.ErrorIs(t, err, models.ErrConflict)
		m.trainers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Caught pokemon leaves the encounter grid", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainer := newThrower(gameID, models.Item{Name: "Master Ball", Amount: 1, Type: "Pokeball"})
		target := newWildPokemon(gameID)
		setting := newSetting(gameID, models.SettingParticipant{
			ParticipantID: target.PokemonID,
			Name:          target.Nickname,
			Type:          models.ParticipantPokemon,
		})
		setting.IsActive = true

		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil)
		m.pokemon.On("GetByID", ctx, target.PokemonID).Return(target, nil).Once()
		m.settings.On("GetActiveByGame", ctx, gameID).Return(setting, nil).Once()
		m.trainers.On("Update", ctx, mock.Anything).Return(nil).Once()
		m.dex.On("Get", ctx, trainer.TrainerID, 25).Return(nil, models.ErrNotFound).Once()
		m.settings.On("Update", ctx, mock.MatchedBy(func(s *models.Setting) bool {
			return len(s.Participants) == 0
		})).Return(nil).Once()
		m.pokemon.On("CountActiveTeam", ctx, trainer.TrainerID).Return(models.MaxPartySize, nil).Once()
		m.pokemon.On("Update", ctx, mock.MatchedBy(func(p *models.Pokemon) bool {
			return !p.IsOnActiveTeam
		})).Return(nil).Once()
		m.dex.On("Upsert", ctx, mock.Anything).Return(nil).Once()

		result, err := svcs.Catch.Catch(ctx, trainer.TrainerID, target.PokemonID, "master_ball", "", 40)

		require.NoError(t, err)
		assert.True(t, result.Success)
		m.settings.AssertExpectations(t)
	})
}

func TestSpawnWild(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	t.Run("Spawns with catalog defaults", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.pokemon.On("Create", ctx, mock.MatchedBy(func(p *models.Pokemon) bool {
			return p.SpeciesName == "Bulbasaur" && p.IsWild() && p.GameID == gameID
		})).Return(nil).Once()

		wild, err := svcs.Catch.SpawnWild(ctx, gameID, "bulbasaur", catalog.SpawnOptions{})

		require.NoError(t, err)
		assert.Equal(t, 1, wild.DexNo)
		assert.Equal(t, "Bulbasaur", wild.Nickname)
		assert.Equal(t, wild.PokemonStats.HP, wild.CurrentHP)
		assert.Equal(t, 40, wild.CatchRate)
		m.pokemon.AssertExpectations(t)
	})

	t.Run("Spawn options override the defaults", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.pokemon.On("Create", ctx, mock.Anything).Return(nil).Once()

		wild, err := svcs.Catch.SpawnWild(ctx, gameID, "Magikarp", catalog.SpawnOptions{
			Nickname:   "Splashy",
			Gender:     "Female",
			Nature:     "Jolly",
			ForceShiny: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "Splashy", wild.Nickname)
		assert.Equal(t, "Female", wild.Gender)
		assert.Equal(t, "Jolly", wild.Nature)
		assert.True(t, wild.IsShiny)
	})

	t.Run("Unknown species", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.Catch.SpawnWild(ctx, gameID, "MissingNo", catalog.SpawnOptions{})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

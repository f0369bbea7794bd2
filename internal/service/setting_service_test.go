package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pta-server/shared/models"
)

func newSetting(gameID uuid.UUID, participants ...models.SettingParticipant) *models.Setting {
	if participants == nil {
		participants = []models.SettingParticipant{}
	}
	return &models.Setting{
		SettingID:    uuid.New(),
		GameID:       gameID,
		Name:         "Viridian Forest",
		Type:         models.SettingHostile,
		Participants: participants,
		Environment:  []string{},
		Shops:        []uuid.UUID{},
	}
}

func TestCreateSetting(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	t.Run("Successful creation", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.settings.On("Create", ctx, mock.MatchedBy(func(s *models.Setting) bool {
			return s.GameID == gameID && !s.IsActive && s.Participants != nil
		})).Return(nil).Once()

		setting, err := svcs.Settings.CreateSetting(ctx, gameID, "Route 1", models.SettingHybrid)

		require.NoError(t, err)
		assert.Equal(t, "Route 1", setting.Name)
		assert.False(t, setting.IsActive)
		m.settings.AssertExpectations(t)
	})

	t.Run("Unknown encounter type", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.Settings.CreateSetting(ctx, gameID, "Route 1", "Chaotic")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("Name over the limit", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.Settings.CreateSetting(ctx, gameID,
			strings.Repeat("x", models.MaxSettingNameLimit+1), models.SettingHostile)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	t.Run("Activates when nothing else is active", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.settings.On("GetActiveByGame", ctx, gameID).Return(nil, models.ErrNotFound).Once()
		m.settings.On("Update", ctx, setting).Return(nil).Once()

		updated, err := svcs.Settings.SetActive(ctx, setting.SettingID, "GM")

		require.NoError(t, err)
		assert.True(t, updated.IsActive)
	})

	t.Run("Second active encounter is a conflict", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID)
		other := newSetting(gameID)
		other.IsActive = true
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.settings.On("GetActiveByGame", ctx, gameID).Return(other, nil).Once()

		_, err := svcs.Settings.SetActive(ctx, setting.SettingID, "GM")

		assert.ErrorIs(t, err, models.ErrConflict)
		m.settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Re-activating the active encounter is fine", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID)
		setting.IsActive = true
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.settings.On("GetActiveByGame", ctx, gameID).Return(setting, nil).Once()
		m.settings.On("Update", ctx, setting).Return(nil).Once()

		updated, err := svcs.Settings.SetActive(ctx, setting.SettingID, "GM")

		require.NoError(t, err)
		assert.True(t, updated.IsActive)
	})
}

func TestJoinSetting(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	participant := models.SettingParticipant{
		ParticipantID: uuid.New(),
		Name:          "Ash",
		Type:          models.ParticipantTrainer,
		Position:      models.MapPosition{X: 2, Y: 3},
		Speed:         4,
		CurrentHP:     20,
	}

	t.Run("Successful join", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.settings.On("Update", ctx, setting).Return(nil).Once()

		updated, err := svcs.Settings.Join(ctx, setting.SettingID, participant)

		require.NoError(t, err)
		require.Len(t, updated.Participants, 1)
		assert.Equal(t, participant.ParticipantID, updated.Participants[0].ParticipantID)
	})

	t.Run("Duplicate participant", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID, participant)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)

		_, err := svcs.Settings.Join(ctx, setting.SettingID, participant)

		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("Occupied cell", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID, participant)
		other := models.SettingParticipant{
			ParticipantID: uuid.New(),
			Name:          "Pikachu",
			Type:          models.ParticipantPokemon,
			Position:      participant.Position,
		}
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)

		_, err := svcs.Settings.Join(ctx, setting.SettingID, other)

		assert.ErrorIs(t, err, models.ErrConflict)
		m.settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestMoveParticipant(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	mover := models.SettingParticipant{
		ParticipantID: uuid.New(),
		Name:          "Ash",
		Type:          models.ParticipantTrainer,
		Position:      models.MapPosition{X: 0, Y: 0},
		Speed:         3,
	}

	t.Run("Move inside speed range", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID, mover)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.settings.On("Update", ctx, setting).Return(nil).Once()

		updated, err := svcs.Settings.Move(ctx, setting.SettingID, mover.ParticipantID,
			models.MapPosition{X: 0, Y: 3}, mover.ParticipantID)

		require.NoError(t, err)
		assert.Equal(t, models.MapPosition{X: 0, Y: 3}, updated.Participants[0].Position)
	})

	t.Run("Euclidean distance beyond speed", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID, mover)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)

		// (3,4) is exactly 5 away, two over the mover's speed.
		_, err := svcs.Settings.Move(ctx, setting.SettingID, mover.ParticipantID,
			models.MapPosition{X: 3, Y: 4}, mover.ParticipantID)

		assert.ErrorIs(t, err, models.ErrMovementRange)
		m.settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("GM moves skip ownership and range checks", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID, mover)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.settings.On("Update", ctx, setting).Return(nil).Once()

		updated, err := svcs.Settings.Move(ctx, setting.SettingID, mover.ParticipantID,
			models.MapPosition{X: 40, Y: 40}, uuid.Nil)

		require.NoError(t, err)
		assert.Equal(t, models.MapPosition{X: 40, Y: 40}, updated.Participants[0].Position)
	})

	t.Run("Players cannot move another trainer's piece", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID, mover)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)

		_, err := svcs.Settings.Move(ctx, setting.SettingID, mover.ParticipantID,
			models.MapPosition{X: 0, Y: 1}, uuid.New())

		assert.ErrorIs(t, err, models.ErrForbidden)
		m.settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Players move their own pokemon", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainerID := uuid.New()
		piece := models.SettingParticipant{
			ParticipantID: uuid.New(),
			Name:          "Pikachu",
			Type:          models.ParticipantPokemon,
			Position:      models.MapPosition{X: 0, Y: 0},
			Speed:         4,
		}
		setting := newSetting(gameID, piece)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.pokemon.On("GetByID", ctx, piece.ParticipantID).
			Return(&models.Pokemon{PokemonID: piece.ParticipantID, TrainerID: trainerID}, nil).Once()
		m.settings.On("Update", ctx, setting).Return(nil).Once()

		updated, err := svcs.Settings.Move(ctx, setting.SettingID, piece.ParticipantID,
			models.MapPosition{X: 2, Y: 2}, trainerID)

		require.NoError(t, err)
		assert.Equal(t, models.MapPosition{X: 2, Y: 2}, updated.Participants[0].Position)
	})

	t.Run("Players cannot move someone else's pokemon", func(t *testing.T) {
		svcs, m := newTestServices(t)
		piece := models.SettingParticipant{
			ParticipantID: uuid.New(),
			Name:          "Meowth",
			Type:          models.ParticipantPokemon,
			Position:      models.MapPosition{X: 0, Y: 0},
			Speed:         4,
		}
		setting := newSetting(gameID, piece)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.pokemon.On("GetByID", ctx, piece.ParticipantID).
			Return(&models.Pokemon{PokemonID: piece.ParticipantID, TrainerID: uuid.New()}, nil).Once()

		_, err := svcs.Settings.Move(ctx, setting.SettingID, piece.ParticipantID,
			models.MapPosition{X: 1, Y: 1}, uuid.New())

		assert.ErrorIs(t, err, models.ErrForbidden)
		m.settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Players cannot move NPC pieces", func(t *testing.T) {
		svcs, m := newTestServices(t)
		piece := models.SettingParticipant{
			ParticipantID: uuid.New(),
			Name:          "Team Rocket Grunt",
			Type:          models.ParticipantEnemyNpc,
			Position:      models.MapPosition{X: 0, Y: 0},
			Speed:         4,
		}
		setting := newSetting(gameID, piece)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)

		_, err := svcs.Settings.Move(ctx, setting.SettingID, piece.ParticipantID,
			models.MapPosition{X: 1, Y: 1}, uuid.New())

		assert.ErrorIs(t, err, models.ErrForbidden)
		m.settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Destination cell is occupied", func(t *testing.T) {
		svcs, m := newTestServices(t)
		blocker := models.SettingParticipant{
			ParticipantID: uuid.New(),
			Name:          "Team Rocket Grunt",
			Type:          models.ParticipantEnemyNpc,
			Position:      models.MapPosition{X: 1, Y: 1},
		}
		setting := newSetting(gameID, mover, blocker)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)

		_, err := svcs.Settings.Move(ctx, setting.SettingID, mover.ParticipantID,
			models.MapPosition{X: 1, Y: 1}, mover.ParticipantID)

		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("Unknown participant", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)

		_, err := svcs.Settings.Move(ctx, setting.SettingID, uuid.New(),
			models.MapPosition{X: 1, Y: 1}, uuid.Nil)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestLeaveSetting(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()
	participant := models.SettingParticipant{
		ParticipantID: uuid.New(),
		Name:          "Ash",
		Type:          models.ParticipantTrainer,
	}

	t.Run("Removes the participant", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID, participant)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.settings.On("Update", ctx, setting).Return(nil).Once()

		updated, err := svcs.Settings.Leave(ctx, setting.SettingID, participant.ParticipantID)

		require.NoError(t, err)
		assert.Empty(t, updated.Participants)
	})

	t.Run("Absent participant", func(t *testing.T) {
		svcs, m := newTestServices(t)
		setting := newSetting(gameID)
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)

		_, err := svcs.Settings.Leave(ctx, setting.SettingID, participant.ParticipantID)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestRefreshHP(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	t.Run("Pulls fresh HP from the source records", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainerID := uuid.New()
		pokemonID := uuid.New()
		setting := newSetting(gameID,
			models.SettingParticipant{
				ParticipantID: trainerID,
				Type:          models.ParticipantTrainer,
				CurrentHP:     20,
			},
			models.SettingParticipant{
				ParticipantID: pokemonID,
				Type:          models.ParticipantEnemyPokemon,
				CurrentHP:     13,
			})
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.trainers.On("GetByID", ctx, trainerID).Return(&models.Trainer{
			TrainerID:    trainerID,
			CurrentHP:    8,
			TrainerStats: models.StatBlock{Speed: 5},
		}, nil).Once()
		m.pokemon.On("GetByID", ctx, pokemonID).Return(&models.Pokemon{
			PokemonID:    pokemonID,
			CurrentHP:    -2,
			PokemonStats: models.StatBlock{Speed: 3},
		}, nil).Once()
		m.settings.On("Update", ctx, setting).Return(nil).Once()

		updated, err := svcs.Settings.RefreshHP(ctx, setting.SettingID)

		require.NoError(t, err)
		assert.Equal(t, 8, updated.Participants[0].CurrentHP)
		assert.Equal(t, 5, updated.Participants[0].Speed)
		assert.Equal(t, -2, updated.Participants[1].CurrentHP)
	})

	t.Run("Vanished source records are left alone", func(t *testing.T) {
		svcs, m := newTestServices(t)
		trainerID := uuid.New()
		setting := newSetting(gameID, models.SettingParticipant{
			ParticipantID: trainerID,
			Type:          models.ParticipantTrainer,
			CurrentHP:     12,
		})
		m.settings.On("GetByID", ctx, setting.SettingID).Return(setting, nil)
		m.trainers.On("GetByID", ctx, trainerID).Return(nil, models.ErrNotFound).Once()
		m.settings.On("Update", ctx, setting).Return(nil).Once()

		updated, err := svcs.Settings.RefreshHP(ctx, setting.SettingID)

		require.NoError(t, err)
		assert.Equal(t, 12, updated.Participants[0].CurrentHP)
	})
}

package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pta-server/internal/auth"
	"pta-server/shared/models"
)

func TestCreateGame(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Creates the session and its GM in one go", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.games.On("Create", ctx, mock.MatchedBy(func(g *models.Game) bool {
			return g.Nickname == "Kanto Campaign" && g.IsOnline &&
				auth.VerifySecret("secret123", g.PasswordHash)
		})).Return(nil).Once()
		m.trainers.On("GetByNameInGame", ctx, mock.Anything, "Prof. Oak").
			Return(nil, models.ErrNotFound).Once()
		m.trainers.On("Create", ctx, mock.Anything).Return(nil).Once()
		m.users.On("AddGame", ctx, userID, mock.Anything).Return(nil).Once()

		game, gm, err := svcs.Games.CreateGame(ctx, userID, "Kanto Campaign", "secret123", "Prof. Oak")

		require.NoError(t, err)
		assert.Equal(t, game.GameID, gm.GameID)
		assert.True(t, gm.IsGM)
		assert.True(t, gm.IsAllowed)
		m.games.AssertExpectations(t)
	})

	t.Run("Rolls the session back when the GM cannot be created", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.games.On("Create", ctx, mock.Anything).Return(nil).Once()
		m.trainers.On("GetByNameInGame", ctx, mock.Anything, "Prof. Oak").
			Return(&models.Trainer{TrainerName: "Prof. Oak"}, nil).Once()
		m.games.On("Delete", ctx, mock.Anything).Return(nil).Once()

		_, _, err := svcs.Games.CreateGame(ctx, userID, "Kanto Campaign", "secret123", "Prof. Oak")

		assert.ErrorIs(t, err, models.ErrNameTaken)
		m.games.AssertExpectations(t)
	})

	t.Run("Nickname and password are required", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, _, err := svcs.Games.CreateGame(ctx, userID, "  ", "secret123", "Prof. Oak")
		assert.ErrorIs(t, err, models.ErrInvalidInput)

		_, _, err = svcs.Games.CreateGame(ctx, userID, "Kanto Campaign", "", "Prof. Oak")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestJoinGame(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	hash, err := auth.HashSecret("secret123")
	if err != nil {
		t.Fatal(err)
	}
	game := &models.Game{GameID: uuid.New(), Nickname: "Kanto Campaign", PasswordHash: hash}

	t.Run("Correct password creates a pending trainer", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.games.On("GetByID", ctx, game.GameID).Return(game, nil).Once()
		m.trainers.On("GetByNameInGame", ctx, game.GameID, "Misty").
			Return(nil, models.ErrNotFound).Once()
		m.trainers.On("Create", ctx, mock.Anything).Return(nil).Once()
		m.users.On("AddGame", ctx, userID, game.GameID).Return(nil).Once()

		trainer, err := svcs.Games.JoinGame(ctx, userID, game.GameID, "secret123", "Misty")

		require.NoError(t, err)
		assert.False(t, trainer.IsGM)
		assert.False(t, trainer.IsAllowed)
	})

	t.Run("Wrong password", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.games.On("GetByID", ctx, game.GameID).Return(game, nil).Once()

		_, err := svcs.Games.JoinGame(ctx, userID, game.GameID, "wrong", "Misty")

		assert.ErrorIs(t, err, models.ErrUnauthorized)
		m.trainers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSetGameOnline(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	t.Run("Online requires a GM on the roster", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.trainers.On("FindGM", ctx, gameID).Return(nil, models.ErrNotFound).Once()

		err := svcs.Games.SetOnline(ctx, gameID, true)

		assert.ErrorIs(t, err, models.ErrConflict)
		m.games.AssertNotCalled(t, "SetOnline", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Comes online with a GM", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.trainers.On("FindGM", ctx, gameID).
			Return(&models.Trainer{TrainerID: uuid.New(), GameID: gameID, IsGM: true}, nil).Once()
		m.games.On("SetOnline", ctx, gameID, true).Return(nil).Once()

		err := svcs.Games.SetOnline(ctx, gameID, true)

		require.NoError(t, err)
		m.games.AssertExpectations(t)
	})

	t.Run("Going offline needs no GM check", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.games.On("SetOnline", ctx, gameID, false).Return(nil).Once()

		err := svcs.Games.SetOnline(ctx, gameID, false)

		require.NoError(t, err)
		m.trainers.AssertNotCalled(t, "FindGM", mock.Anything, mock.Anything)
	})
}

func TestGameLogs(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	t.Run("Limit defaults and caps", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.logs.On("ListByGame", ctx, gameID, 100).Return([]models.GameLog{}, nil).Twice()
		m.logs.On("ListByGame", ctx, gameID, 50).Return([]models.GameLog{}, nil).Once()

		_, err := svcs.Games.Logs(ctx, gameID, 0)
		require.NoError(t, err)
		_, err = svcs.Games.Logs(ctx, gameID, 9999)
		require.NoError(t, err)
		_, err = svcs.Games.Logs(ctx, gameID, 50)
		require.NoError(t, err)
		m.logs.AssertExpectations(t)
	})
}

func TestCreateNPC(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()

	t.Run("Fills in id and HP", func(t *testing.T) {
		svcs, m := newTestServices(t)
		npc := &models.NPC{
			GameID:       gameID,
			TrainerName:  "Nurse Joy",
			TrainerStats: models.StatBlock{HP: 15, Speed: 2},
		}
		m.npcs.On("Create", ctx, npc).Return(nil).Once()

		err := svcs.Games.CreateNPC(ctx, npc)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, npc.NPCID)
		assert.Equal(t, 15, npc.CurrentHP)
	})

	t.Run("Name is required", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		err := svcs.Games.CreateNPC(ctx, &models.NPC{GameID: gameID})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

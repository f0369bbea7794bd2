package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pta-server/shared/models"
)

func TestMarkSeen(t *testing.T) {
	ctx := context.Background()
	trainer := &models.Trainer{TrainerID: uuid.New(), GameID: uuid.New()}

	t.Run("Fresh sighting is recorded", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil).Once()
		m.dex.On("Get", ctx, trainer.TrainerID, 25).Return(nil, models.ErrNotFound).Once()
		m.dex.On("Upsert", ctx, mock.MatchedBy(func(item *models.DexItem) bool {
			return item.DexNo == 25 && item.IsSeen && !item.IsCaught
		})).Return(nil).Once()

		msg, err := svcs.Dex.MarkSeen(ctx, trainer.TrainerID, 25)

		require.NoError(t, err)
		assert.Equal(t, "Pokemon marked as seen", msg)
		m.dex.AssertExpectations(t)
	})

	t.Run("Repeat sighting is idempotent", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil).Once()
		m.dex.On("Get", ctx, trainer.TrainerID, 25).
			Return(&models.DexItem{DexNo: 25, IsSeen: true}, nil).Once()

		msg, err := svcs.Dex.MarkSeen(ctx, trainer.TrainerID, 25)

		require.NoError(t, err)
		assert.Equal(t, "Pokemon was already seen", msg)
		m.dex.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Dex number out of range", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.Dex.MarkSeen(ctx, trainer.TrainerID, 9000)
		assert.ErrorIs(t, err, models.ErrInvalidInput)

		_, err = svcs.Dex.MarkSeen(ctx, trainer.TrainerID, 0)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestMarkCaught(t *testing.T) {
	ctx := context.Background()
	trainer := &models.Trainer{TrainerID: uuid.New(), GameID: uuid.New()}

	t.Run("Catching implies seen", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil).Once()
		m.dex.On("Get", ctx, trainer.TrainerID, 7).Return(nil, models.ErrNotFound).Once()
		m.dex.On("Upsert", ctx, mock.MatchedBy(func(item *models.DexItem) bool {
			return item.DexNo == 7 && item.IsSeen && item.IsCaught
		})).Return(nil).Once()

		msg, err := svcs.Dex.MarkCaught(ctx, trainer.TrainerID, 7)

		require.NoError(t, err)
		assert.Equal(t, "Pokemon marked as caught", msg)
	})

	t.Run("Seen entry upgrades to caught", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil).Once()
		m.dex.On("Get", ctx, trainer.TrainerID, 7).
			Return(&models.DexItem{DexNo: 7, IsSeen: true}, nil).Once()
		m.dex.On("Upsert", ctx, mock.MatchedBy(func(item *models.DexItem) bool {
			return item.IsCaught
		})).Return(nil).Once()

		msg, err := svcs.Dex.MarkCaught(ctx, trainer.TrainerID, 7)

		require.NoError(t, err)
		assert.Equal(t, "Pokemon marked as caught", msg)
	})

	t.Run("Repeat catch is idempotent", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.trainers.On("GetByID", ctx, trainer.TrainerID).Return(trainer, nil).Once()
		m.dex.On("Get", ctx, trainer.TrainerID, 7).
			Return(&models.DexItem{DexNo: 7, IsSeen: true, IsCaught: true}, nil).Once()

		msg, err := svcs.Dex.MarkCaught(ctx, trainer.TrainerID, 7)

		require.NoError(t, err)
		assert.Equal(t, "Pokemon was already caught", msg)
		m.dex.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/internal/catalog"
	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// DexService tracks per-trainer dex progress. Both flags only ever move
// from false to true.
type DexService interface {
	// MarkSeen flags a dex entry as seen. The returned message distinguishes
	// a fresh update from an idempotent repeat.
	MarkSeen(ctx context.Context, trainerID uuid.UUID, dexNo int) (string, error)
	// MarkCaught flags a dex entry as caught, which implies seen.
	MarkCaught(ctx context.Context, trainerID uuid.UUID, dexNo int) (string, error)
	List(ctx context.Context, trainerID uuid.UUID) ([]models.DexItem, error)
}

// Compile-time check
var _ DexService = (*dexServiceImpl)(nil)

type dexServiceImpl struct {
	dex      repository.DexRepository
	trainers repository.TrainerRepository
	catalog  *catalog.Catalog
	logger   *zap.Logger
}

func NewDexService(
	dex repository.DexRepository,
	trainers repository.TrainerRepository,
	cat *catalog.Catalog,
	logger *zap.Logger,
) DexService {
	return &dexServiceImpl{
		dex:      dex,
		trainers: trainers,
		catalog:  cat,
		logger:   logger.Named("DexService"),
	}
}

func (s *dexServiceImpl) MarkSeen(ctx context.Context, trainerID uuid.UUID, dexNo int) (string, error) {
	return s.mark(ctx, trainerID, dexNo, false)
}

func (s *dexServiceImpl) MarkCaught(ctx context.Context, trainerID uuid.UUID, dexNo int) (string, error) {
	return s.mark(ctx, trainerID, dexNo, true)
}

func (s *dexServiceImpl) mark(ctx context.Context, trainerID uuid.UUID, dexNo int, caught bool) (string, error) {
	if !s.catalog.ValidDexNo(dexNo) {
		return "", fmt.Errorf("dex number %d out of range: %w", dexNo, models.ErrInvalidInput)
	}
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return "", err
	}

	existing, err := s.dex.Get(ctx, trainerID, dexNo)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return "", err
	}
	if existing != nil {
		if caught && existing.IsCaught {
			return "Pokemon was already caught", nil
		}
		if !caught && existing.IsSeen {
			return "Pokemon was already seen", nil
		}
	}

	item := &models.DexItem{
		TrainerID: trainerID,
		GameID:    trainer.GameID,
		DexNo:     dexNo,
		IsSeen:    true,
		IsCaught:  caught,
	}
	if err := s.dex.Upsert(ctx, item); err != nil {
		return "", err
	}
	s.logger.Debug("Dex entry updated",
		zap.String("trainerID", trainerID.String()), zap.Int("dexNo", dexNo), zap.Bool("caught", caught))
	if caught {
		return "Pokemon marked as caught", nil
	}
	return "Pokemon marked as seen", nil
}

func (s *dexServiceImpl) List(ctx context.Context, trainerID uuid.UUID) ([]models.DexItem, error) {
	return s.dex.ListByTrainer(ctx, trainerID)
}

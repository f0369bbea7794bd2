package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pta-server/shared/models"
)

// Compile-time check
var _ DexRepository = (*pgDexRepository)(nil)

type pgDexRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgDexRepository(db DBTX, logger *zap.Logger) DexRepository {
	return &pgDexRepository{
		db:     db,
		logger: logger.Named("PgDexRepo"),
	}
}

func (r *pgDexRepository) Get(ctx context.Context, trainerID uuid.UUID, dexNo int) (*models.DexItem, error) {
	query := `
        SELECT trainer_id, game_id, dex_no, is_seen, is_caught
        FROM dex_items
        WHERE trainer_id = $1 AND dex_no = $2
    `
	item := &models.DexItem{}
	err := pgxscan.Get(ctx, r.db, item, query, trainerID, dexNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get dex item",
			zap.String("trainerID", trainerID.String()), zap.Int("dexNo", dexNo), zap.Error(err))
		return nil, fmt.Errorf("failed to get dex item: %w", err)
	}
	return item, nil
}

func (r *pgDexRepository) Upsert(ctx context.Context, item *models.DexItem) error {
	// Flags only ever go from false to true.
	query := `
        INSERT INTO dex_items (trainer_id, game_id, dex_no, is_seen, is_caught)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (trainer_id, dex_no) DO UPDATE SET
            is_seen = dex_items.is_seen OR EXCLUDED.is_seen,
            is_caught = dex_items.is_caught OR EXCLUDED.is_caught
    `
	_, err := r.db.Exec(ctx, query, item.TrainerID, item.GameID, item.DexNo, item.IsSeen, item.IsCaught)
	if err != nil {
		r.logger.Error("Failed to upsert dex item",
			zap.String("trainerID", item.TrainerID.String()), zap.Int("dexNo", item.DexNo), zap.Error(err))
		return fmt.Errorf("failed to upsert dex item: %w", err)
	}
	return nil
}

func (r *pgDexRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.DexItem, error) {
	query := `
        SELECT trainer_id, game_id, dex_no, is_seen, is_caught
        FROM dex_items
        WHERE trainer_id = $1
        ORDER BY dex_no
    `
	var items []models.DexItem
	if err := pgxscan.Select(ctx, r.db, &items, query, trainerID); err != nil {
		r.logger.Error("Failed to list dex items", zap.String("trainerID", trainerID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list dex items: %w", err)
	}
	return items, nil
}

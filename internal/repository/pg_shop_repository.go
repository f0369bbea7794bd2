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
var _ ShopRepository = (*pgShopRepository)(nil)

const shopColumns = `shop_id, game_id, name, is_active, inventory`

type pgShopRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgShopRepository(db DBTX, logger *zap.Logger) ShopRepository {
	return &pgShopRepository{
		db:     db,
		logger: logger.Named("PgShopRepo"),
	}
}

func (r *pgShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	query := `
        INSERT INTO shops (` + shopColumns + `)
        VALUES ($1, $2, $3, $4, $5)
    `
	logFields := []zap.Field{zap.String("shopID", shop.ShopID.String()), zap.String("name", shop.Name)}
	r.logger.Debug("Creating shop", logFields...)

	_, err := r.db.Exec(ctx, query, shop.ShopID, shop.GameID, shop.Name, shop.IsActive, shop.Inventory)
	if err != nil {
		r.logger.Error("Failed to create shop", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create shop: %w", err)
	}
	return nil
}

func (r *pgShopRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE shop_id = $1`
	shop := &models.Shop{}
	err := pgxscan.Get(ctx, r.db, shop, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get shop", zap.String("shopID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get shop %s: %w", id, err)
	}
	return shop, nil
}

func (r *pgShopRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE game_id = $1 ORDER BY name`
	var shops []models.Shop
	if err := pgxscan.Select(ctx, r.db, &shops, query, gameID); err != nil {
		r.logger.Error("Failed to list shops", zap.String("gameID", gameID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	return shops, nil
}

func (r *pgShopRepository) Update(ctx context.Context, shop *models.Shop) error {
	query := `
        UPDATE shops SET name = $2, is_active = $3, inventory = $4
        WHERE shop_id = $1
    `
	tag, err := r.db.Exec(ctx, query, shop.ShopID, shop.Name, shop.IsActive, shop.Inventory)
	if err != nil {
		r.logger.Error("Failed to update shop", zap.String("shopID", shop.ShopID.String()), zap.Error(err))
		return fmt.Errorf("failed to update shop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shops WHERE shop_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete shop", zap.String("shopID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete shop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

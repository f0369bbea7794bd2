package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"pta-server/shared/models"
)

// Compile-time check
var _ SettingRepository = (*pgSettingRepository)(nil)

const settingColumns = `setting_id, game_id, name, type, is_active, participants, environment, shops`

type pgSettingRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgSettingRepository(db DBTX, logger *zap.Logger) SettingRepository {
	return &pgSettingRepository{
		db:     db,
		logger: logger.Named("PgSettingRepo"),
	}
}

func (r *pgSettingRepository) Create(ctx context.Context, setting *models.Setting) error {
	query := `
        INSERT INTO settings (` + settingColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	logFields := []zap.Field{
		zap.String("settingID", setting.SettingID.String()),
		zap.String("gameID", setting.GameID.String()),
		zap.String("name", setting.Name),
	}
	r.logger.Debug("Creating setting", logFields...)

	_, err := r.db.Exec(ctx, query,
		setting.SettingID,
		setting.GameID,
		setting.Name,
		setting.Type,
		setting.IsActive,
		setting.Participants,
		setting.Environment,
		setting.Shops,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation, one active setting per game
			r.logger.Warn("Attempted to create second active setting", logFields...)
			return models.ErrConflict
		}
		r.logger.Error("Failed to create setting", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create setting: %w", err)
	}
	r.logger.Info("Setting created", logFields...)
	return nil
}

func (r *pgSettingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings WHERE setting_id = $1`
	setting := &models.Setting{}
	err := pgxscan.Get(ctx, r.db, setting, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get setting", zap.String("settingID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get setting %s: %w", id, err)
	}
	return setting, nil
}

func (r *pgSettingRepository) GetActiveByGame(ctx context.Context, gameID uuid.UUID) (*models.Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings WHERE game_id = $1 AND is_active = true`
	setting := &models.Setting{}
	err := pgxscan.Get(ctx, r.db, setting, query, gameID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get active setting", zap.String("gameID", gameID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get active setting for game %s: %w", gameID, err)
	}
	return setting, nil
}

func (r *pgSettingRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings WHERE game_id = $1 ORDER BY name`
	var settings []models.Setting
	if err := pgxscan.Select(ctx, r.db, &settings, query, gameID); err != nil {
		r.logger.Error("Failed to list settings", zap.String("gameID", gameID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

func (r *pgSettingRepository) Update(ctx context.Context, setting *models.Setting) error {
	query := `
        UPDATE settings SET
            name = $2, type = $3, is_active = $4, participants = $5,
            environment = $6, shops = $7
        WHERE setting_id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		setting.SettingID,
		setting.Name,
		setting.Type,
		setting.IsActive,
		setting.Participants,
		setting.Environment,
		setting.Shops,
	)
	if err != nil {
		r.logger.Error("Failed to update setting", zap.String("settingID", setting.SettingID.String()), zap.Error(err))
		return fmt.Errorf("failed to update setting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgSettingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM settings WHERE setting_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete setting", zap.String("settingID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

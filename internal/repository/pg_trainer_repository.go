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
var _ TrainerRepository = (*pgTrainerRepository)(nil)

const trainerColumns = `
    trainer_id, user_id, game_id, trainer_name, is_gm, is_allowed, is_online,
    money, honors, trainer_classes, feats, items, trainer_stats, current_hp,
    origin, description
`

type pgTrainerRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgTrainerRepository(db DBTX, logger *zap.Logger) TrainerRepository {
	return &pgTrainerRepository{
		db:     db,
		logger: logger.Named("PgTrainerRepo"),
	}
}

func (r *pgTrainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	query := `
        INSERT INTO trainers (` + trainerColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `
	logFields := []zap.Field{
		zap.String("trainerID", trainer.TrainerID.String()),
		zap.String("gameID", trainer.GameID.String()),
		zap.String("trainerName", trainer.TrainerName),
	}
	r.logger.Debug("Creating trainer", logFields...)

	_, err := r.db.Exec(ctx, query,
		trainer.TrainerID,
		trainer.UserID,
		trainer.GameID,
		trainer.TrainerName,
		trainer.IsGM,
		trainer.IsAllowed,
		trainer.IsOnline,
		trainer.Money,
		trainer.Honors,
		trainer.TrainerClasses,
		trainer.Feats,
		trainer.Items,
		trainer.TrainerStats,
		trainer.CurrentHP,
		trainer.Origin,
		trainer.Description,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			r.logger.Warn("Attempted to create duplicate trainer", logFields...)
			return models.ErrConflict
		}
		r.logger.Error("Failed to create trainer", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create trainer: %w", err)
	}
	r.logger.Info("Trainer created", logFields...)
	return nil
}

func (r *pgTrainerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE trainer_id = $1`
	trainer := &models.Trainer{}
	err := pgxscan.Get(ctx, r.db, trainer, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get trainer", zap.String("trainerID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get trainer %s: %w", id, err)
	}
	return trainer, nil
}

func (r *pgTrainerRepository) GetByNameInGame(ctx context.Context, gameID uuid.UUID, name string) (*models.Trainer, error) {
	query := `
        SELECT ` + trainerColumns + `
        FROM trainers
        WHERE game_id = $1 AND lower(trainer_name) = lower($2)
    `
	trainer := &models.Trainer{}
	err := pgxscan.Get(ctx, r.db, trainer, query, gameID, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get trainer by name",
			zap.String("gameID", gameID.String()), zap.String("trainerName", name), zap.Error(err))
		return nil, fmt.Errorf("failed to get trainer %q: %w", name, err)
	}
	return trainer, nil
}

func (r *pgTrainerRepository) GetByUserInGame(ctx context.Context, userID, gameID uuid.UUID) (*models.Trainer, error) {
	query := `
        SELECT ` + trainerColumns + `
        FROM trainers
        WHERE user_id = $1 AND game_id = $2
    `
	trainer := &models.Trainer{}
	err := pgxscan.Get(ctx, r.db, trainer, query, userID, gameID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get trainer by user in game",
			zap.String("userID", userID.String()), zap.String("gameID", gameID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get trainer for user %s: %w", userID, err)
	}
	return trainer, nil
}

func (r *pgTrainerRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE game_id = $1 ORDER BY trainer_name`
	var trainers []models.Trainer
	if err := pgxscan.Select(ctx, r.db, &trainers, query, gameID); err != nil {
		r.logger.Error("Failed to list trainers by game", zap.String("gameID", gameID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}
	return trainers, nil
}

func (r *pgTrainerRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE user_id = $1`
	var trainers []models.Trainer
	if err := pgxscan.Select(ctx, r.db, &trainers, query, userID); err != nil {
		r.logger.Error("Failed to list trainers by user", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}
	return trainers, nil
}

func (r *pgTrainerRepository) FindGM(ctx context.Context, gameID uuid.UUID) (*models.Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE game_id = $1 AND is_gm = true LIMIT 1`
	trainer := &models.Trainer{}
	err := pgxscan.Get(ctx, r.db, trainer, query, gameID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to find GM", zap.String("gameID", gameID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to find GM for game %s: %w", gameID, err)
	}
	return trainer, nil
}

func (r *pgTrainerRepository) Update(ctx context.Context, trainer *models.Trainer) error {
	query := `
        UPDATE trainers SET
            trainer_name = $2, is_gm = $3, is_allowed = $4, is_online = $5,
            money = $6, honors = $7, trainer_classes = $8, feats = $9,
            items = $10, trainer_stats = $11, current_hp = $12,
            origin = $13, description = $14
        WHERE trainer_id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		trainer.TrainerID,
		trainer.TrainerName,
		trainer.IsGM,
		trainer.IsAllowed,
		trainer.IsOnline,
		trainer.Money,
		trainer.Honors,
		trainer.TrainerClasses,
		trainer.Feats,
		trainer.Items,
		trainer.TrainerStats,
		trainer.CurrentHP,
		trainer.Origin,
		trainer.Description,
	)
	if err != nil {
		r.logger.Error("Failed to update trainer", zap.String("trainerID", trainer.TrainerID.String()), zap.Error(err))
		return fmt.Errorf("failed to update trainer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgTrainerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trainers WHERE trainer_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete trainer", zap.String("trainerID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete trainer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Trainer deleted", zap.String("trainerID", id.String()))
	return nil
}

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
var _ GameRepository = (*pgGameRepository)(nil)

type pgGameRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgGameRepository(db DBTX, logger *zap.Logger) GameRepository {
	return &pgGameRepository{
		db:     db,
		logger: logger.Named("PgGameRepo"),
	}
}

func (r *pgGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
        INSERT INTO games (game_id, nickname, is_online, password_hash)
        VALUES ($1, $2, $3, $4)
    `
	logFields := []zap.Field{zap.String("gameID", game.GameID.String()), zap.String("nickname", game.Nickname)}
	r.logger.Debug("Creating game", logFields...)

	_, err := r.db.Exec(ctx, query, game.GameID, game.Nickname, game.IsOnline, game.PasswordHash)
	if err != nil {
		r.logger.Error("Failed to create game", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create game: %w", err)
	}
	r.logger.Info("Game created", logFields...)
	return nil
}

func (r *pgGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `
        SELECT game_id, nickname, is_online, password_hash
        FROM games
        WHERE game_id = $1
    `
	game := &models.Game{}
	err := pgxscan.Get(ctx, r.db, game, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get game", zap.String("gameID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}
	return game, nil
}

func (r *pgGameRepository) ListOnline(ctx context.Context) ([]models.Game, error) {
	query := `
        SELECT game_id, nickname, is_online, password_hash
        FROM games
        WHERE is_online = true
        ORDER BY nickname
    `
	var games []models.Game
	if err := pgxscan.Select(ctx, r.db, &games, query); err != nil {
		r.logger.Error("Failed to list online games", zap.Error(err))
		return nil, fmt.Errorf("failed to list online games: %w", err)
	}
	return games, nil
}

func (r *pgGameRepository) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE games SET is_online = $2 WHERE game_id = $1`, id, online)
	if err != nil {
		r.logger.Error("Failed to set game online flag", zap.String("gameID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to set game online flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgGameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Trainers, npcs, settings, shops and logs cascade via FK.
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE game_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete game", zap.String("gameID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Game deleted", zap.String("gameID", id.String()))
	return nil
}

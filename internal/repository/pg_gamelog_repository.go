package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/shared/models"
)

// Compile-time check
var _ GameLogRepository = (*pgGameLogRepository)(nil)

type pgGameLogRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgGameLogRepository(db DBTX, logger *zap.Logger) GameLogRepository {
	return &pgGameLogRepository{
		db:     db,
		logger: logger.Named("PgGameLogRepo"),
	}
}

func (r *pgGameLogRepository) Append(ctx context.Context, entry models.GameLog) error {
	query := `
        INSERT INTO game_logs (log_id, game_id, actor, action, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query, entry.LogID, entry.GameID, entry.Actor, entry.Action, entry.Timestamp)
	if err != nil {
		r.logger.Error("Failed to append game log",
			zap.String("gameID", entry.GameID.String()), zap.Error(err))
		return fmt.Errorf("failed to append game log: %w", err)
	}
	return nil
}

func (r *pgGameLogRepository) ListByGame(ctx context.Context, gameID uuid.UUID, limit int) ([]models.GameLog, error) {
	query := `
        SELECT log_id, game_id, actor, action, created_at
        FROM game_logs
        WHERE game_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	var logs []models.GameLog
	if err := pgxscan.Select(ctx, r.db, &logs, query, gameID, limit); err != nil {
		r.logger.Error("Failed to list game logs", zap.String("gameID", gameID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list game logs: %w", err)
	}
	return logs, nil
}

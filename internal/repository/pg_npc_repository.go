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
var _ NPCRepository = (*pgNPCRepository)(nil)

const npcColumns = `npc_id, game_id, trainer_name, trainer_classes, feats, trainer_stats, current_hp`

type pgNPCRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgNPCRepository(db DBTX, logger *zap.Logger) NPCRepository {
	return &pgNPCRepository{
		db:     db,
		logger: logger.Named("PgNPCRepo"),
	}
}

func (r *pgNPCRepository) Create(ctx context.Context, npc *models.NPC) error {
	query := `
        INSERT INTO npcs (` + npcColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	logFields := []zap.Field{zap.String("npcID", npc.NPCID.String()), zap.String("gameID", npc.GameID.String())}
	r.logger.Debug("Creating npc", logFields...)

	_, err := r.db.Exec(ctx, query,
		npc.NPCID,
		npc.GameID,
		npc.TrainerName,
		npc.TrainerClasses,
		npc.Feats,
		npc.TrainerStats,
		npc.CurrentHP,
	)
	if err != nil {
		r.logger.Error("Failed to create npc", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create npc: %w", err)
	}
	return nil
}

func (r *pgNPCRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.NPC, error) {
	query := `SELECT ` + npcColumns + ` FROM npcs WHERE npc_id = $1`
	npc := &models.NPC{}
	err := pgxscan.Get(ctx, r.db, npc, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get npc", zap.String("npcID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get npc %s: %w", id, err)
	}
	return npc, nil
}

func (r *pgNPCRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.NPC, error) {
	query := `SELECT ` + npcColumns + ` FROM npcs WHERE game_id = $1 ORDER BY trainer_name`
	var npcs []models.NPC
	if err := pgxscan.Select(ctx, r.db, &npcs, query, gameID); err != nil {
		r.logger.Error("Failed to list npcs", zap.String("gameID", gameID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list npcs: %w", err)
	}
	return npcs, nil
}

func (r *pgNPCRepository) Update(ctx context.Context, npc *models.NPC) error {
	query := `
        UPDATE npcs SET
            trainer_name = $2, trainer_classes = $3, feats = $4,
            trainer_stats = $5, current_hp = $6
        WHERE npc_id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		npc.NPCID,
		npc.TrainerName,
		npc.TrainerClasses,
		npc.Feats,
		npc.TrainerStats,
		npc.CurrentHP,
	)
	if err != nil {
		r.logger.Error("Failed to update npc", zap.String("npcID", npc.NPCID.String()), zap.Error(err))
		return fmt.Errorf("failed to update npc: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgNPCRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM npcs WHERE npc_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete npc", zap.String("npcID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete npc: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

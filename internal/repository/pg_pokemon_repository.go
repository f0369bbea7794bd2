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
var _ PokemonRepository = (*pgPokemonRepository)(nil)

const pokemonColumns = `
    pokemon_id, dex_no, species_name, nickname, form, gender, nature, status, types,
    moves, catch_rate, is_shiny, is_on_active_team, can_evolve, pokeball,
    trainer_id, original_trainer_id, game_id, pokemon_stats, current_hp, size, weight
`

type pgPokemonRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgPokemonRepository(db DBTX, logger *zap.Logger) PokemonRepository {
	return &pgPokemonRepository{
		db:     db,
		logger: logger.Named("PgPokemonRepo"),
	}
}

func (r *pgPokemonRepository) Create(ctx context.Context, pokemon *models.Pokemon) error {
	query := `
        INSERT INTO pokemon (` + pokemonColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
    `
	logFields := []zap.Field{
		zap.String("pokemonID", pokemon.PokemonID.String()),
		zap.String("species", pokemon.SpeciesName),
		zap.String("gameID", pokemon.GameID.String()),
	}
	r.logger.Debug("Creating pokemon", logFields...)

	_, err := r.db.Exec(ctx, query,
		pokemon.PokemonID,
		pokemon.DexNo,
		pokemon.SpeciesName,
		pokemon.Nickname,
		pokemon.Form,
		pokemon.Gender,
		pokemon.Nature,
		pokemon.Status,
		pokemon.Types,
		pokemon.Moves,
		pokemon.CatchRate,
		pokemon.IsShiny,
		pokemon.IsOnActiveTeam,
		pokemon.CanEvolve,
		pokemon.Pokeball,
		pokemon.TrainerID,
		pokemon.OriginalTrainerID,
		pokemon.GameID,
		pokemon.PokemonStats,
		pokemon.CurrentHP,
		pokemon.Size,
		pokemon.Weight,
	)
	if err != nil {
		r.logger.Error("Failed to create pokemon", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create pokemon: %w", err)
	}
	return nil
}

func (r *pgPokemonRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Pokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM pokemon WHERE pokemon_id = $1`
	pokemon := &models.Pokemon{}
	err := pgxscan.Get(ctx, r.db, pokemon, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get pokemon", zap.String("pokemonID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get pokemon %s: %w", id, err)
	}
	return pokemon, nil
}

func (r *pgPokemonRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.Pokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM pokemon WHERE trainer_id = $1 ORDER BY nickname`
	var list []models.Pokemon
	if err := pgxscan.Select(ctx, r.db, &list, query, trainerID); err != nil {
		r.logger.Error("Failed to list pokemon by trainer", zap.String("trainerID", trainerID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}
	return list, nil
}

func (r *pgPokemonRepository) CountActiveTeam(ctx context.Context, trainerID uuid.UUID) (int, error) {
	query := `SELECT count(*) FROM pokemon WHERE trainer_id = $1 AND is_on_active_team = true`
	var count int
	if err := r.db.QueryRow(ctx, query, trainerID).Scan(&count); err != nil {
		r.logger.Error("Failed to count active team", zap.String("trainerID", trainerID.String()), zap.Error(err))
		return 0, fmt.Errorf("failed to count active team: %w", err)
	}
	return count, nil
}

func (r *pgPokemonRepository) Update(ctx context.Context, pokemon *models.Pokemon) error {
	query := `
        UPDATE pokemon SET
            dex_no = $2, species_name = $3, nickname = $4, form = $5,
            gender = $6, nature = $7, status = $8, types = $9, moves = $10,
            catch_rate = $11, is_shiny = $12, is_on_active_team = $13,
            can_evolve = $14, pokeball = $15, trainer_id = $16,
            original_trainer_id = $17, pokemon_stats = $18, current_hp = $19,
            size = $20, weight = $21
        WHERE pokemon_id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		pokemon.PokemonID,
		pokemon.DexNo,
		pokemon.SpeciesName,
		pokemon.Nickname,
		pokemon.Form,
		pokemon.Gender,
		pokemon.Nature,
		pokemon.Status,
		pokemon.Types,
		pokemon.Moves,
		pokemon.CatchRate,
		pokemon.IsShiny,
		pokemon.IsOnActiveTeam,
		pokemon.CanEvolve,
		pokemon.Pokeball,
		pokemon.TrainerID,
		pokemon.OriginalTrainerID,
		pokemon.PokemonStats,
		pokemon.CurrentHP,
		pokemon.Size,
		pokemon.Weight,
	)
	if err != nil {
		r.logger.Error("Failed to update pokemon", zap.String("pokemonID", pokemon.PokemonID.String()), zap.Error(err))
		return fmt.Errorf("failed to update pokemon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgPokemonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pokemon WHERE pokemon_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete pokemon", zap.String("pokemonID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete pokemon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

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
var _ UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgUserRepository(db DBTX, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

func (r *pgUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
        INSERT INTO users
            (user_id, username, password_hash, activity_token, site_role, is_online, date_created, games)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	logFields := []zap.Field{zap.String("userID", user.UserID.String()), zap.String("username", user.Username)}
	r.logger.Debug("Creating user", logFields...)

	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.PasswordHash,
		user.ActivityToken,
		user.SiteRole,
		user.IsOnline,
		user.DateCreated,
		user.Games,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			r.logger.Warn("Attempted to create duplicate user", logFields...)
			return models.ErrConflict
		}
		r.logger.Error("Failed to create user", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.logger.Info("User created", logFields...)
	return nil
}

func (r *pgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
        SELECT user_id, username, password_hash, activity_token, site_role, is_online, date_created, games
        FROM users
        WHERE user_id = $1
    `
	user := &models.User{}
	err := pgxscan.Get(ctx, r.db, user, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get user by ID", zap.String("userID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

func (r *pgUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
        SELECT user_id, username, password_hash, activity_token, site_role, is_online, date_created, games
        FROM users
        WHERE lower(username) = lower($1)
    `
	user := &models.User{}
	err := pgxscan.Get(ctx, r.db, user, query, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get user by username", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateActivityToken(ctx context.Context, id uuid.UUID, token string) error {
	query := `UPDATE users SET activity_token = $2 WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, id, token)
	if err != nil {
		r.logger.Error("Failed to update activity token", zap.String("userID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to update activity token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	query := `UPDATE users SET is_online = $2 WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, id, online)
	if err != nil {
		r.logger.Error("Failed to set user online flag", zap.String("userID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to set online flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) AddGame(ctx context.Context, userID, gameID uuid.UUID) error {
	// array_append is skipped when the game is already present.
	query := `
        UPDATE users
        SET games = array_append(games, $2)
        WHERE user_id = $1 AND NOT ($2 = ANY(games))
    `
	_, err := r.db.Exec(ctx, query, userID, gameID)
	if err != nil {
		r.logger.Error("Failed to add game to user",
			zap.String("userID", userID.String()), zap.String("gameID", gameID.String()), zap.Error(err))
		return fmt.Errorf("failed to add game to user: %w", err)
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete user", zap.String("userID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("User deleted", zap.String("userID", id.String()))
	return nil
}

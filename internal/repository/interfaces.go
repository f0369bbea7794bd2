// Package repository contains the PostgreSQL and Redis adapters behind the
// rules engine. Services depend on the interfaces here, never on pgx types.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pta-server/shared/models"
)

// DBTX abstracts *pgxpool.Pool and pgx.Tx so repositories run inside or
// outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateActivityToken(ctx context.Context, id uuid.UUID, token string) error
	SetOnline(ctx context.Context, id uuid.UUID, online bool) error
	AddGame(ctx context.Context, userID, gameID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name GameRepository --output ./mocks --outpkg mocks --case=underscore
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	ListOnline(ctx context.Context) ([]models.Game, error)
	SetOnline(ctx context.Context, id uuid.UUID, online bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name TrainerRepository --output ./mocks --outpkg mocks --case=underscore
type TrainerRepository interface {
	Create(ctx context.Context, trainer *models.Trainer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Trainer, error)
	// GetByNameInGame matches the trainer name case-insensitively.
	GetByNameInGame(ctx context.Context, gameID uuid.UUID, name string) (*models.Trainer, error)
	GetByUserInGame(ctx context.Context, userID, gameID uuid.UUID) (*models.Trainer, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Trainer, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Trainer, error)
	FindGM(ctx context.Context, gameID uuid.UUID) (*models.Trainer, error)
	Update(ctx context.Context, trainer *models.Trainer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name NPCRepository --output ./mocks --outpkg mocks --case=underscore
type NPCRepository interface {
	Create(ctx context.Context, npc *models.NPC) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.NPC, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.NPC, error)
	Update(ctx context.Context, npc *models.NPC) error
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name PokemonRepository --output ./mocks --outpkg mocks --case=underscore
type PokemonRepository interface {
	Create(ctx context.Context, pokemon *models.Pokemon) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pokemon, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.Pokemon, error)
	CountActiveTeam(ctx context.Context, trainerID uuid.UUID) (int, error)
	Update(ctx context.Context, pokemon *models.Pokemon) error
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name SettingRepository --output ./mocks --outpkg mocks --case=underscore
type SettingRepository interface {
	Create(ctx context.Context, setting *models.Setting) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Setting, error)
	// GetActiveByGame returns models.ErrNotFound when no setting is active.
	GetActiveByGame(ctx context.Context, gameID uuid.UUID) (*models.Setting, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Setting, error)
	Update(ctx context.Context, setting *models.Setting) error
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name ShopRepository --output ./mocks --outpkg mocks --case=underscore
type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name DexRepository --output ./mocks --outpkg mocks --case=underscore
type DexRepository interface {
	// Get returns models.ErrNotFound when the trainer has no entry yet.
	Get(ctx context.Context, trainerID uuid.UUID, dexNo int) (*models.DexItem, error)
	Upsert(ctx context.Context, item *models.DexItem) error
	ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.DexItem, error)
}

//go:generate mockery --name GameLogRepository --output ./mocks --outpkg mocks --case=underscore
type GameLogRepository interface {
	Append(ctx context.Context, entry models.GameLog) error
	ListByGame(ctx context.Context, gameID uuid.UUID, limit int) ([]models.GameLog, error)
}

//go:generate mockery --name TokenRepository --output ./mocks --outpkg mocks --case=underscore
type TokenRepository interface {
	Save(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	Get(ctx context.Context, userID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

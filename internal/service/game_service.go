package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/internal/auth"
	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// GameService covers session lifecycle: creation with its GM trainer,
// joining, npc administration and the audit trail.
type GameService interface {
	// CreateGame opens a new session and creates its GM trainer in one go.
	CreateGame(ctx context.Context, userID uuid.UUID, nickname, password, gmName string) (*models.Game, *models.Trainer, error)
	// JoinGame checks the game password and creates a pending trainer.
	JoinGame(ctx context.Context, userID, gameID uuid.UUID, password, trainerName string) (*models.Trainer, error)
	GetGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error)
	ListOnline(ctx context.Context) ([]models.Game, error)
	SetOnline(ctx context.Context, gameID uuid.UUID, online bool) error
	DeleteGame(ctx context.Context, gameID uuid.UUID) error
	Logs(ctx context.Context, gameID uuid.UUID, limit int) ([]models.GameLog, error)
	CreateNPC(ctx context.Context, npc *models.NPC) error
	GetNPC(ctx context.Context, npcID uuid.UUID) (*models.NPC, error)
	ListNPCs(ctx context.Context, gameID uuid.UUID) ([]models.NPC, error)
	DeleteNPC(ctx context.Context, npcID uuid.UUID) error
}

// Compile-time check
var _ GameService = (*gameServiceImpl)(nil)

type gameServiceImpl struct {
	games    repository.GameRepository
	npcs     repository.NPCRepository
	logs     repository.GameLogRepository
	roster   repository.TrainerRepository
	trainers TrainerService
	logger   *zap.Logger
}

func NewGameService(
	games repository.GameRepository,
	npcs repository.NPCRepository,
	logs repository.GameLogRepository,
	roster repository.TrainerRepository,
	trainers TrainerService,
	logger *zap.Logger,
) GameService {
	return &gameServiceImpl{
		games:    games,
		npcs:     npcs,
		logs:     logs,
		roster:   roster,
		trainers: trainers,
		logger:   logger.Named("GameService"),
	}
}

func (s *gameServiceImpl) CreateGame(ctx context.Context, userID uuid.UUID, nickname, password, gmName string) (*models.Game, *models.Trainer, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, nil, fmt.Errorf("game nickname is required: %w", models.ErrInvalidInput)
	}
	if password == "" {
		return nil, nil, fmt.Errorf("game password is required: %w", models.ErrInvalidInput)
	}
	hash, err := auth.HashSecret(password)
	if err != nil {
		return nil, nil, err
	}
	game := &models.Game{
		GameID:       uuid.New(),
		Nickname:     nickname,
		IsOnline:     true,
		PasswordHash: hash,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, nil, err
	}
	gm, err := s.trainers.CreateTrainer(ctx, game.GameID, userID, gmName, true)
	if err != nil {
		// Roll the empty session back rather than leave it GM-less.
		if derr := s.games.Delete(ctx, game.GameID); derr != nil {
			s.logger.Error("Failed to clean up game after GM creation failure",
				zap.String("gameID", game.GameID.String()), zap.Error(derr))
		}
		return nil, nil, err
	}
	s.logger.Info("Game created",
		zap.String("gameID", game.GameID.String()), zap.String("nickname", nickname))
	return game, gm, nil
}

func (s *gameServiceImpl) JoinGame(ctx context.Context, userID, gameID uuid.UUID, password, trainerName string) (*models.Trainer, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !auth.VerifySecret(password, game.PasswordHash) {
		return nil, models.ErrUnauthorized
	}
	return s.trainers.CreateTrainer(ctx, gameID, userID, trainerName, false)
}

func (s *gameServiceImpl) GetGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error) {
	return s.games.GetByID(ctx, gameID)
}

func (s *gameServiceImpl) ListOnline(ctx context.Context) ([]models.Game, error) {
	return s.games.ListOnline(ctx)
}

// SetOnline flips the game's session flag. A game may not come online
// without a GM trainer on its roster.
func (s *gameServiceImpl) SetOnline(ctx context.Context, gameID uuid.UUID, online bool) error {
	if online {
		if _, err := s.roster.FindGM(ctx, gameID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("game has no GM: %w", models.ErrConflict)
			}
			return err
		}
	}
	return s.games.SetOnline(ctx, gameID, online)
}

func (s *gameServiceImpl) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	return s.games.Delete(ctx, gameID)
}

func (s *gameServiceImpl) Logs(ctx context.Context, gameID uuid.UUID, limit int) ([]models.GameLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.logs.ListByGame(ctx, gameID, limit)
}

func (s *gameServiceImpl) CreateNPC(ctx context.Context, npc *models.NPC) error {
	if strings.TrimSpace(npc.TrainerName) == "" {
		return fmt.Errorf("npc name is required: %w", models.ErrInvalidInput)
	}
	if npc.NPCID == uuid.Nil {
		npc.NPCID = uuid.New()
	}
	if npc.CurrentHP == 0 {
		npc.CurrentHP = npc.TrainerStats.HP
	}
	return s.npcs.Create(ctx, npc)
}

func (s *gameServiceImpl) GetNPC(ctx context.Context, npcID uuid.UUID) (*models.NPC, error) {
	return s.npcs.GetByID(ctx, npcID)
}

func (s *gameServiceImpl) ListNPCs(ctx context.Context, gameID uuid.UUID) ([]models.NPC, error) {
	return s.npcs.ListByGame(ctx, gameID)
}

func (s *gameServiceImpl) DeleteNPC(ctx context.Context, npcID uuid.UUID) error {
	return s.npcs.Delete(ctx, npcID)
}

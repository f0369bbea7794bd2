// Package auth implements the identity guard: activity tokens, the shared
// session secret and GM/admin checks that gate every mutating request.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// Guard authenticates callers. A request passes when the caller's activity
// token matches the stored one, is inside its validity window, and the shared
// session secret verifies against the configured bcrypt hash.
type Guard struct {
	users       repository.UserRepository
	trainers    repository.TrainerRepository
	tokens      repository.TokenRepository
	sessionHash string
	logger      *zap.Logger
}

func NewGuard(
	users repository.UserRepository,
	trainers repository.TrainerRepository,
	tokens repository.TokenRepository,
	sessionHash string,
	logger *zap.Logger,
) *Guard {
	return &Guard{
		users:       users,
		trainers:    trainers,
		tokens:      tokens,
		sessionHash: sessionHash,
		logger:      logger.Named("AuthGuard"),
	}
}

// VerifySecret compares a plaintext secret to a bcrypt hash. Any failure,
// including a malformed hash, reads as a mismatch.
func VerifySecret(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// HashSecret produces a bcrypt hash for storage.
func HashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(bytes), nil
}

// Authenticate verifies the caller's identity. It returns nil on success and
// models.ErrUnauthorized on any failure; the specific reason only reaches
// the log.
func (g *Guard) Authenticate(ctx context.Context, userID uuid.UUID, activityToken, sessionSecret string) error {
	logFields := []zap.Field{zap.String("userID", userID.String())}

	if !VerifySecret(sessionSecret, g.sessionHash) {
		g.logger.Warn("Session secret verification failed", logFields...)
		return models.ErrUnauthorized
	}

	stored, err := g.storedToken(ctx, userID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			g.logger.Error("Failed to load stored activity token", append(logFields, zap.Error(err))...)
		}
		return models.ErrUnauthorized
	}
	if stored == "" || stored != activityToken {
		g.logger.Warn("Activity token mismatch", logFields...)
		return models.ErrUnauthorized
	}
	if err := ValidateToken(activityToken); err != nil {
		g.logger.Warn("Activity token rejected", append(logFields, zap.Error(err))...)
		return models.ErrUnauthorized
	}
	return nil
}

// storedToken prefers the Redis mirror and falls back to the user row.
func (g *Guard) storedToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := g.tokens.Get(ctx, userID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		g.logger.Warn("Redis token lookup failed, falling back to database",
			zap.String("userID", userID.String()), zap.Error(err))
	}
	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.ActivityToken, nil
}

// RefreshToken re-issues the caller's activity token. Every successful
// mutating operation calls this so the window slides forward.
func (g *Guard) RefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token := GenerateToken()
	if err := g.users.UpdateActivityToken(ctx, userID, token); err != nil {
		return "", fmt.Errorf("failed to store refreshed token: %w", err)
	}
	if err := g.tokens.Save(ctx, userID, token, TokenTTL); err != nil {
		// The database copy is authoritative, a stale mirror just costs a
		// fallback lookup.
		g.logger.Warn("Failed to mirror refreshed token in redis",
			zap.String("userID", userID.String()), zap.Error(err))
	}
	return token, nil
}

// IsAdmin reports whether the user holds the site admin role.
func (g *Guard) IsAdmin(ctx context.Context, userID uuid.UUID) bool {
	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return false
	}
	return user.SiteRole == models.SiteRoleAdmin
}

// TrainerInGame resolves the caller's trainer inside the given game.
func (g *Guard) TrainerInGame(ctx context.Context, userID, gameID uuid.UUID) (*models.Trainer, error) {
	return g.trainers.GetByUserInGame(ctx, userID, gameID)
}

// IsGM reports whether the user runs the given game, either through a GM
// trainer or the site admin role.
func (g *Guard) IsGM(ctx context.Context, userID, gameID uuid.UUID) bool {
	if g.IsAdmin(ctx, userID) {
		return true
	}
	trainer, err := g.trainers.GetByUserInGame(ctx, userID, gameID)
	if err != nil {
		return false
	}
	return trainer.IsGM
}

package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// GameEventPublisher fans game log entries out to the message broker for
// downstream consumers. Implemented in internal/messaging.
type GameEventPublisher interface {
	PublishGameEvent(ctx context.Context, entry models.GameLog) error
}

// logRecorder appends entries to a game's audit trail and mirrors them onto
// the broker. Shared by every service that mutates game state.
type logRecorder struct {
	logs      repository.GameLogRepository
	publisher GameEventPublisher
	logger    *zap.Logger
}

func newLogRecorder(logs repository.GameLogRepository, publisher GameEventPublisher, logger *zap.Logger) *logRecorder {
	return &logRecorder{
		logs:      logs,
		publisher: publisher,
		logger:    logger.Named("LogRecorder"),
	}
}

// Record writes one audit line. Failures are logged but never fail the
// operation that produced them.
func (r *logRecorder) Record(ctx context.Context, gameID uuid.UUID, actor, action string) {
	entry := models.NewGameLog(gameID, actor, action)
	if err := r.logs.Append(ctx, entry); err != nil {
		r.logger.Error("Failed to append game log",
			zap.String("gameID", gameID.String()), zap.String("action", action), zap.Error(err))
		return
	}
	if r.publisher != nil {
		if err := r.publisher.PublishGameEvent(ctx, entry); err != nil {
			r.logger.Warn("Failed to publish game event",
				zap.String("gameID", gameID.String()), zap.Error(err))
		}
	}
}

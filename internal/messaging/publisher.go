package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"pta-server/shared/models"
)

// GameEventPublisher publishes game log entries to the event queue so that
// external consumers (session dashboards, archival jobs) can follow play.
type GameEventPublisher interface {
	PublishGameEvent(ctx context.Context, entry models.GameLog) error
}

type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQGameEventPublisher opens a channel on the given connection and
// declares the game event queue. The publisher declares the queue itself so
// the server does not depend on a consumer having started first.
func NewRabbitMQGameEventPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (GameEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("game event publisher: failed to open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("game event publisher: failed to declare queue '%s': %w", queueName, err)
	}
	logger.Info("Game event queue declared", zap.String("queue", queueName))
	return &rabbitMQPublisher{channel: ch, queueName: queueName, logger: logger.Named("GameEventPublisher")}, nil
}

// PublishGameEvent serializes the log entry and publishes it on the default
// exchange with the queue name as routing key.
func (p *rabbitMQPublisher) PublishGameEvent(ctx context.Context, entry models.GameLog) error {
	body, err := json.Marshal(entry)
	if err != nil {
		p.logger.Error("Failed to marshal game event",
			zap.String("gameID", entry.GameID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to serialize game event for game %s: %w", entry.GameID, err)
	}
	if err := p.publishMessage(ctx, body); err != nil {
		p.logger.Error("Failed to publish game event",
			zap.String("gameID", entry.GameID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to publish game event for game %s: %w", entry.GameID, err)
	}
	return nil
}

func (p *rabbitMQPublisher) publishMessage(ctx context.Context, body []byte) error {
	if p.channel == nil {
		return errors.New("rabbitmq channel is not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	// Transient broker hiccups are common during restarts, retry a few times.
	for attempt := 1; attempt <= 3; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			"",          // exchange (default)
			p.queueName, // routing key
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        "pta-server",
			},
		)
		if err == nil {
			return nil
		}
		p.logger.Warn("Publish attempt failed",
			zap.Int("attempt", attempt),
			zap.String("queue", p.queueName),
			zap.Error(err))
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	return err
}

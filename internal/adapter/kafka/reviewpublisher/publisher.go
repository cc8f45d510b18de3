// Package reviewpublisher hands admitted games to the review pipeline over Kafka.
package reviewpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
)

const (
	EventGameSubmitted = "game.submitted"
	writeTimeout       = 2 * time.Second
)

var _ secondary.ReviewNotifier = &Publisher{}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes one message per admitted game, keyed by game ID so every
// event for a game lands on one partition.
type Publisher struct {
	writer messageWriter
	logger primary.Logger
}

func New(cfg *config.KafkaConfig, logger primary.Logger) *Publisher {
	// Writers are safe for concurrent use
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		RequiredAcks: kafka.RequireOne,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Publisher{writer: w, logger: logger}
}

func (p *Publisher) NotifySubmitted(ctx context.Context, event *domain.GameSubmittedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal submitted event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.GameID.String()),
		Value:   value,
		Headers: []kafka.Header{{Key: "type", Value: []byte(EventGameSubmitted)}},
	})
	if err != nil {
		p.logger.Error("Failed to publish submitted event", "gameId", event.GameID, "error", err)
		return fmt.Errorf("failed to publish submitted event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

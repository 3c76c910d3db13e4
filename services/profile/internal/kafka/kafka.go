package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/observability"
)

// Producer wraps a kafka.Writer for publishing messages.
type Producer struct {
	w *kafka.Writer
}

// NewProducer creates a Kafka writer that routes messages by the topic set on
// each kafka.Message. brokers is a comma separated list.
func NewProducer(brokers string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(splitBrokers(brokers)...),
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error { return p.w.Close() }

type userCreated struct {
	UserID string `json:"user_id"`
}

// ProfileCreator is satisfied by repository.ProfileRepo.
type ProfileCreator interface {
	CreateIfNotExists(ctx context.Context, id string) error
}

// messageReader is the part of kafka.Reader the consumer loop uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

var (
	retryDelay    = time.Second
	maxRetryDelay = 30 * time.Second
)

// StartUserCreatedConsumer creates an empty profile for every new account.
// It blocks until ctx is cancelled.
func StartUserCreatedConsumer(ctx context.Context, brokers string, repo ProfileCreator) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: splitBrokers(brokers),
		Topic:   model.TopicUserCreated,
		GroupID: "profile",
	})
	defer r.Close()

	consumeUserCreated(ctx, r, repo)
}

// consumeUserCreated commits an offset only once its message is handled.
// A failed create is retried with backoff and blocks the partition until
// it succeeds or ctx ends.
func consumeUserCreated(ctx context.Context, r messageReader, repo ProfileCreator) {
	log := observability.GetLogger(ctx)

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				log.Error("user.created consumer stopped", zap.Error(err))
			}
			return
		}

		delay := retryDelay
		for {
			err := handleUserCreated(ctx, m.Value, repo)
			if err == nil {
				break
			}
			log.Error("idempotent create failed", zap.Int64("offset", m.Offset),
				zap.Duration("retry_in", delay), zap.Error(err))

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay = min(2*delay, maxRetryDelay)
		}

		if err := r.CommitMessages(ctx, m); err != nil {
			log.Warn("user.created commit failed", zap.Int64("offset", m.Offset), zap.Error(err))
		}
	}
}

// handleUserCreated returns an error only when the message should be
// retried. Malformed payloads are logged and skipped.
func handleUserCreated(ctx context.Context, value []byte, repo ProfileCreator) error {
	var e userCreated
	if err := json.Unmarshal(value, &e); err != nil || e.UserID == "" {
		observability.GetLogger(ctx).Warn("bad user.created payload", zap.ByteString("payload", value), zap.Error(err))
		return nil
	}

	if err := repo.CreateIfNotExists(ctx, e.UserID); err != nil {
		return fmt.Errorf("create profile %s: %w", e.UserID, err)
	}
	return nil
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

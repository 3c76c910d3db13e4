// Command eventtail prints the events the profile service publishes. It is
// a smoke check for the outbox publisher against a running broker.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/observability"
)

var defaultTopics = []string{
	model.TopicProfileUpdated,
	model.TopicLinkCreated,
	model.TopicLinkDeleted,
	model.TopicLinkClicked,
}

func main() {
	observability.InitLogger("eventtail", true)
	log := observability.Log
	defer log.Sync()

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}
	topics := parseTopics(os.Getenv("EVENT_TOPICS"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     strings.Split(brokers, ","),
		GroupID:     "eventtail",
		GroupTopics: topics,
	})
	defer reader.Close()

	log.Info("tailing", zap.Strings("topics", topics))
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Error("read failed", zap.Error(err))
			}
			return
		}

		var payload map[string]any
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Warn("undecodable event", zap.String("topic", msg.Topic), zap.ByteString("value", msg.Value))
			continue
		}
		log.Info("received",
			zap.String("topic", msg.Topic),
			zap.String("key", string(msg.Key)),
			zap.Any("payload", payload),
		)
	}
}

func parseTopics(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return defaultTopics
	}
	return out
}

package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/seakeeping-advisor/internal/config"
	"github.com/couchcryptid/seakeeping-advisor/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes sensor observations from the source topic.
// It implements pipeline.Extractor.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a Kafka consumer for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaSourceTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})
	return &Reader{reader: r, logger: logger}
}

// Extract blocks until the next observation message arrives. The returned
// reading carries a Commit callback; the pipeline commits after it has folded
// the observation into its state.
func (r *Reader) Extract(ctx context.Context) (domain.RawReading, error) {
	msg, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return domain.RawReading{}, err
	}
	return r.mapMessage(msg), nil
}

func (r *Reader) mapMessage(msg kafkago.Message) domain.RawReading {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawReading{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		Commit: func(ctx context.Context) error {
			return r.reader.CommitMessages(ctx, msg)
		},
	}
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

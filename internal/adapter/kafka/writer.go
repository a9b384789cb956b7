package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/seakeeping-advisor/internal/config"
	"github.com/couchcryptid/seakeeping-advisor/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes completed assessments to the sink topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Load serializes and publishes one assessment.
func (w *Writer) Load(ctx context.Context, a domain.Assessment) error {
	msg, err := serializeToMessage(a)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Assessment into a Kafka message. The key is
// the resolved (speed, heading) bucket so a compacted topic retains the
// latest assessment per operating condition.
func serializeToMessage(a domain.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	key := fmt.Sprintf("%gkn/%gdeg", a.SpeedBucket, a.HeadingBucket)
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "speed_bucket", Value: []byte(strconv.FormatFloat(a.SpeedBucket, 'g', -1, 64))},
			{Key: "computed_at", Value: []byte(a.ComputedAt.Format(time.RFC3339))},
		},
	}, nil
}

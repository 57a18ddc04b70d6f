package kafka_client

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/reviewlens/internal/models"
)

// MessageWriter is the subset of *kafka.Producer used for publishing.
type MessageWriter interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

type IssueProducer struct {
	writer MessageWriter
	topic  string
}

func NewIssueProducer(cfg KafkaConfig) (*IssueProducer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker),
		slog.String("topic", cfg.Topic))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"security.protocol":  "PLAINTEXT",
		"enable.idempotence": true,
		"acks":               "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	go logDeliveryReports(p.Events())

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return NewIssueProducerWithWriter(p, cfg.Topic), nil
}

func NewIssueProducerWithWriter(w MessageWriter, topic string) *IssueProducer {
	return &IssueProducer{writer: w, topic: topic}
}

func logDeliveryReports(events chan kafka.Event) {
	for e := range events {
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			slog.Warn("[KafkaClient] Delivery failed",
				slog.String("key", string(m.Key)),
				slog.String("error", m.TopicPartition.Error.Error()))
		}
	}
}

// PublishBatch enqueues every entry keyed by its id. Entries that fail to
// serialize or enqueue after MAX_RETRIES are counted in the returned error.
func (p *IssueProducer) PublishBatch(entries []models.IssueLogEntry) error {
	failed := 0
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			slog.Warn("[KafkaClient] Failed to serialize issue entry",
				slog.String("id", entry.ID),
				slog.String("error", err.Error()))
			failed++
			continue
		}

		msg := &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
			Key:            []byte(entry.ID),
			Value:          data,
		}

		for i := 0; i < MAX_RETRIES; i++ {
			err = p.writer.Produce(msg, nil)
			if err == nil {
				break
			}
			slog.Warn("[KafkaClient] Failed to produce message, retrying...",
				slog.Int("attempt", i+1),
				slog.String("error", err.Error()))
		}
		if err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("[KafkaClient] %d of %d issue entries not published", failed, len(entries))
	}

	slog.Debug("[KafkaClient] Published issue entries",
		slog.String("topic", p.topic),
		slog.Int("count", len(entries)))
	return nil
}

func (p *IssueProducer) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if remaining := p.writer.Flush(FLUSH_TIMEOUT); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.writer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

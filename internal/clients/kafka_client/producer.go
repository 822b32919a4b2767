package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/feedbackflow/internal/models"
)

// ReportPublisher sends finished batch reports to a Kafka topic.
type ReportPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewReportPublisher(broker, topic string) (*ReportPublisher, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", broker),
		slog.String("topic", topic))

	if topic == "" {
		topic = KAFKA_TOPIC_FEEDBACK_REPORTS
	}

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"enable.idempotence":  true,
		"acks":                "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &ReportPublisher{producer: p, topic: topic}, nil
}

func (p *ReportPublisher) Close() {
	if p == nil || p.producer == nil {
		return
	}
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := p.producer.Flush(FLUSH_TIMEOUT_MS); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

// Publish sends the report keyed by its batch id and waits for the delivery
// report.
func (p *ReportPublisher) Publish(ctx context.Context, result models.BatchResult) error {
	msg, err := BuildReportMessage(p.topic, result)
	if err != nil {
		return err
	}

	deliveryChan := make(chan kafka.Event, 1)
	for i := 0; i < MAX_RETRIES; i++ {
		err = p.producer.Produce(msg, deliveryChan)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce report: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(DELIVERY_TIMEOUT):
		return fmt.Errorf("[KafkaClient] no delivery report after %s", DELIVERY_TIMEOUT)
	case e := <-deliveryChan:
		delivered, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("[KafkaClient] unexpected delivery event: %v", e)
		}
		if delivered.TopicPartition.Error != nil {
			return fmt.Errorf("[KafkaClient] delivery failed: %w", delivered.TopicPartition.Error)
		}
	}

	slog.Info("[KafkaClient] Published batch report to Kafka",
		slog.String("topic", p.topic),
		slog.String("batch_id", result.BatchID))
	return nil
}

func BuildReportMessage(topic string, result models.BatchResult) (*kafka.Message, error) {
	jsonData, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] failed to marshal report: %w", err)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(result.BatchID),
		Value:          jsonData,
	}, nil
}

func (p *ReportPublisher) Name() string {
	return "kafka"
}

// HealthCheck fetches the report topic's metadata from the broker.
func (p *ReportPublisher) HealthCheck(ctx context.Context) error {
	timeout := DELIVERY_TIMEOUT
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if _, err := p.producer.GetMetadata(&p.topic, false, int(timeout.Milliseconds())); err != nil {
		return fmt.Errorf("[KafkaClient] failed to fetch metadata: %w", err)
	}
	return nil
}

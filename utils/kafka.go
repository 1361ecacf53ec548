package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/codaisseur/eventup-backend/config"
)

var auditWriter *kafka.Writer

// InitializeKafka sets up the audit-event writer. Kafka is optional; when no
// brokers are configured audit entries are only persisted to the database.
func InitializeKafka(cfg *config.Config) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("ℹ️ Kafka not configured, audit stream disabled")
		return
	}

	topic := cfg.KafkaAuditTopic
	if topic == "" {
		topic = "eventup.audit"
	}

	auditWriter = &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
	}

	log.Printf("✅ Kafka audit stream enabled (topic=%s)", topic)
}

// PublishAuditEvent mirrors an audit entry onto the Kafka topic. Failures are
// logged, never returned: the audit stream must not break request handling.
func PublishAuditEvent(ctx context.Context, action string, payload map[string]interface{}) {
	if auditWriter == nil {
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️ Kafka audit marshal failed: %v", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(action),
		Value: value,
		Time:  time.Now(),
	}

	if err := auditWriter.WriteMessages(ctx, msg); err != nil {
		log.Printf("⚠️ Kafka audit publish failed: %v", err)
	}
}

// CloseKafka flushes and closes the audit writer on shutdown.
func CloseKafka() {
	if auditWriter == nil {
		return
	}
	if err := auditWriter.Close(); err != nil {
		log.Printf("⚠️ Kafka writer close failed: %v", err)
	}
}

package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event actions published on registry mutations.
const (
	ActionCreated       = "created"
	ActionStatusChanged = "status_changed"
	ActionDeleted       = "deleted"
)

// TaskEvent is the change notification emitted after every successful
// mutation. Delivery is advisory: consumers refresh by re-reading the full
// list, so missing or duplicate events cannot corrupt anything.
type TaskEvent struct {
	Action      string    `json:"action"`
	TaskID      string    `json:"taskId"`
	WorkspaceID string    `json:"workspaceId"`
	SerialNo    int64     `json:"serialNo"`
	Status      string    `json:"status"`
	Actor       string    `json:"actor"`
	Timestamp   time.Time `json:"timestamp"`
}

type EventProducer interface {
	SendTaskEvent(ctx context.Context, event TaskEvent) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaProducer(brokers []string, topic string) EventProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &kafkaProducer{
		writer: writer,
		topic:  topic,
	}
}

func (p *kafkaProducer) SendTaskEvent(ctx context.Context, event TaskEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.TaskID),
		Value: eventJSON,
		Time:  time.Now(),
	}

	return p.writer.WriteMessages(ctx, message)
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

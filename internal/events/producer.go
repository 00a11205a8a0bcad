package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"campusnet/internal/models"

	"github.com/IBM/sarama"
)

// Publisher pushes notification events to the event stream. Publishing
// is best-effort: implementations log failures and never return them.
type Publisher interface {
	PublishNotification(n *models.Notification)
	Close() error
}

// NotificationEvent is the wire shape written to the notification topic.
type NotificationEvent struct {
	ID          string                  `json:"id"`
	RecipientID string                  `json:"recipientId"`
	Type        models.NotificationType `json:"type"`
	SenderID    *string                 `json:"senderId,omitempty"`
	PostID      *string                 `json:"postId,omitempty"`
	Content     string                  `json:"content"`
	EmittedAt   time.Time               `json:"emittedAt"`
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher builds a sync producer keyed by recipient so one
// user's notifications stay ordered within a partition.
func NewKafkaPublisher(brokers []string, topic string) (Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = "campusnet"

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &kafkaPublisher{producer: producer, topic: topic}, nil
}

func (p *kafkaPublisher) PublishNotification(n *models.Notification) {
	event := NotificationEvent{
		ID:          n.ID,
		RecipientID: n.UserID,
		Type:        n.Type,
		SenderID:    n.SenderID,
		PostID:      n.PostID,
		Content:     n.Content,
		EmittedAt:   n.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal notification event", "error", err)
		return
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(n.UserID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		slog.Error("Failed to publish notification event", "error", err, "notification_id", n.ID)
	}
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

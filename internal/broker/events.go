package appkafka

import (
	"encoding/json"

	"example.com/yatube/internal/models"
	"github.com/segmentio/kafka-go"
)

// Event keys carried in kafka.Message.Key. The worker dispatches on them.
const (
	EventPostCreated = "post_created"
	EventPostDeleted = "post_deleted"
)

// NewPostMessage wraps a post into a Kafka message for the given event key.
func NewPostMessage(event string, p models.Post) (kafka.Message, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event),
		Value: data,
	}, nil
}

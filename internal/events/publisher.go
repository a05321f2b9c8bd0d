package events

import (
	"context"
	"encoding/json"
	"time"

	models "github.com/fathima-sithara/uriel-service/internal/media"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const TypeMediaDownloaded = "media.downloaded"

type DownloadEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	MediaID    string    `json:"media_id"`
	Title      string    `json:"title"`
	Kind       string    `json:"kind"`
	Downloads  int64     `json:"downloads"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishDownloaded(ctx context.Context, m *models.Media) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishDownloaded(context.Context, *models.Media) error { return nil }
func (NopPublisher) Close() error                                          { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	clock  func() time.Time
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 5 * time.Second,
	})
	return &KafkaPublisher{writer: w, clock: time.Now}
}

// PublishDownloaded writes one event keyed by media id so events for a record stay ordered.
func (p *KafkaPublisher) PublishDownloaded(ctx context.Context, m *models.Media) error {
	now := p.clock().UTC()
	if m.UpdatedAt != nil {
		now = m.UpdatedAt.UTC()
	}
	ev := DownloadEvent{
		EventID:    uuid.NewString(),
		Type:       TypeMediaDownloaded,
		MediaID:    m.ID.Hex(),
		Title:      m.Title,
		Kind:       string(m.Kind),
		Downloads:  m.Downloads,
		OccurredAt: now,
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(ev.MediaID), Value: b, Time: now})
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }

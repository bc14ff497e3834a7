package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"
)

type Producer struct {
	l          *slog.Logger
	w          *kafka.Writer
	auditTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Compression:            0,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:          l,
		w:          w,
		auditTopic: topic,
	}
}

type auditEvent struct {
	ID       uuid.UUID `json:"id"`
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	EntityID int64     `json:"entityId"`
	ActorID  int64     `json:"actorId"`
	At       time.Time `json:"at"`
}

// SendAudit publishes an entity-mutation audit event. Failures are logged
// and never surfaced to the caller.
func (p *Producer) SendAudit(ctx context.Context, entityName, action string, entityID, actorID int64) {
	event := auditEvent{
		ID:       uuid.Must(uuid.NewV4()),
		Entity:   entityName,
		Action:   action,
		EntityID: entityID,
		ActorID:  actorID,
		At:       time.Now().UTC(),
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", entityName, entityID)),
		Value: b,
		Topic: p.auditTopic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

type infoLogger struct {
	l *slog.Logger
}

func (il *infoLogger) Printf(format string, args ...any) {
	il.l.Debug(fmt.Sprintf(format, args...))
}

type errorLogger struct {
	l *slog.Logger
}

func (el *errorLogger) Printf(format string, args ...any) {
	el.l.Error(fmt.Sprintf(format, args...))
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/record"
)

// PublishTimeout bounds how long a commit waits for the broker.
const PublishTimeout = 3 * time.Second

var ErrMalformed = errors.New("malformed change event")

// ChangeEvent is the JSON body published for every committed change.
type ChangeEvent struct {
	EventID    string          `json:"event_id"`
	Screen     string          `json:"screen"`
	Kind       record.Kind     `json:"kind"`
	RecordID   int             `json:"record_id"`
	Record     json.RawMessage `json:"record"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher is satisfied by *rabbitmq.Client.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

func NewChangeEvent[T any](c record.Change[T], at time.Time) (ChangeEvent, error) {
	body, err := json.Marshal(c.Record)
	if err != nil {
		return ChangeEvent{}, fmt.Errorf("encode %s record %d: %w", c.Screen, c.Record.ID, err)
	}
	return ChangeEvent{
		EventID:    uuid.NewString(),
		Screen:     c.Screen,
		Kind:       c.Kind,
		RecordID:   c.Record.ID,
		Record:     body,
		OccurredAt: at.UTC(),
	}, nil
}

// Decode parses a delivery body; events without an id, screen or kind are
// rejected with ErrMalformed.
func Decode(body []byte) (ChangeEvent, error) {
	var ev ChangeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ChangeEvent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if ev.EventID == "" || ev.Screen == "" || ev.Kind == "" {
		return ChangeEvent{}, ErrMalformed
	}
	return ev, nil
}

func (ev ChangeEvent) Publishing() (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     ev.EventID,
		CorrelationId: fmt.Sprintf("%s/%d", ev.Screen, ev.RecordID),
		Timestamp:     ev.OccurredAt,
		Type:          string(ev.Kind),
		Headers: amqp.Table{
			"x-source": "restaurant-admin",
			"x-screen": ev.Screen,
		},
		Body: body,
	}, nil
}

// Observer publishes each committed change to exchange. Failures are logged;
// the commit itself has already happened and is never undone.
func Observer[T any](pub Publisher, exchange string, lg *logger.Logger) record.Observer[T] {
	return record.ObserverFunc[T](func(ctx context.Context, c record.Change[T]) {
		fields := map[string]any{"screen": c.Screen, "kind": string(c.Kind), "record_id": c.Record.ID}

		ev, err := NewChangeEvent(c, time.Now())
		if err != nil {
			lg.Error("event_encode_failed", err, fields)
			return
		}
		msg, err := ev.Publishing()
		if err != nil {
			lg.Error("event_encode_failed", err, fields)
			return
		}

		// The request context may already be done once the response is out.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PublishTimeout)
		defer cancel()
		if err := pub.Publish(ctx, exchange, "", msg); err != nil {
			lg.Error("event_publish_failed", err, fields)
			return
		}
		fields["event_id"] = ev.EventID
		lg.Debug("event_published", fields)
	})
}

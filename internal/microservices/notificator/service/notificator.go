package service

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/events"
)

// Consumer is satisfied by *rabbitmq.Client.
type Consumer interface {
	Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error)
}

type NotificatorService struct {
	src      Consumer
	queue    string
	prefetch int
	lg       *logger.Logger
}

func NewNotificatorService(src Consumer, queue string, prefetch int, lg *logger.Logger) *NotificatorService {
	return &NotificatorService{src: src, queue: queue, prefetch: prefetch, lg: lg}
}

// Notify logs every change event from the queue until ctx is cancelled or
// the broker closes the delivery channel.
func (ns *NotificatorService) Notify(ctx context.Context) error {
	msgs, err := ns.src.Consume(ns.queue, "event-subscriber", ns.prefetch)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ns.queue, err)
	}
	ns.lg.Info("subscriber_consuming", map[string]any{"queue": ns.queue, "prefetch": ns.prefetch})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			ns.deliver(d)
		}
	}
}

// deliver acks handled events. An event that cannot be decoded never will
// be, so it is dropped rather than requeued.
func (ns *NotificatorService) deliver(d amqp.Delivery) {
	if err := ns.handle(d.Body); err != nil {
		ns.lg.Error("admin_event_rejected", err, map[string]any{"message_id": d.MessageId})
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func (ns *NotificatorService) handle(body []byte) error {
	ev, err := events.Decode(body)
	if err != nil {
		return err
	}
	ns.lg.Info("admin_event_received", map[string]any{
		"event_id":    ev.EventID,
		"screen":      ev.Screen,
		"kind":        string(ev.Kind),
		"record_id":   ev.RecordID,
		"occurred_at": ev.OccurredAt,
	})
	return nil
}

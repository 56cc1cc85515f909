package events

import (
	"context"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/record"
)

var actions = map[record.Kind]string{
	record.KindCreate: "record_created",
	record.KindUpdate: "record_updated",
	record.KindDelete: "record_deleted",
	record.KindStatus: "status_changed",
}

// LogObserver logs every commit with the request-scoped logger when the
// context carries one.
func LogObserver[T any](fallback *logger.Logger) record.Observer[T] {
	return record.ObserverFunc[T](func(ctx context.Context, c record.Change[T]) {
		action, ok := actions[c.Kind]
		if !ok {
			action = "record_changed"
		}
		logger.FromContext(ctx, fallback).Info(action, map[string]any{
			"screen":    c.Screen,
			"record_id": c.Record.ID,
		})
	})
}

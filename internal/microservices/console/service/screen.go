package service

import (
	"context"
	"fmt"

	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/record"
)

// Screen adds form defaults and validation to a record.Screen. All other
// screen events (List, Get, OpenEdit, Change, Cancel, Delete) are promoted.
type Screen[T any] struct {
	*record.Screen[T]

	defaults func() T
	validate record.Validator[T]
}

func newScreen[T any](s *record.Screen[T], defaults func() T, validate record.Validator[T]) *Screen[T] {
	if defaults == nil {
		defaults = func() T {
			var zero T
			return zero
		}
	}
	return &Screen[T]{Screen: s, defaults: defaults, validate: validate}
}

// Create opens a blank form.
func (s *Screen[T]) Create() (record.Record[T], uint64) {
	return s.OpenCreate(s.defaults())
}

// CreateWith opens a form whose defaults are overridden by patch.
func (s *Screen[T]) CreateWith(patch record.Patch[T]) (record.Record[T], uint64) {
	d := s.defaults()
	if patch != nil {
		patch(&d)
	}
	return s.OpenCreate(d)
}

// Commit validates and submits the open draft and reports whether it
// created a record or updated one.
func (s *Screen[T]) Commit(ctx context.Context) (record.Record[T], record.Kind, error) {
	return s.Submit(ctx, s.validate)
}

// status is implemented by every gated status enumeration.
type status[S any] interface {
	~string
	Valid() bool
	CanTransitionTo(to S) bool
}

// changeStatus moves the status field of record id to `to` if the domain
// transition table allows it.
func changeStatus[T any, S status[S]](ctx context.Context, s *record.Screen[T], id int, to S, field func(*T) *S) (record.Record[T], error) {
	if !to.Valid() {
		return record.Record[T]{}, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, string(to))
	}
	return s.Mutate(ctx, id, record.KindStatus, func(p *T) error {
		cur := field(p)
		if !(*cur).CanTransitionTo(to) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, string(*cur), string(to))
		}
		*cur = to
		return nil
	})
}

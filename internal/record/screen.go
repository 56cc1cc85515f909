package record

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrNoDraft    = errors.New("no draft is open")
	ErrStaleDraft = errors.New("draft was closed or replaced")
)

// Change describes one committed mutation of a screen's store.
type Change[T any] struct {
	Screen string
	Kind   Kind
	Record Record[T]
}

// Observer is told about every commit after it is applied.
type Observer[T any] interface {
	Observe(ctx context.Context, c Change[T])
}

type ObserverFunc[T any] func(ctx context.Context, c Change[T])

func (f ObserverFunc[T]) Observe(ctx context.Context, c Change[T]) { f(ctx, c) }

// Validator checks a draft before it is committed and may normalize it
// (derived fields, trimming). stored is the record the draft replaces, nil
// for a new draft. A non-nil error keeps the draft open.
type Validator[T any] func(draft *Record[T], stored *T) error

// Screen owns one Store and one Editor. Every event runs to completion under
// the screen lock; observers run after the lock is released.
type Screen[T any] struct {
	name string

	mu        sync.Mutex
	store     *Store[T]
	editor    Editor[T]
	observers []Observer[T]
}

func NewScreen[T any](name string, store *Store[T]) *Screen[T] {
	if store == nil {
		store = NewStore[T]()
	}
	return &Screen[T]{name: name, store: store}
}

func (s *Screen[T]) Name() string { return s.name }

// Observe registers observers. It is meant to be called during wiring,
// before the screen serves events.
func (s *Screen[T]) Observe(obs ...Observer[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs...)
}

func (s *Screen[T]) List() []Record[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

func (s *Screen[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

func (s *Screen[T]) Get(id int) (Record[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(id)
}

// OpenCreate replaces whatever draft was open with a new one.
func (s *Screen[T]) OpenCreate(defaults T) (Record[T], uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen := s.editor.OpenForCreate(defaults)
	d, _ := s.editor.Draft()
	return d, gen
}

// OpenEdit opens a draft copied from the stored record id.
func (s *Screen[T]) OpenEdit(id int) (Record[T], uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.store.Get(id)
	if !ok {
		return Record[T]{}, 0, ErrNotFound
	}
	gen := s.editor.OpenForEdit(r)
	d, _ := s.editor.Draft()
	return d, gen, nil
}

// Draft returns the open draft, its generation and editor state.
func (s *Screen[T]) Draft() (Record[T], uint64, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.editor.Draft()
	if !ok {
		return Record[T]{}, 0, Closed, ErrNoDraft
	}
	return d, s.editor.Generation(), s.editor.State(), nil
}

func (s *Screen[T]) Change(patch Patch[T]) (Record[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editor.UpdateField(patch) {
		return Record[T]{}, ErrNoDraft
	}
	d, _ := s.editor.Draft()
	return d, nil
}

// ChangeAt applies patch only if the draft of generation gen is still open.
func (s *Screen[T]) ChangeAt(gen uint64, patch Patch[T]) (Record[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editor.UpdateFieldAt(gen, patch) {
		return Record[T]{}, ErrStaleDraft
	}
	d, _ := s.editor.Draft()
	return d, nil
}

// Cancel discards the open draft; it reports whether one was open.
func (s *Screen[T]) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	open := s.editor.State() != Closed
	s.editor.Cancel()
	return open
}

// Submit validates the open draft and commits it: a new draft is added to
// the store under a fresh id, an existing one replaces its record. The
// returned Kind tells which of the two happened. If the edited record was
// deleted meanwhile the draft is discarded and ErrNotFound returned.
func (s *Screen[T]) Submit(ctx context.Context, validate Validator[T]) (Record[T], Kind, error) {
	s.mu.Lock()
	draft, ok := s.editor.Draft()
	if !ok {
		s.mu.Unlock()
		return Record[T]{}, "", ErrNoDraft
	}
	var stored *T
	if !draft.IsNew() {
		cur, found := s.store.Get(draft.ID)
		if !found {
			s.editor.Cancel()
			s.mu.Unlock()
			return Record[T]{}, "", ErrNotFound
		}
		stored = &cur.Payload
	}
	if validate != nil {
		if err := validate(&draft, stored); err != nil {
			s.mu.Unlock()
			return Record[T]{}, "", err
		}
	}
	intent, _ := s.editor.Submit()
	intent.Payload = draft.Payload

	var committed Record[T]
	if intent.Kind == KindCreate {
		committed = s.store.Add(intent.Payload)
	} else {
		s.store.Replace(intent.ID, intent.Payload)
		committed, _ = s.store.Get(intent.ID)
	}
	obs := s.observers
	s.mu.Unlock()

	s.notify(ctx, obs, Change[T]{Screen: s.name, Kind: intent.Kind, Record: committed})
	return committed, intent.Kind, nil
}

// Delete removes id immediately. The removed record is returned with true;
// deleting an absent id is a no-op returning false.
func (s *Screen[T]) Delete(ctx context.Context, id int) (Record[T], bool) {
	s.mu.Lock()
	r, ok := s.store.Get(id)
	if ok {
		s.store.Remove(id)
	}
	obs := s.observers
	s.mu.Unlock()

	if ok {
		s.notify(ctx, obs, Change[T]{Screen: s.name, Kind: KindDelete, Record: r})
	}
	return r, ok
}

// Mutate applies fn to a copy of the stored record id and replaces the
// record with the result, bypassing the draft. Status buttons use it.
func (s *Screen[T]) Mutate(ctx context.Context, id int, kind Kind, fn func(*T) error) (Record[T], error) {
	s.mu.Lock()
	r, ok := s.store.Get(id)
	if !ok {
		s.mu.Unlock()
		return Record[T]{}, ErrNotFound
	}
	if err := fn(&r.Payload); err != nil {
		s.mu.Unlock()
		return Record[T]{}, err
	}
	s.store.Replace(id, r.Payload)
	obs := s.observers
	s.mu.Unlock()

	s.notify(ctx, obs, Change[T]{Screen: s.name, Kind: kind, Record: r})
	return r, nil
}

func (s *Screen[T]) notify(ctx context.Context, obs []Observer[T], c Change[T]) {
	for _, o := range obs {
		o.Observe(ctx, c)
	}
}

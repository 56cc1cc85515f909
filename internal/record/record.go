// Package record holds the list + draft-form pattern every console screen is
// built on: an ordered Store of records keyed by a locally assigned id, an
// Editor staging one draft at a time, and a Screen composing the two.
package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NewID is the id carried by a draft that has not been committed yet.
const NewID = 0

// Record is a payload plus the id the store assigned to it.
type Record[T any] struct {
	ID      int
	Payload T
}

// IsNew reports whether the record was never committed to a store.
func (r Record[T]) IsNew() bool { return r.ID == NewID }

// Cloner is implemented by payloads that hold slices or maps, so that a
// draft never shares memory with the committed record it was copied from.
type Cloner[T any] interface {
	Clone() T
}

func clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

func (r Record[T]) clone() Record[T] {
	return Record[T]{ID: r.ID, Payload: clone(r.Payload)}
}

// MarshalJSON flattens the payload fields next to an "id" key.
func (r Record[T]) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("record payload must encode as a JSON object: %w", err)
	}
	fields["id"] = json.RawMessage(strconv.Itoa(r.ID))
	return json.Marshal(fields)
}

// UnmarshalJSON reads the flat form written by MarshalJSON.
func (r *Record[T]) UnmarshalJSON(b []byte) error {
	var head struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	var payload T
	if err := json.Unmarshal(b, &payload); err != nil {
		return err
	}
	r.ID, r.Payload = head.ID, payload
	return nil
}

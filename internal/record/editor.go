package record

import (
	"encoding/json"
	"fmt"
)

type State int

const (
	Closed State = iota
	EditingNew
	EditingExisting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case EditingNew:
		return "editing-new"
	case EditingExisting:
		return "editing-existing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Kind names what a commit did to a store.
type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
	KindStatus Kind = "status"
)

// CommitIntent is what a submitted draft asks the store to do: Add the
// payload (KindCreate) or Replace the record with ID (KindUpdate).
type CommitIntent[T any] struct {
	Kind    Kind
	ID      int
	Payload T
}

// Patch merges a set of field changes into a draft payload.
type Patch[T any] func(*T)

// MergeJSON builds a patch from a JSON object; keys present in raw overwrite
// the matching draft fields, absent keys are left alone. A present key
// replaces its field wholesale, so an array replaces the whole slice and its
// elements never inherit values from the old ones. The decode is checked up
// front so applying the patch cannot fail.
func MergeJSON[T any](raw []byte) (Patch[T], error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("patch must be a JSON object: %w", err)
	}
	var check T
	if err := json.Unmarshal(raw, &check); err != nil {
		return nil, err
	}
	return func(p *T) {
		if next, err := overlay(*p, obj); err == nil {
			*p = next
		}
	}, nil
}

// overlay re-decodes cur with the top-level keys of obj swapped in, into a
// fresh value.
func overlay[T any](cur T, obj map[string]json.RawMessage) (T, error) {
	var next T
	b, err := json.Marshal(cur)
	if err != nil {
		return next, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return next, err
	}
	for k, v := range obj {
		fields[k] = v
	}
	if b, err = json.Marshal(fields); err != nil {
		return next, err
	}
	err = json.Unmarshal(b, &next)
	return next, err
}

// Editor stages exactly one in-progress record for a create/edit form.
// The zero value is a closed editor.
//
// Every open, cancel and submit bumps the generation, so a write that was
// started against one draft (an image preview being read, say) can be
// dropped if that draft is gone by the time it lands.
type Editor[T any] struct {
	state State
	draft Record[T]
	gen   uint64
}

func (e *Editor[T]) State() State { return e.state }

func (e *Editor[T]) Generation() uint64 { return e.gen }

// OpenForCreate starts a new draft with id 0 and the given defaults.
func (e *Editor[T]) OpenForCreate(defaults T) uint64 {
	e.draft = Record[T]{ID: NewID, Payload: clone(defaults)}
	e.state = EditingNew
	e.gen++
	return e.gen
}

// OpenForEdit starts a draft that is a copy of r. The store keeps the
// original untouched until Submit.
func (e *Editor[T]) OpenForEdit(r Record[T]) uint64 {
	if r.IsNew() {
		return e.OpenForCreate(r.Payload)
	}
	e.draft = r.clone()
	e.state = EditingExisting
	e.gen++
	return e.gen
}

// Draft returns a copy of the current draft, false when closed.
func (e *Editor[T]) Draft() (Record[T], bool) {
	if e.state == Closed {
		return Record[T]{}, false
	}
	return e.draft.clone(), true
}

// UpdateField merges patch into the draft. It does nothing and reports
// false when the editor is closed.
func (e *Editor[T]) UpdateField(patch Patch[T]) bool {
	if e.state == Closed || patch == nil {
		return false
	}
	patch(&e.draft.Payload)
	return true
}

// UpdateFieldAt is UpdateField guarded by the generation the caller saw.
func (e *Editor[T]) UpdateFieldAt(gen uint64, patch Patch[T]) bool {
	if gen != e.gen {
		return false
	}
	return e.UpdateField(patch)
}

// Cancel discards the draft.
func (e *Editor[T]) Cancel() {
	if e.state == Closed {
		return
	}
	e.close()
}

// Submit closes the editor and returns the commit the draft asks for.
// It performs no validation.
func (e *Editor[T]) Submit() (CommitIntent[T], bool) {
	if e.state == Closed {
		return CommitIntent[T]{}, false
	}
	intent := CommitIntent[T]{Kind: KindCreate, Payload: e.draft.Payload}
	if !e.draft.IsNew() {
		intent.Kind, intent.ID = KindUpdate, e.draft.ID
	}
	e.close()
	return intent, true
}

func (e *Editor[T]) close() {
	e.state = Closed
	e.draft = Record[T]{}
	e.gen++
}

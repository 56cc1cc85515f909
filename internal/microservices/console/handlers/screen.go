package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/record"
)

const maxBody = 1 << 20

// ScreenService is the set of screen events a form-backed screen offers.
// *service.Screen[T] implements it.
type ScreenService[T any] interface {
	Name() string
	List() []record.Record[T]
	Get(id int) (record.Record[T], bool)
	Delete(ctx context.Context, id int) (record.Record[T], bool)
	CreateWith(patch record.Patch[T]) (record.Record[T], uint64)
	OpenEdit(id int) (record.Record[T], uint64, error)
	Draft() (record.Record[T], uint64, record.State, error)
	Change(patch record.Patch[T]) (record.Record[T], error)
	Commit(ctx context.Context) (record.Record[T], record.Kind, error)
	Cancel() bool
}

// Extras returns display fields (badges, offered actions) merged into a
// record's JSON.
type Extras[T any] func(r record.Record[T]) map[string]any

type ScreenHandler[T any] struct {
	svc    ScreenService[T]
	extras Extras[T]
	lg     *logger.Logger
}

func NewScreenHandler[T any](svc ScreenService[T], extras Extras[T], lg *logger.Logger) *ScreenHandler[T] {
	return &ScreenHandler[T]{svc: svc, extras: extras, lg: lg}
}

type listView struct {
	Screen  string `json:"screen"`
	Records []any  `json:"records"`
}

type draftView struct {
	State      record.State `json:"state"`
	Generation uint64       `json:"generation"`
	Record     any          `json:"record"`
}

// view flattens r and adds its extras.
func (h *ScreenHandler[T]) view(r record.Record[T]) (any, error) {
	if h.extras == nil {
		return r, nil
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	for k, v := range h.extras(r) {
		out[k] = v
	}
	return out, nil
}

func (h *ScreenHandler[T]) writeRecord(w http.ResponseWriter, r *http.Request, code int, rec record.Record[T]) {
	v, err := h.view(rec)
	if err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	writeJSON(w, code, v)
}

func (h *ScreenHandler[T]) writeDraft(w http.ResponseWriter, r *http.Request, code int) {
	d, gen, state, err := h.svc.Draft()
	if err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	v, err := h.view(d)
	if err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	writeJSON(w, code, draftView{State: state, Generation: gen, Record: v})
}

func (h *ScreenHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	recs := h.svc.List()
	out := listView{Screen: h.svc.Name(), Records: make([]any, 0, len(recs))}
	for _, rec := range recs {
		v, err := h.view(rec)
		if err != nil {
			writeError(w, loggerFor(r, h.lg), err)
			return
		}
		out.Records = append(out.Records, v)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ScreenHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	rec, ok := h.svc.Get(id)
	if !ok {
		writeError(w, loggerFor(r, h.lg), fmt.Errorf("%s %d: %w", h.svc.Name(), id, record.ErrNotFound))
		return
	}
	h.writeRecord(w, r, http.StatusOK, rec)
}

func (h *ScreenHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	if _, ok := h.svc.Delete(r.Context(), id); !ok {
		writeError(w, loggerFor(r, h.lg), fmt.Errorf("%s %d: %w", h.svc.Name(), id, record.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenCreate opens a blank form; a JSON object body overrides the defaults.
func (h *ScreenHandler[T]) OpenCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	var patch record.Patch[T]
	if len(raw) > 0 {
		if patch, err = record.MergeJSON[T](raw); err != nil {
			writeError(w, loggerFor(r, h.lg), fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
	}
	h.svc.CreateWith(patch)
	h.writeDraft(w, r, http.StatusCreated)
}

func (h *ScreenHandler[T]) OpenEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	if _, _, err := h.svc.OpenEdit(id); err != nil {
		writeError(w, loggerFor(r, h.lg), fmt.Errorf("%s %d: %w", h.svc.Name(), id, err))
		return
	}
	h.writeDraft(w, r, http.StatusOK)
}

func (h *ScreenHandler[T]) Current(w http.ResponseWriter, r *http.Request) {
	h.writeDraft(w, r, http.StatusOK)
}

// Change merges a JSON object into the open draft.
func (h *ScreenHandler[T]) Change(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	patch, err := record.MergeJSON[T](raw)
	if err != nil {
		writeError(w, loggerFor(r, h.lg), fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if _, err := h.svc.Change(patch); err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	h.writeDraft(w, r, http.StatusOK)
}

// Submit commits the draft: 201 for a new record, 200 for an update. On a
// validation failure the draft stays open.
func (h *ScreenHandler[T]) Submit(w http.ResponseWriter, r *http.Request) {
	rec, kind, err := h.svc.Commit(r.Context())
	if err != nil {
		writeError(w, loggerFor(r, h.lg), err)
		return
	}
	code := http.StatusOK
	if kind == record.KindCreate {
		code = http.StatusCreated
	}
	h.writeRecord(w, r, code, rec)
}

// Cancel discards the draft. Cancelling with no draft open is a no-op.
func (h *ScreenHandler[T]) Cancel(w http.ResponseWriter, r *http.Request) {
	if h.svc.Cancel() {
		loggerFor(r, h.lg).Debug("draft_cancelled", map[string]any{"screen": h.svc.Name()})
	}
	w.WriteHeader(http.StatusNoContent)
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(raw) > maxBody {
		return nil, &http.MaxBytesError{Limit: maxBody}
	}
	return bytes.TrimSpace(raw), nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/microservices/console/service"
	"restaurant-admin/internal/record"
)

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// writeProblem writes a simplified RFC 7807 body.
func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeProblemBody(w, problem{Type: typ, Title: http.StatusText(code), Status: code, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// writeError maps service errors onto problem responses. Unknown errors are
// logged and reported as 500.
func writeError(w http.ResponseWriter, lg *logger.Logger, err error) {
	var (
		verr *domain.ValidationError
		mbe  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		writeProblemBody(w, problem{
			Type:   "validation_failed",
			Title:  http.StatusText(http.StatusUnprocessableEntity),
			Status: http.StatusUnprocessableEntity,
			Detail: verr.Error(),
			Fields: verr.Fields,
		})
	case errors.As(err, &mbe), errors.Is(err, service.ErrImageTooLarge):
		writeProblem(w, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error())
	case errors.Is(err, record.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, record.ErrNoDraft):
		writeProblem(w, http.StatusConflict, "no_draft", err.Error())
	case errors.Is(err, record.ErrStaleDraft):
		writeProblem(w, http.StatusConflict, "stale_draft", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeProblem(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, service.ErrNotAnImage):
		writeProblem(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error())
	case errors.Is(err, domain.ErrUnknownStatus), errors.Is(err, errBadRequest):
		writeProblem(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		lg.Error("request_failed", err, nil)
		writeProblem(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func param(r *http.Request, key string) string {
	return r.PathValue(key)
}

// pathID parses the {id} segment; stored ids start at 1.
func pathID(r *http.Request) (int, error) {
	raw := param(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid id %q", errBadRequest, raw)
	}
	return id, nil
}

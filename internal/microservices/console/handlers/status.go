package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/record"
)

// StatusChanger is implemented by the order, reservation and staff services.
type StatusChanger[T any, S ~string] interface {
	ChangeStatus(ctx context.Context, id int, to S) (record.Record[T], error)
}

type statusRequest[S ~string] struct {
	Status S `json:"status"`
}

// StatusHandler serves POST /{id}/status with a {"status": ...} body.
func StatusHandler[T any, S ~string](svc StatusChanger[T, S], view *ScreenHandler[T], lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, loggerFor(r, lg), err)
			return
		}
		var req statusRequest[S]
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
			writeError(w, loggerFor(r, lg), fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		rec, err := svc.ChangeStatus(r.Context(), id, req.Status)
		if err != nil {
			writeError(w, loggerFor(r, lg), err)
			return
		}
		view.writeRecord(w, r, http.StatusOK, rec)
	}
}

package handlers

import (
	"io"
	"net/http"

	"restaurant-admin/internal/metrics"
)

func mountScreen[T any](mux *http.ServeMux, screen string, h *ScreenHandler[T]) {
	base := "/api/v1/" + screen
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
	mux.HandleFunc("POST "+base+"/drafts", h.OpenCreate)
	mux.HandleFunc("POST "+base+"/{id}/draft", h.OpenEdit)
	mux.HandleFunc("GET "+base+"/drafts/current", h.Current)
	mux.HandleFunc("PATCH "+base+"/drafts/current", h.Change)
	mux.HandleFunc("POST "+base+"/drafts/current/submit", h.Submit)
	mux.HandleFunc("DELETE "+base+"/drafts/current", h.Cancel)
}

// HealthChecker reports whether a dependency is usable.
type HealthChecker interface {
	Ping() error
}

// Router wires every console endpoint. m may be nil, in which case /metrics
// is not served and requests are not instrumented. When health is non-nil
// /healthz answers 503 while its Ping fails.
func Router(h *Handler, m *metrics.Metrics, health HealthChecker) http.Handler {
	mux := http.NewServeMux()

	mountScreen(mux, "menu", h.Menu)
	mountScreen(mux, "orders", h.Orders)
	mountScreen(mux, "reservations", h.Reservations)
	mountScreen(mux, "staff", h.Staff)

	mux.HandleFunc("POST /api/v1/orders/{id}/status", h.OrderStatus)
	mux.HandleFunc("POST /api/v1/reservations/{id}/status", h.ReservationStatus)
	mux.HandleFunc("POST /api/v1/staff/{id}/status", h.StaffStatus)
	mux.HandleFunc("POST /api/v1/menu/drafts/current/image", h.Image.Upload)
	mux.HandleFunc("GET /api/v1/dashboard", h.Dashboard.Summary)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health.Ping(); err != nil {
				loggerFor(r, h.lg).Error("health_check_failed", err, nil)
				writeProblem(w, http.StatusServiceUnavailable, "unavailable", err.Error())
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})

	var root http.Handler = mux
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
		root = m.Instrument(mux)
	}
	return withRequestLog(h.lg, root)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/metrics"
	"restaurant-admin/internal/microservices/console/service"
	"restaurant-admin/internal/record"
	"restaurant-admin/internal/repository"
)

var testNow = func() time.Time { return time.Date(2024, 3, 20, 9, 0, 0, 0, time.Local) }

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	return newRouterWith(t, nil)
}

func newRouterWith(t *testing.T, health HealthChecker) http.Handler {
	t.Helper()
	svc := service.New(repository.New(), testNow)
	return Router(New(svc, logger.New("test").WithOutput(io.Discard)), metrics.New(), health)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func problemType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	return decode(t, rec)["type"].(string)
}

func TestList(t *testing.T) {
	h := newRouter(t)
	rec := do(t, h, http.MethodGet, "/api/v1/menu", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "menu", body["screen"])
	records := body["records"].([]any)
	require.Len(t, records, 3)
	first := records[0].(map[string]any)
	assert.Equal(t, 1.0, first["id"])
	assert.Equal(t, "Margherita Pizza", first["name"])
}

func TestGet_OrderCarriesBadgeAndActions(t *testing.T) {
	h := newRouter(t)
	rec := do(t, h, http.MethodGet, "/api/v1/orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, map[string]any{"variant": "warning", "text": "Pending"}, body["badge"])
	assert.Equal(t, []any{"preparing", "cancelled"}, body["actions"])
	assert.Equal(t, []any{25.98, 8.99}, body["subtotals"])
	assert.Equal(t, 34.97, body["total"])
}

func TestGet_Errors(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/staff/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", problemType(t, rec))

	rec = do(t, h, http.MethodGet, "/api/v1/staff/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", problemType(t, rec))
}

func TestCreateFlow(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/menu/drafts", `{"name":"Tiramisu","category":"Dessert"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	draft := decode(t, rec)
	assert.Equal(t, "editing-new", draft["state"])
	assert.Equal(t, 0.0, draft["record"].(map[string]any)["id"])
	assert.Equal(t, "Tiramisu", draft["record"].(map[string]any)["name"])

	rec = do(t, h, http.MethodPatch, "/api/v1/menu/drafts/current", `{"description":"Coffee layers","price":6.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/menu/drafts/current/submit", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	prob := decode(t, rec)
	assert.Equal(t, "validation_failed", prob["type"])
	fields := prob["fields"].([]any)
	require.Len(t, fields, 1)
	assert.Equal(t, "image", fields[0].(map[string]any)["field"])

	rec = do(t, h, http.MethodPatch, "/api/v1/menu/drafts/current", `{"image":"/assets/tiramisu.jpg"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/menu/drafts/current/submit", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, 4.0, created["id"])
	assert.Equal(t, 6.5, created["price"])

	rec = do(t, h, http.MethodGet, "/api/v1/menu/drafts/current", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no_draft", problemType(t, rec))
}

func TestEditThenCancelLeavesRecord(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/staff/1/draft", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "editing-existing", decode(t, rec)["state"])

	rec = do(t, h, http.MethodPatch, "/api/v1/staff/drafts/current", `{"phone":"555-9999"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/staff/drafts/current", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/staff/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "555-0123", decode(t, rec)["phone"])
}

func TestEditSubmitReplaces(t *testing.T) {
	h := newRouter(t)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/reservations/2/draft", "").Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPatch, "/api/v1/reservations/drafts/current", `{"party_size":3}`).Code)

	rec := do(t, h, http.MethodPost, "/api/v1/reservations/drafts/current/submit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, decode(t, rec)["party_size"])

	list := decode(t, do(t, h, http.MethodGet, "/api/v1/reservations", ""))["records"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, 2.0, list[1].(map[string]any)["id"])
}

func TestEditOrderItemsRecomputesTotal(t *testing.T) {
	h := newRouter(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/orders/1/draft", "").Code)

	rec := do(t, h, http.MethodPatch, "/api/v1/orders/drafts/current", `{"items":[{"name":"Water","quantity":2,"price":1.5}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	draft := decode(t, rec)["record"].(map[string]any)
	assert.Equal(t, []any{map[string]any{"name": "Water", "quantity": 2.0, "price": 1.5}}, draft["items"])
	assert.Equal(t, []any{3.0}, draft["subtotals"])

	rec = do(t, h, http.MethodPost, "/api/v1/orders/drafts/current/submit", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, 3.0, body["total"])
	assert.Equal(t, []any{3.0}, body["subtotals"])
	assert.Equal(t, 5.0, body["table_number"])
}

func TestEditKeepsReservationStatus(t *testing.T) {
	h := newRouter(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/reservations/2/draft", "").Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPatch, "/api/v1/reservations/drafts/current", `{"status":"cancelled"}`).Code)

	rec := do(t, h, http.MethodPost, "/api/v1/reservations/drafts/current/submit", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "pending", decode(t, rec)["status"])

	rec = do(t, h, http.MethodGet, "/api/v1/reservations/2", "")
	assert.Equal(t, "pending", decode(t, rec)["status"])
}

// swappingScreen opens a fresh staff draft right before committing, the way
// a second client racing the submit would.
type swappingScreen struct {
	*service.Screen[domain.StaffMember]
}

func (s swappingScreen) Commit(ctx context.Context) (record.Record[domain.StaffMember], record.Kind, error) {
	s.Screen.CreateWith(func(m *domain.StaffMember) {
		m.Name, m.Email, m.Phone = "Tom", "tom@restaurant.com", "555-0199"
	})
	return s.Screen.Commit(ctx)
}

func TestSubmit_StatusFollowsCommittedKind(t *testing.T) {
	svc := service.New(repository.New(), testNow)
	_, _, err := svc.Staff.OpenEdit(1)
	require.NoError(t, err)

	sh := NewScreenHandler[domain.StaffMember](swappingScreen{svc.Staff.Screen}, nil, logger.New("test").WithOutput(io.Discard))
	rec := httptest.NewRecorder()
	sh.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/v1/staff/drafts/current/submit", nil))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 3.0, decode(t, rec)["id"])
}

func TestPatch_BadBody(t *testing.T) {
	h := newRouter(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/v1/orders/drafts", "").Code)

	rec := do(t, h, http.MethodPatch, "/api/v1/orders/drafts/current", `[1]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPatch, "/api/v1/orders/drafts/current", `{"table_number":"five"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangeStatus(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/orders/1/status", `{"status":"preparing"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "preparing", body["status"])
	assert.Equal(t, []any{"ready"}, body["actions"])

	rec = do(t, h, http.MethodPost, "/api/v1/orders/1/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_transition", problemType(t, rec))

	rec = do(t, h, http.MethodPost, "/api/v1/staff/1/status", `{"status":"retired"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/reservations/9/status", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete(t *testing.T) {
	h := newRouter(t)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/v1/menu/2", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/v1/menu/2", "").Code)

	list := decode(t, do(t, h, http.MethodGet, "/api/v1/menu", ""))["records"].([]any)
	assert.Len(t, list, 2)
}

func upload(t *testing.T, h http.Handler, gen string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "pic.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/menu/drafts/current/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if gen != "" {
		req.Header.Set(generationHeader, gen)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestImageUpload(t *testing.T) {
	h := newRouter(t)

	rec := upload(t, h, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no_draft", problemType(t, rec))

	rec = do(t, h, http.MethodPost, "/api/v1/menu/drafts", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	gen := decode(t, rec)["generation"].(float64)

	rec = upload(t, h, strconv.FormatFloat(gen, 'f', 0, 64))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	img := decode(t, rec)["record"].(map[string]any)["image"].(string)
	assert.True(t, strings.HasPrefix(img, "data:image/png;base64,"), img)
}

func TestImageUpload_StaleDraft(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/menu/drafts", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	old := decode(t, rec)["generation"].(float64)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/v1/menu/drafts", "").Code)

	rec = upload(t, h, strconv.FormatFloat(old, 'f', 0, 64))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "stale_draft", problemType(t, rec))

	draft := decode(t, do(t, h, http.MethodGet, "/api/v1/menu/drafts/current", ""))
	assert.Equal(t, "", draft["record"].(map[string]any)["image"])
}

func TestDashboard(t *testing.T) {
	h := newRouter(t)
	rec := do(t, h, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, 3.0, body["menu_items"])
	assert.Equal(t, 2.0, body["active_orders"])
	assert.Equal(t, 2.0, body["today_reservations"])
	assert.Equal(t, 2.0, body["staff_members"])
	assert.Len(t, body["featured_dishes"], 4)
}

func TestHealthMetricsAndRequestID(t *testing.T) {
	h := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))

	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "restaurant_admin_http_requests_total")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

type pinger struct{ err error }

func (p *pinger) Ping() error { return p.err }

func TestHealth_ReportsBrokerState(t *testing.T) {
	broker := &pinger{}
	h := newRouterWith(t, broker)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	broker.err = errors.New("rabbitmq connection is closed")
	rec = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", problemType(t, rec))
}

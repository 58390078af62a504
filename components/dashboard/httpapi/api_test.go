package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dashboard "github.com/storelens/storelens/components/dashboard"
	"github.com/storelens/storelens/pkg/backend"
	"github.com/storelens/storelens/pkg/session"
)

func newTestAPI(t *testing.T, data backend.MockData) (*API, *dashboard.Shell) {
	t.Helper()
	client := backend.NewMockClient(data)
	store := session.NewMemoryStore()
	_ = store.Save("preseeded-token")
	guard := session.NewGuard(store, client, nil)
	shell, err := dashboard.NewShell(dashboard.Options{Guard: guard, Client: client})
	if err != nil {
		t.Fatalf("NewShell returned error: %v", err)
	}
	return New(shell, guard, nil), shell
}

func TestHandleLoginMountsAndReturnsState(t *testing.T) {
	api, _ := newTestAPI(t, backend.MockData{
		Identity: backend.Identity{ID: "t1", Name: "Acme"},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"owner@acme.test","password":"secret"}`))
	rec := httptest.NewRecorder()
	api.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var state dashboard.ShellState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if state.Phase != dashboard.ShellReady {
		t.Fatalf("expected ready phase, got %s", state.Phase)
	}
	if len(state.Panels) == 0 {
		t.Fatalf("expected panels in ready state")
	}
}

func TestHandleSetRangeRejectsMalformedBounds(t *testing.T) {
	api, shell := newTestAPI(t, backend.MockData{})
	if err := shell.Mount(httptest.NewRequest(http.MethodGet, "/", nil).Context()); err != nil {
		t.Fatalf("Mount returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/dashboard/range",
		strings.NewReader(`{"startDate":"01/05/2024"}`))
	rec := httptest.NewRecorder()
	api.HandleSetRange(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestHandleSetRangeBeforeMountIsUnauthorized(t *testing.T) {
	api, _ := newTestAPI(t, backend.MockData{})
	req := httptest.NewRequest(http.MethodPut, "/dashboard/range",
		strings.NewReader(`{"startDate":"2024-01-01","endDate":"2024-01-31"}`))
	rec := httptest.NewRecorder()
	api.HandleSetRange(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleResyncQueuesJob(t *testing.T) {
	api, shell := newTestAPI(t, backend.MockData{})
	if err := shell.Mount(httptest.NewRequest(http.MethodGet, "/", nil).Context()); err != nil {
		t.Fatalf("Mount returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/dashboard/resync", nil)
	rec := httptest.NewRecorder()
	api.HandleResync(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleOrdersPageReturnsPanelState(t *testing.T) {
	orders := make([]backend.Order, 23)
	for i := range orders {
		orders[i] = backend.Order{ID: "o", OrderNumber: "#1"}
	}
	api, shell := newTestAPI(t, backend.MockData{Orders: orders})
	if err := shell.Mount(httptest.NewRequest(http.MethodGet, "/", nil).Context()); err != nil {
		t.Fatalf("Mount returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/dashboard/panels/orders_table/page",
		strings.NewReader(`{"move":"next"}`))
	rec := httptest.NewRecorder()
	api.HandleOrdersPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var state dashboard.PanelState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding panel state: %v", err)
	}
	if state.Code != dashboard.PanelOrdersTable || state.Phase != dashboard.PhaseReady {
		t.Fatalf("unexpected panel state %+v", state)
	}
}

func TestHandlePanelStateUnknownCodeIs404(t *testing.T) {
	api, shell := newTestAPI(t, backend.MockData{})
	if err := shell.Mount(httptest.NewRequest(http.MethodGet, "/", nil).Context()); err != nil {
		t.Fatalf("Mount returned error: %v", err)
	}

	rec := httptest.NewRecorder()
	api.HandlePanelState(rec, httptest.NewRequest(http.MethodGet, "/dashboard/panels/nope", nil), "nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRegisterRoutesServesState(t *testing.T) {
	api, shell := newTestAPI(t, backend.MockData{
		Identity: backend.Identity{ID: "t1", Name: "Acme"},
	})
	if err := shell.Mount(httptest.NewRequest(http.MethodGet, "/", nil).Context()); err != nil {
		t.Fatalf("Mount returned error: %v", err)
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, dashboard.NewBroadcastHook())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/panels/overview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for panel state, got %d: %s", rec.Code, rec.Body.String())
	}
	var state dashboard.PanelState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding panel state: %v", err)
	}
	if state.Code != dashboard.PanelOverview {
		t.Fatalf("unexpected panel %q", state.Code)
	}
}

func TestStatusForErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{session.ErrNotAuthenticated, http.StatusUnauthorized},
		{dashboard.ErrNotReady, http.StatusUnauthorized},
		{dashboard.ErrSyncInProgress, http.StatusConflict},
		{dashboard.ErrUnknownPanel, http.StatusNotFound},
		{&backend.APIError{Status: http.StatusBadGateway, Message: "upstream"}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		if got := StatusForError(tc.err); got != tc.status {
			t.Errorf("StatusForError(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

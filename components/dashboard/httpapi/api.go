package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/storelens/storelens/components/dashboard"
	"github.com/storelens/storelens/components/dashboard/commands"
	"github.com/storelens/storelens/components/dashboard/queries"
	"github.com/storelens/storelens/pkg/backend"
	"github.com/storelens/storelens/pkg/session"
)

// API aggregates the dashboard commands and queries behind one HTTP surface.
// Transports invoke it through the generic command/query contracts so the
// shell never leaks into handler code.
type API struct {
	Login      gocommand.Commander[backend.Credentials]
	Register   gocommand.Commander[backend.Registration]
	Logout     gocommand.Commander[commands.LogoutInput]
	SetRange   gocommand.Commander[dashboard.DateRange]
	ClearRange gocommand.Commander[commands.ClearDateRangeInput]
	Page       gocommand.Commander[commands.OrdersPageInput]
	Resync     gocommand.Commander[commands.ResyncInput]
	State      gocommand.Querier[queries.StateInput, dashboard.ShellState]
	PanelState gocommand.Querier[queries.PanelStateInput, dashboard.PanelState]
}

// Authenticator is the slice of the session guard the API needs.
type Authenticator interface {
	Login(ctx context.Context, creds backend.Credentials) (backend.Session, error)
	Register(ctx context.Context, reg backend.Registration) (backend.Session, error)
}

// New wires the default command set around a shell and session guard.
func New(shell *dashboard.Shell, guard Authenticator, telemetry commands.Telemetry) *API {
	return &API{
		Login:      commands.NewLoginCommand(guard, shell, telemetry),
		Register:   commands.NewRegisterCommand(guard, shell, telemetry),
		Logout:     commands.NewLogoutCommand(shell, telemetry),
		SetRange:   commands.NewSetDateRangeCommand(shell, telemetry),
		ClearRange: commands.NewClearDateRangeCommand(shell, telemetry),
		Page:       commands.NewOrdersPageCommand(shell, telemetry),
		Resync:     commands.NewResyncCommand(shell, telemetry),
		State:      queries.NewStateQuery(shell),
		PanelState: queries.NewPanelStateQuery(shell),
	}
}

// StatusForError maps domain failures onto HTTP status codes. Unknown errors
// are treated as server faults.
func StatusForError(err error) int {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, session.ErrNotAuthenticated), errors.Is(err, dashboard.ErrNotReady):
		return http.StatusUnauthorized
	case errors.Is(err, dashboard.ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, dashboard.ErrUnknownPanel):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		return apiErr.Status
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, StatusForError(err), map[string]string{"error": err.Error()})
}

// HandleState serves the full dashboard snapshot as JSON.
func (a *API) HandleState(w http.ResponseWriter, r *http.Request) {
	state, err := a.State.Query(r.Context(), queries.StateInput{})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleLogin authenticates and mounts the dashboard.
func (a *API) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds backend.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := a.Login.Execute(r.Context(), creds); err != nil {
		respondError(w, err)
		return
	}
	a.HandleState(w, r)
}

// HandleRegister provisions a tenant and mounts the dashboard.
func (a *API) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var reg backend.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := a.Register.Execute(r.Context(), reg); err != nil {
		respondError(w, err)
		return
	}
	a.HandleState(w, r)
}

// HandleLogout ends the session.
func (a *API) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.Logout.Execute(r.Context(), commands.LogoutInput{}); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// HandleSetRange replaces the shared date range.
func (a *API) HandleSetRange(w http.ResponseWriter, r *http.Request) {
	var rng dashboard.DateRange
	if err := json.NewDecoder(r.Body).Decode(&rng); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := a.SetRange.Execute(r.Context(), rng); err != nil {
		if errors.Is(err, dashboard.ErrNotReady) {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	a.HandleState(w, r)
}

// HandleClearRange resets the shared date range.
func (a *API) HandleClearRange(w http.ResponseWriter, r *http.Request) {
	if err := a.ClearRange.Execute(r.Context(), commands.ClearDateRangeInput{}); err != nil {
		respondError(w, err)
		return
	}
	a.HandleState(w, r)
}

// HandleOrdersPage moves the orders table.
func (a *API) HandleOrdersPage(w http.ResponseWriter, r *http.Request) {
	var input commands.OrdersPageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := a.Page.Execute(r.Context(), input); err != nil {
		respondError(w, err)
		return
	}
	state, err := a.PanelState.Query(r.Context(), queries.PanelStateInput{Code: dashboard.PanelOrdersTable})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleResync triggers a backend re-pull. A trigger while one is running
// answers 409 without side effects.
func (a *API) HandleResync(w http.ResponseWriter, r *http.Request) {
	var input commands.ResyncInput
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	if err := a.Resync.Execute(r.Context(), input); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// HandlePanelState serves one panel snapshot by code.
func (a *API) HandlePanelState(w http.ResponseWriter, r *http.Request, code string) {
	state, err := a.PanelState.Query(r.Context(), queries.PanelStateInput{Code: code})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// RegisterRoutes mounts the JSON endpoints plus the live event feeds on a
// plain ServeMux, for hosts that embed the dashboard without go-router.
func (a *API) RegisterRoutes(mux *http.ServeMux, hook *dashboard.BroadcastHook) {
	mux.HandleFunc("GET /dashboard/state", a.HandleState)
	mux.HandleFunc("GET /dashboard/panels/{code}", func(w http.ResponseWriter, r *http.Request) {
		a.HandlePanelState(w, r, r.PathValue("code"))
	})
	mux.HandleFunc("POST /auth/login", a.HandleLogin)
	mux.HandleFunc("POST /auth/register", a.HandleRegister)
	mux.HandleFunc("POST /auth/logout", a.HandleLogout)
	mux.HandleFunc("PUT /dashboard/range", a.HandleSetRange)
	mux.HandleFunc("DELETE /dashboard/range", a.HandleClearRange)
	mux.HandleFunc("PUT /dashboard/orders/page", a.HandleOrdersPage)
	mux.HandleFunc("POST /dashboard/resync", a.HandleResync)
	if hook != nil {
		mux.HandleFunc("GET /dashboard/ws", hook.ServeWebSocket)
		mux.HandleFunc("GET /dashboard/events", hook.ServeSSE)
	}
}

package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	dashboard "github.com/storelens/storelens/components/dashboard"
	"github.com/storelens/storelens/components/dashboard/commands"
	"github.com/storelens/storelens/components/dashboard/httpapi"
	"github.com/storelens/storelens/components/dashboard/queries"
	"github.com/storelens/storelens/pkg/backend"
)

// Config wires go-router with the dashboard shell, API, and refresh hook.
type Config[T any] struct {
	Router    router.Router[T]
	Shell     *dashboard.Shell
	API       *httpapi.API
	Renderer  dashboard.Renderer
	Broadcast *dashboard.BroadcastHook
	BasePath  string
	Routes    RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	Entry      string
	Dashboard  string
	State      string
	Panel      string
	Login      string
	Register   string
	Logout     string
	Range      string
	OrdersPage string
	Resync     string
	WebSocket  string
	Assets     string
}

func (c Config[T]) routes() RouteConfig {
	routes := c.Routes
	if routes.Entry == "" {
		routes.Entry = "/"
	}
	if routes.Dashboard == "" {
		routes.Dashboard = "/dashboard"
	}
	if routes.State == "" {
		routes.State = "/dashboard/state"
	}
	if routes.Panel == "" {
		routes.Panel = "/dashboard/panels/:code"
	}
	if routes.Login == "" {
		routes.Login = "/auth/login"
	}
	if routes.Register == "" {
		routes.Register = "/auth/register"
	}
	if routes.Logout == "" {
		routes.Logout = "/auth/logout"
	}
	if routes.Range == "" {
		routes.Range = "/dashboard/range"
	}
	if routes.OrdersPage == "" {
		routes.OrdersPage = "/dashboard/orders/page"
	}
	if routes.Resync == "" {
		routes.Resync = "/dashboard/resync"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	if routes.Assets == "" {
		routes.Assets = "/assets"
	}
	return routes
}

// Register mounts dashboard routes (HTML, JSON, WebSocket) on a go-router
// router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Shell == nil {
		return errors.New("gorouter: shell is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api is required")
	}
	routes := cfg.routes()

	cfg.Router.Static(routes.Assets, ".", router.Static{
		FS:     dashboard.Assets(),
		Root:   ".",
		MaxAge: 86400,
	})

	group := cfg.Router.Group(cfg.BasePath)

	group.Get(routes.Entry, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Shell.Phase() == dashboard.ShellReady {
			return ctx.Redirect(routes.Dashboard)
		}
		return renderEntry(ctx, cfg.Renderer, "")
	}))

	group.Get(routes.Dashboard, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Shell.Phase() != dashboard.ShellReady {
			if err := cfg.Shell.Mount(ctx.Context()); err != nil {
				return renderEntry(ctx, cfg.Renderer, "")
			}
		}
		return renderDashboard(ctx, cfg.Renderer, cfg.Shell.Snapshot())
	}))

	group.Get(routes.State, router.WrapHandler(func(ctx router.Context) error {
		state, err := cfg.API.State.Query(ctx.Context(), queries.StateInput{})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, state)
	}))

	group.Get(routes.Panel, router.WrapHandler(func(ctx router.Context) error {
		code := ctx.Param("code")
		if code == "" {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "panel code is required"})
		}
		state, err := cfg.API.PanelState.Query(ctx.Context(), queries.PanelStateInput{Code: code})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, state)
	}))

	registerAuth(group, cfg.API, routes)
	registerOperations(group, cfg.API, routes)

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAuth[T any](r router.Router[T], api *httpapi.API, routes RouteConfig) {
	r.Post(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		var creds backend.Credentials
		if err := json.Unmarshal(ctx.Body(), &creds); err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if err := api.Login.Execute(ctx.Context(), creds); err != nil {
			return respondError(ctx, err)
		}
		state, err := api.State.Query(ctx.Context(), queries.StateInput{})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, state)
	}))

	r.Post(routes.Register, router.WrapHandler(func(ctx router.Context) error {
		var reg backend.Registration
		if err := json.Unmarshal(ctx.Body(), &reg); err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if err := api.Register.Execute(ctx.Context(), reg); err != nil {
			return respondError(ctx, err)
		}
		state, err := api.State.Query(ctx.Context(), queries.StateInput{})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, state)
	}))

	r.Post(routes.Logout, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Logout.Execute(ctx.Context(), commands.LogoutInput{}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
	}))
}

func registerOperations[T any](r router.Router[T], api *httpapi.API, routes RouteConfig) {
	r.Put(routes.Range, router.WrapHandler(func(ctx router.Context) error {
		var rng dashboard.DateRange
		if err := json.Unmarshal(ctx.Body(), &rng); err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if err := api.SetRange.Execute(ctx.Context(), rng); err != nil {
			if errors.Is(err, dashboard.ErrNotReady) {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "applied"})
	}))

	r.Delete(routes.Range, router.WrapHandler(func(ctx router.Context) error {
		if err := api.ClearRange.Execute(ctx.Context(), commands.ClearDateRangeInput{}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "cleared"})
	}))

	r.Put(routes.OrdersPage, router.WrapHandler(func(ctx router.Context) error {
		var input commands.OrdersPageInput
		if err := json.Unmarshal(ctx.Body(), &input); err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if err := api.Page.Execute(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		state, err := api.PanelState.Query(ctx.Context(), queries.PanelStateInput{Code: dashboard.PanelOrdersTable})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, state)
	}))

	r.Post(routes.Resync, router.WrapHandler(func(ctx router.Context) error {
		var input commands.ResyncInput
		if body := ctx.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &input); err != nil {
				return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
		}
		if err := api.Resync.Execute(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func renderEntry(ctx router.Context, renderer dashboard.Renderer, message string) error {
	if renderer == nil {
		return ctx.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}
	html, err := renderer.Render("entry", map[string]any{"error": message})
	if err != nil {
		return respondError(ctx, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send([]byte(html))
}

func renderDashboard(ctx router.Context, renderer dashboard.Renderer, state dashboard.ShellState) error {
	if renderer == nil {
		return ctx.JSON(http.StatusOK, state)
	}
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return respondError(ctx, err)
	}
	html, err := renderer.Render("dashboard", map[string]any{
		"identity":  state.Identity,
		"range":     state.Range,
		"panels":    state.Panels,
		"syncBusy":  state.SyncBusy,
		"stateJSON": string(stateJSON),
	})
	if err != nil {
		return respondError(ctx, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send([]byte(html))
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(httpapi.StatusForError(err), map[string]string{"error": err.Error()})
}

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/storelens/storelens/pkg/backend"
)

// ShellPhase is the lifecycle phase of the dashboard as a whole.
type ShellPhase string

// Shell lifecycle phases. Panels only exist to the outside world while the
// shell is ready; every other phase renders the entry screen.
const (
	ShellInitializing    ShellPhase = "initializing"
	ShellUnauthenticated ShellPhase = "unauthenticated"
	ShellReady           ShellPhase = "ready"
)

var (
	// ErrNotReady is returned when a dashboard operation runs before a
	// successful Mount or after Logout.
	ErrNotReady = errors.New("dashboard: shell is not ready")
	// ErrUnknownPanel is returned when an operation names a panel code the
	// shell does not host.
	ErrUnknownPanel = errors.New("dashboard: unknown panel")
)

// Options configures the dashboard Shell. Every collaborator is provided via
// interface so applications can swap implementations without importing
// internal packages.
type Options struct {
	Guard     SessionGuard
	Client    backend.Client
	Registry  PanelRegistry
	Charts    *ChartRenderer
	Hook      RefreshHook
	Telemetry Telemetry
	Logger    *zap.Logger
}

// Shell owns the tenant session, the shared date range, and one controller
// per panel. It fans dependency changes out to the affected panels and keeps
// unaffected ones untouched.
type Shell struct {
	opts   Options
	resync *ResyncController

	mu       sync.Mutex
	phase    ShellPhase
	identity backend.Identity
	rng      DateRange
	panels   []Panel
	byCode   map[string]Panel
}

// NewShell builds a Shell with safe defaults and instantiates the registered
// panel set. No network traffic happens until Mount.
func NewShell(opts Options) (*Shell, error) {
	if opts.Guard == nil {
		return nil, fmt.Errorf("dashboard: session guard is required")
	}
	if opts.Client == nil {
		return nil, fmt.Errorf("dashboard: backend client is required")
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Hook == nil {
		opts.Hook = noopRefreshHook{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	panels, err := opts.Registry.BuildPanels(BuilderDeps{
		Client:    opts.Client,
		Charts:    opts.Charts,
		Hook:      opts.Hook,
		Telemetry: opts.Telemetry,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]Panel, len(panels))
	for _, panel := range panels {
		byCode[panel.Code()] = panel
	}
	return &Shell{
		opts:   opts,
		resync: NewResyncController(opts.Client, opts.Logger, opts.Telemetry),
		phase:  ShellInitializing,
		panels: panels,
		byCode: byCode,
	}, nil
}

// Mount resolves the stored session and, on success, loads every panel in
// parallel. An identity failure leaves the shell unauthenticated with no
// panel requests issued.
func (s *Shell) Mount(ctx context.Context) error {
	identity, err := s.opts.Guard.Resolve(ctx)
	if err != nil {
		s.mu.Lock()
		s.phase = ShellUnauthenticated
		s.identity = backend.Identity{}
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.phase = ShellReady
	s.identity = identity
	s.mu.Unlock()

	s.opts.Logger.Info("dashboard mounted",
		zap.String("tenant", identity.ID),
		zap.String("shop", identity.ShopDomain))
	s.opts.Telemetry.Record(ctx, eventMount, map[string]any{
		"tenant": identity.ID,
	})
	s.reload(ctx, ReasonMount, nil)
	return nil
}

// Phase returns the current shell phase.
func (s *Shell) Phase() ShellPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Identity returns the resolved tenant identity while the shell is ready.
func (s *Shell) Identity() (backend.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, s.phase == ShellReady
}

// DateRange returns the active shared range.
func (s *Shell) DateRange() DateRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng
}

// Panel returns the hosted panel with the given code.
func (s *Shell) Panel(code string) (Panel, bool) {
	panel, ok := s.byCode[code]
	return panel, ok
}

// SetDateRange replaces the shared range as one value and reloads every
// range-dependent panel. Setting an equal range is a no-op; panels outside
// the range dependency never reload.
func (s *Shell) SetDateRange(ctx context.Context, rng DateRange) error {
	if err := s.requireReady(); err != nil {
		return err
	}
	if err := rng.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.rng.Equal(rng) {
		s.mu.Unlock()
		return nil
	}
	s.rng = rng
	s.mu.Unlock()

	s.opts.Telemetry.Record(ctx, eventRangeChanged, map[string]any{
		"start": rng.Start,
		"end":   rng.End,
	})
	s.reload(ctx, ReasonRange, func(p Panel) bool { return p.DependsOnRange() })
	return nil
}

// ClearDateRange resets both bounds and reloads range-dependent panels with
// the unfiltered view.
func (s *Shell) ClearDateRange(ctx context.Context) error {
	return s.SetDateRange(ctx, DateRange{})
}

// SetOrdersPage moves the orders table to the requested zero-based page and
// reloads only that panel.
func (s *Shell) SetOrdersPage(ctx context.Context, page int) error {
	pageable, err := s.ordersPanel()
	if err != nil {
		return err
	}
	pageable.SetPage(page)
	s.reload(ctx, ReasonPage, func(p Panel) bool { return p.Code() == PanelOrdersTable })
	return nil
}

// NextOrdersPage advances the orders table one page; past the last page it
// stays put.
func (s *Shell) NextOrdersPage(ctx context.Context) error {
	pageable, err := s.ordersPanel()
	if err != nil {
		return err
	}
	return s.SetOrdersPage(ctx, pageable.Page()+1)
}

// PrevOrdersPage moves the orders table one page back; page zero stays put.
func (s *Shell) PrevOrdersPage(ctx context.Context) error {
	pageable, err := s.ordersPanel()
	if err != nil {
		return err
	}
	return s.SetOrdersPage(ctx, pageable.Page()-1)
}

func (s *Shell) ordersPanel() (Pageable, error) {
	if err := s.requireReady(); err != nil {
		return nil, err
	}
	panel, ok := s.byCode[PanelOrdersTable]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPanel, PanelOrdersTable)
	}
	pageable, ok := panel.(Pageable)
	if !ok {
		return nil, fmt.Errorf("dashboard: panel %s does not page", PanelOrdersTable)
	}
	return pageable, nil
}

// Resync triggers a backend re-pull of the given scope and, once the service
// acknowledges, reloads every panel against the fresh data. A trigger while
// another is running fails with ErrSyncInProgress and changes nothing.
func (s *Shell) Resync(ctx context.Context, scope backend.SyncScope) (ResyncJob, error) {
	if err := s.requireReady(); err != nil {
		return ResyncJob{}, err
	}
	job, err := s.resync.Trigger(ctx, scope)
	if err != nil {
		return ResyncJob{}, err
	}
	s.reload(ctx, ReasonResync, nil)
	return job, nil
}

// SyncBusy reports whether a resync trigger is currently running.
func (s *Shell) SyncBusy() bool {
	return s.resync.Busy()
}

// Logout clears the stored credential and returns the shell to the
// unauthenticated phase. It succeeds even when no session exists.
func (s *Shell) Logout(ctx context.Context) error {
	if err := s.opts.Guard.Logout(); err != nil {
		return err
	}
	s.mu.Lock()
	s.phase = ShellUnauthenticated
	s.identity = backend.Identity{}
	s.rng = DateRange{}
	s.mu.Unlock()
	s.opts.Telemetry.Record(ctx, eventLogout, nil)
	return nil
}

// ShellState is a transport-ready snapshot of the whole dashboard.
type ShellState struct {
	Phase    ShellPhase       `json:"phase"`
	Identity backend.Identity `json:"identity,omitempty"`
	Range    DateRange        `json:"range"`
	SyncBusy bool             `json:"syncBusy"`
	LastSync *ResyncJob       `json:"lastSync,omitempty"`
	Panels   []PanelState     `json:"panels"`
}

// Snapshot captures the shell and every panel for rendering or the state
// endpoint. Panels are included only while the shell is ready.
func (s *Shell) Snapshot() ShellState {
	s.mu.Lock()
	state := ShellState{
		Phase:    s.phase,
		Identity: s.identity,
		Range:    s.rng,
	}
	ready := s.phase == ShellReady
	panels := s.panels
	s.mu.Unlock()

	if !ready {
		return state
	}
	state.SyncBusy = s.resync.Busy()
	if job, ok := s.resync.Last(); ok {
		state.LastSync = &job
	}
	state.Panels = make([]PanelState, 0, len(panels))
	for _, panel := range panels {
		state.Panels = append(state.Panels, panel.State())
	}
	return state
}

func (s *Shell) requireReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != ShellReady {
		return ErrNotReady
	}
	return nil
}

// reload fans a dependency change out to the selected panels in parallel and
// waits for the batch. Each panel fails or succeeds on its own.
func (s *Shell) reload(ctx context.Context, reason string, include func(Panel) bool) {
	s.mu.Lock()
	query := PanelQuery{Range: s.rng, Reason: reason}
	panels := s.panels
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, panel := range panels {
		if include != nil && !include(panel) {
			continue
		}
		wg.Add(1)
		go func(p Panel) {
			defer wg.Done()
			p.Reload(ctx, query)
		}(panel)
	}
	wg.Wait()
}

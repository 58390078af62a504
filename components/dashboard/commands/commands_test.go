package commands

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/storelens/storelens/components/dashboard"
	"github.com/storelens/storelens/pkg/backend"
)

type stubTelemetry struct {
	calls int
}

func (t *stubTelemetry) Record(context.Context, string, map[string]any) { t.calls++ }

type stubGuard struct {
	loginErr    error
	loginCalls  int
	registerErr error
}

func (g *stubGuard) Login(context.Context, backend.Credentials) (backend.Session, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return backend.Session{}, g.loginErr
	}
	return backend.Session{Token: "tok", Tenant: backend.Identity{ID: "t1"}}, nil
}

func (g *stubGuard) Register(context.Context, backend.Registration) (backend.Session, error) {
	if g.registerErr != nil {
		return backend.Session{}, g.registerErr
	}
	return backend.Session{Token: "tok", Tenant: backend.Identity{ID: "t1"}}, nil
}

type stubShell struct {
	mountCalls  int
	logoutCalls int
	rng         dashboard.DateRange
	rangeClears int
	pages       []int
	nextCalls   int
	prevCalls   int
	resyncErr   error
	resyncScope backend.SyncScope
}

func (s *stubShell) Mount(context.Context) error  { s.mountCalls++; return nil }
func (s *stubShell) Logout(context.Context) error { s.logoutCalls++; return nil }

func (s *stubShell) SetDateRange(_ context.Context, rng dashboard.DateRange) error {
	if err := rng.Validate(); err != nil {
		return err
	}
	s.rng = rng
	return nil
}

func (s *stubShell) ClearDateRange(context.Context) error {
	s.rangeClears++
	s.rng = dashboard.DateRange{}
	return nil
}

func (s *stubShell) SetOrdersPage(_ context.Context, page int) error {
	s.pages = append(s.pages, page)
	return nil
}

func (s *stubShell) NextOrdersPage(context.Context) error { s.nextCalls++; return nil }
func (s *stubShell) PrevOrdersPage(context.Context) error { s.prevCalls++; return nil }

func (s *stubShell) Resync(_ context.Context, scope backend.SyncScope) (dashboard.ResyncJob, error) {
	if s.resyncErr != nil {
		return dashboard.ResyncJob{}, s.resyncErr
	}
	s.resyncScope = scope
	return dashboard.ResyncJob{ID: "job-1", Scope: scope}, nil
}

func TestLoginCommandMountsShell(t *testing.T) {
	guard := &stubGuard{}
	shell := &stubShell{}
	telemetry := &stubTelemetry{}
	cmd := NewLoginCommand(guard, shell, telemetry)
	creds := backend.Credentials{Email: "owner@acme.test", Password: "secret"}
	if err := cmd.Execute(context.Background(), creds); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if guard.loginCalls != 1 || shell.mountCalls != 1 {
		t.Fatalf("expected login + mount, got %d/%d", guard.loginCalls, shell.mountCalls)
	}
	if telemetry.calls == 0 {
		t.Fatalf("expected telemetry to record events")
	}
}

func TestLoginCommandSkipsMountOnFailure(t *testing.T) {
	guard := &stubGuard{loginErr: errors.New("bad credentials")}
	shell := &stubShell{}
	cmd := NewLoginCommand(guard, shell, nil)
	if err := cmd.Execute(context.Background(), backend.Credentials{}); err == nil {
		t.Fatalf("expected login error")
	}
	if shell.mountCalls != 0 {
		t.Fatalf("failed login must not mount the shell")
	}
}

func TestRegisterCommandMountsShell(t *testing.T) {
	shell := &stubShell{}
	cmd := NewRegisterCommand(&stubGuard{}, shell, nil)
	reg := backend.Registration{ShopDomain: "acme.myshopify.com", Email: "owner@acme.test"}
	if err := cmd.Execute(context.Background(), reg); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if shell.mountCalls != 1 {
		t.Fatalf("expected mount after registration")
	}
}

func TestLogoutCommand(t *testing.T) {
	shell := &stubShell{}
	cmd := NewLogoutCommand(shell, nil)
	if err := cmd.Execute(context.Background(), LogoutInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if shell.logoutCalls != 1 {
		t.Fatalf("expected logout call")
	}
}

func TestSetDateRangeCommand(t *testing.T) {
	shell := &stubShell{}
	cmd := NewSetDateRangeCommand(shell, nil)
	rng := dashboard.DateRange{Start: "2024-01-01", End: "2024-01-31"}
	if err := cmd.Execute(context.Background(), rng); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !shell.rng.Equal(rng) {
		t.Fatalf("range not applied: %+v", shell.rng)
	}
	if err := cmd.Execute(context.Background(), dashboard.DateRange{Start: "bad"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestClearDateRangeCommand(t *testing.T) {
	shell := &stubShell{rng: dashboard.DateRange{Start: "2024-01-01"}}
	cmd := NewClearDateRangeCommand(shell, nil)
	if err := cmd.Execute(context.Background(), ClearDateRangeInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if shell.rangeClears != 1 || !shell.rng.IsZero() {
		t.Fatalf("range not cleared: %+v", shell.rng)
	}
}

func TestOrdersPageCommandMoves(t *testing.T) {
	shell := &stubShell{}
	cmd := NewOrdersPageCommand(shell, nil)
	if err := cmd.Execute(context.Background(), OrdersPageInput{Page: 3}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if err := cmd.Execute(context.Background(), OrdersPageInput{Move: MoveNext}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if err := cmd.Execute(context.Background(), OrdersPageInput{Move: MovePrev}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(shell.pages) != 1 || shell.pages[0] != 3 {
		t.Fatalf("unexpected page sets %v", shell.pages)
	}
	if shell.nextCalls != 1 || shell.prevCalls != 1 {
		t.Fatalf("unexpected moves next=%d prev=%d", shell.nextCalls, shell.prevCalls)
	}
	if err := cmd.Execute(context.Background(), OrdersPageInput{Move: "sideways"}); err == nil {
		t.Fatalf("expected error for unknown move")
	}
}

func TestResyncCommandPassesScope(t *testing.T) {
	shell := &stubShell{}
	cmd := NewResyncCommand(shell, nil)
	if err := cmd.Execute(context.Background(), ResyncInput{Scope: backend.SyncOrders}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if shell.resyncScope != backend.SyncOrders {
		t.Fatalf("unexpected scope %s", shell.resyncScope)
	}
}

func TestResyncCommandSurfacesBusyError(t *testing.T) {
	shell := &stubShell{resyncErr: dashboard.ErrSyncInProgress}
	cmd := NewResyncCommand(shell, nil)
	err := cmd.Execute(context.Background(), ResyncInput{})
	if !errors.Is(err, dashboard.ErrSyncInProgress) {
		t.Fatalf("expected ErrSyncInProgress, got %v", err)
	}
}

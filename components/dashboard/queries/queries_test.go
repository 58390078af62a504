package queries

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/storelens/storelens/components/dashboard"
)

type stubShell struct {
	state  dashboard.ShellState
	panels map[string]dashboard.Panel
}

func (s *stubShell) Snapshot() dashboard.ShellState { return s.state }

func (s *stubShell) Panel(code string) (dashboard.Panel, bool) {
	panel, ok := s.panels[code]
	return panel, ok
}

type staticPanel struct {
	state dashboard.PanelState
}

func (p staticPanel) Code() string                                 { return p.state.Code }
func (p staticPanel) Title() string                                { return p.state.Title }
func (p staticPanel) DependsOnRange() bool                         { return false }
func (p staticPanel) Reload(context.Context, dashboard.PanelQuery) {}
func (p staticPanel) State() dashboard.PanelState                  { return p.state }

func TestStateQueryReturnsSnapshot(t *testing.T) {
	shell := &stubShell{state: dashboard.ShellState{Phase: dashboard.ShellReady}}
	q := NewStateQuery(shell)
	state, err := q.Query(context.Background(), StateInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if state.Phase != dashboard.ShellReady {
		t.Fatalf("unexpected phase %s", state.Phase)
	}
}

func TestPanelStateQueryResolvesByCode(t *testing.T) {
	panel := staticPanel{state: dashboard.PanelState{Code: "overview", Phase: dashboard.PhaseReady}}
	shell := &stubShell{panels: map[string]dashboard.Panel{"overview": panel}}
	q := NewPanelStateQuery(shell)

	state, err := q.Query(context.Background(), PanelStateInput{Code: "overview"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if state.Phase != dashboard.PhaseReady {
		t.Fatalf("unexpected phase %s", state.Phase)
	}

	_, err = q.Query(context.Background(), PanelStateInput{Code: "missing"})
	if !errors.Is(err, dashboard.ErrUnknownPanel) {
		t.Fatalf("expected ErrUnknownPanel, got %v", err)
	}
}

package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestPanelControllerAppliesResult(t *testing.T) {
	panel := NewPanelController(PanelConfig{Code: "demo", Title: "Demo"},
		func(context.Context, PanelQuery) (int, error) { return 42, nil })

	panel.Reload(context.Background(), PanelQuery{Reason: ReasonMount})
	state := panel.State()
	if state.Phase != PhaseReady {
		t.Fatalf("expected ready phase, got %s", state.Phase)
	}
	if state.Data != 42 {
		t.Fatalf("unexpected payload %v", state.Data)
	}
}

func TestPanelControllerKeepsSiblingsIsolatedOnFailure(t *testing.T) {
	panel := NewPanelController(PanelConfig{Code: "demo", Title: "Demo"},
		func(context.Context, PanelQuery) (int, error) { return 0, errors.New("upstream down") })

	panel.Reload(context.Background(), PanelQuery{Reason: ReasonMount})
	state := panel.State()
	if state.Phase != PhaseFailed {
		t.Fatalf("expected failed phase, got %s", state.Phase)
	}
	if state.Data != nil {
		t.Fatalf("failed panel must not expose a payload, got %v", state.Data)
	}
	if state.Error != "upstream down" {
		t.Fatalf("unexpected error message %q", state.Error)
	}
}

func TestPanelControllerDiscardsSupersededResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	panel := NewPanelController(PanelConfig{Code: "demo", Title: "Demo"},
		func(_ context.Context, query PanelQuery) (string, error) {
			if query.Reason == "slow" {
				once.Do(func() { close(started) })
				<-release
				return "stale", nil
			}
			return "fresh", nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		panel.Reload(context.Background(), PanelQuery{Reason: "slow"})
	}()
	<-started

	// The second reload supersedes the in-flight one before it resolves.
	panel.Reload(context.Background(), PanelQuery{Reason: "fast"})
	close(release)
	wg.Wait()

	state := panel.State()
	if state.Phase != PhaseReady {
		t.Fatalf("expected ready phase, got %s", state.Phase)
	}
	if state.Data != "fresh" {
		t.Fatalf("stale response overwrote newer data: %v", state.Data)
	}
}

func TestPanelControllerRecoversAfterFailure(t *testing.T) {
	fail := true
	panel := NewPanelController(PanelConfig{Code: "demo", Title: "Demo"},
		func(context.Context, PanelQuery) (int, error) {
			if fail {
				return 0, errors.New("transient")
			}
			return 7, nil
		})

	panel.Reload(context.Background(), PanelQuery{Reason: ReasonMount})
	if panel.State().Phase != PhaseFailed {
		t.Fatalf("expected failed phase after first reload")
	}
	fail = false
	panel.Reload(context.Background(), PanelQuery{Reason: ReasonResync})
	state := panel.State()
	if state.Phase != PhaseReady || state.Data != 7 {
		t.Fatalf("expected recovery, got %s %v", state.Phase, state.Data)
	}
	if state.Error != "" {
		t.Fatalf("recovered panel still reports error %q", state.Error)
	}
}

type recordingHook struct {
	mu     sync.Mutex
	events []PanelEvent
}

func (h *recordingHook) PanelUpdated(_ context.Context, event PanelEvent) error {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	return nil
}

func TestPanelControllerEmitsRefreshEvents(t *testing.T) {
	hook := &recordingHook{}
	panel := NewPanelController(PanelConfig{Code: "demo", Title: "Demo", Hook: hook},
		func(context.Context, PanelQuery) (int, error) { return 1, nil })

	panel.Reload(context.Background(), PanelQuery{Reason: ReasonRange})
	hook.mu.Lock()
	defer hook.mu.Unlock()
	if len(hook.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(hook.events))
	}
	event := hook.events[0]
	if event.Panel != "demo" || event.Phase != PhaseReady || event.Reason != ReasonRange {
		t.Fatalf("unexpected event %+v", event)
	}
}

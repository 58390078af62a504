package dashboard

import (
	"context"
	"testing"
)

func TestBroadcastHookDeliversEvents(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()

	event := PanelEvent{Panel: PanelOverview, Phase: PhaseReady, Reason: ReasonMount}
	if err := hook.PanelUpdated(context.Background(), event); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.Panel != event.Panel || e.Reason != event.Reason {
			t.Fatalf("unexpected event %+v", e)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookDropsWhenSubscriberIsFull(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+3; i++ {
		if err := hook.PanelUpdated(context.Background(), PanelEvent{Panel: PanelOverview}); err != nil {
			t.Fatalf("PanelUpdated returned error: %v", err)
		}
	}
	if got := len(ch); got != subscriberBuffer {
		t.Fatalf("expected buffer capped at %d events, got %d", subscriberBuffer, got)
	}
}

func TestBroadcastHookCancelIsIdempotent(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	if got := hook.SubscriberCount(); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}
	cancel()
	cancel()
	if got := hook.SubscriberCount(); got != 0 {
		t.Fatalf("expected 0 subscribers after cancel, got %d", got)
	}
}

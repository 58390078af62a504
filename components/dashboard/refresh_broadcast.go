package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const subscriberBuffer = 8

// BroadcastHook fans panel events out to in-process subscribers so connected
// browsers learn about reloads without polling. It satisfies RefreshHook.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[string]chan PanelEvent
}

// NewBroadcastHook creates a broadcast hook with no subscribers.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{subs: make(map[string]chan PanelEvent)}
}

// PanelUpdated broadcasts the event. A subscriber whose buffer is full loses
// the event rather than blocking the panel reload that produced it.
func (h *BroadcastHook) PanelUpdated(ctx context.Context, event PanelEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a listener and returns its event channel plus a cancel
// func. Cancel closes the channel and is safe to call more than once.
func (h *BroadcastHook) Subscribe() (<-chan PanelEvent, func()) {
	id := uuid.NewString()
	ch := make(chan PanelEvent, subscriberBuffer)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
}

// SubscriberCount reports how many listeners are currently attached.
func (h *BroadcastHook) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams panel events as JSON until
// the client goes away.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE streams panel events as Server-Sent Events for clients that
// cannot hold a WebSocket.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, _ := w.(http.Flusher)
	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

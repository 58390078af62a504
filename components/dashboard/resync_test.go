package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/storelens/storelens/pkg/backend"
)

type blockingIngestion struct {
	started chan struct{}
	release chan struct{}
	err     error
}

func (c *blockingIngestion) SyncAll(context.Context) (backend.SyncAck, error) {
	close(c.started)
	<-c.release
	if c.err != nil {
		return backend.SyncAck{}, c.err
	}
	return backend.SyncAck{Status: "queued"}, nil
}

func (c *blockingIngestion) Sync(context.Context, backend.SyncScope) (backend.SyncAck, error) {
	return backend.SyncAck{Status: "queued"}, nil
}

func (c *blockingIngestion) RecordEvent(context.Context, backend.Event) error { return nil }

func TestResyncRejectsConcurrentTrigger(t *testing.T) {
	client := &blockingIngestion{started: make(chan struct{}), release: make(chan struct{})}
	controller := NewResyncController(client, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := controller.Trigger(context.Background(), ScopeAll); err != nil {
			t.Errorf("first trigger returned error: %v", err)
		}
	}()
	<-client.started

	if !controller.Busy() {
		t.Fatalf("controller not busy during in-flight trigger")
	}
	if _, err := controller.Trigger(context.Background(), ScopeAll); !errors.Is(err, ErrSyncInProgress) {
		t.Fatalf("expected ErrSyncInProgress, got %v", err)
	}

	close(client.release)
	wg.Wait()
	if controller.Busy() {
		t.Fatalf("controller still busy after trigger completed")
	}
	job, ok := controller.Last()
	if !ok || job.Ack.Status != "queued" {
		t.Fatalf("expected recorded job, got %+v (ok=%v)", job, ok)
	}
}

func TestResyncClearsBusyOnFailure(t *testing.T) {
	client := &blockingIngestion{
		started: make(chan struct{}),
		release: make(chan struct{}),
		err:     errors.New("ingestion offline"),
	}
	close(client.release)
	controller := NewResyncController(client, nil, nil)

	if _, err := controller.Trigger(context.Background(), ScopeAll); err == nil {
		t.Fatalf("expected trigger error")
	}
	if controller.Busy() {
		t.Fatalf("failed trigger left controller busy")
	}
	if _, ok := controller.Last(); ok {
		t.Fatalf("failed trigger must not record a job")
	}
}

func TestResyncScopedTriggerUsesScopedEndpoint(t *testing.T) {
	client := backend.NewMockClient(backend.MockData{})
	controller := NewResyncController(client, nil, nil)

	job, err := controller.Trigger(context.Background(), backend.SyncOrders)
	if err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	if job.Scope != backend.SyncOrders {
		t.Fatalf("unexpected scope %s", job.Scope)
	}
	if job.ID == "" {
		t.Fatalf("job id not assigned")
	}
}

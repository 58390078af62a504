package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storelens/storelens/pkg/backend"
)

// ErrSyncInProgress is returned when a resync is triggered while an earlier
// one is still running. A trigger is never queued behind another.
var ErrSyncInProgress = errors.New("dashboard: resync already in progress")

// ScopeAll selects a full resync of every entity class.
const ScopeAll backend.SyncScope = "all"

// ResyncJob records one accepted resync trigger.
type ResyncJob struct {
	ID        string            `json:"id"`
	Scope     backend.SyncScope `json:"scope"`
	StartedAt time.Time         `json:"startedAt"`
	Ack       backend.SyncAck   `json:"ack"`
}

// ResyncController serializes manual resync triggers against the ingestion
// service. At most one trigger runs at a time; the busy flag fails fast
// instead of queueing.
type ResyncController struct {
	client    backend.IngestionClient
	logger    *zap.Logger
	telemetry Telemetry

	mu   sync.Mutex
	busy bool
	last ResyncJob
}

// NewResyncController builds a controller over the given ingestion client.
func NewResyncController(client backend.IngestionClient, logger *zap.Logger, telemetry Telemetry) *ResyncController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResyncController{
		client:    client,
		logger:    logger,
		telemetry: normalizeTelemetry(telemetry),
	}
}

// Busy reports whether a trigger is currently running.
func (c *ResyncController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Last returns the most recently completed job, if any.
func (c *ResyncController) Last() (ResyncJob, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.last.ID != ""
}

// Trigger asks the ingestion service to re-pull the given scope. ScopeAll
// refreshes everything. The call blocks until the service acknowledges; a
// concurrent trigger fails with ErrSyncInProgress.
func (c *ResyncController) Trigger(ctx context.Context, scope backend.SyncScope) (ResyncJob, error) {
	if c.client == nil {
		return ResyncJob{}, fmt.Errorf("dashboard: ingestion client is not configured")
	}
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ResyncJob{}, ErrSyncInProgress
	}
	c.busy = true
	c.mu.Unlock()

	job := ResyncJob{
		ID:        uuid.NewString(),
		Scope:     scope,
		StartedAt: time.Now().UTC(),
	}

	var (
		ack backend.SyncAck
		err error
	)
	if scope == "" || scope == ScopeAll {
		job.Scope = ScopeAll
		ack, err = c.client.SyncAll(ctx)
	} else {
		ack, err = c.client.Sync(ctx, scope)
	}

	c.mu.Lock()
	c.busy = false
	if err == nil {
		job.Ack = ack
		c.last = job
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("resync trigger failed",
			zap.String("job", job.ID),
			zap.String("scope", string(job.Scope)),
			zap.Error(err))
		return ResyncJob{}, fmt.Errorf("dashboard: resync %s: %w", job.Scope, err)
	}
	c.logger.Info("resync accepted",
		zap.String("job", job.ID),
		zap.String("scope", string(job.Scope)),
		zap.String("status", ack.Status))
	c.telemetry.Record(ctx, eventResync, map[string]any{
		"job":   job.ID,
		"scope": string(job.Scope),
	})
	return job, nil
}

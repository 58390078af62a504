package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/storelens/storelens/components/dashboard"
	"github.com/storelens/storelens/pkg/backend"
)

// ResyncInput selects the scope of a manual resync. An empty scope means
// everything.
type ResyncInput struct {
	Scope backend.SyncScope `json:"scope,omitempty"`
}

type resyncService interface {
	Resync(ctx context.Context, scope backend.SyncScope) (dashboard.ResyncJob, error)
}

// ResyncCommand triggers a backend re-pull and reloads the dashboard against
// the fresh data.
type ResyncCommand struct {
	shell     resyncService
	telemetry Telemetry
}

// NewResyncCommand creates a command instance.
func NewResyncCommand(shell resyncService, telemetry Telemetry) *ResyncCommand {
	return &ResyncCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResyncInput] = (*ResyncCommand)(nil)

// Execute triggers the resync. A trigger while another is running surfaces
// dashboard.ErrSyncInProgress unchanged so transports can map it to a
// conflict.
func (c *ResyncCommand) Execute(ctx context.Context, input ResyncInput) error {
	if c.shell == nil {
		return errors.New("resync command requires shell")
	}
	job, err := c.shell.Resync(ctx, input.Scope)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventResync, map[string]any{
		"job":   job.ID,
		"scope": string(job.Scope),
	})
	return nil
}

package dashboard

import "context"

// Event names recorded by the shell and its controllers. Command-layer
// events live in the commands package.
const (
	eventMount        = "dashboard.mount"
	eventRangeChanged = "dashboard.range"
	eventLogout       = "dashboard.logout"
	eventResync       = "dashboard.resync"
	eventPanelReload  = "dashboard.panel.reload"
	eventPanelFailed  = "dashboard.panel.failed"
)

// Telemetry receives named dashboard events with a small payload. Bridge it
// into a metrics pipeline; a nil recorder is replaced with a no-op.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// normalizeTelemetry lets every constructor accept nil.
func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

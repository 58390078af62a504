package commands

import "context"

// Event names emitted by the command layer, one per user-facing operation.
const (
	EventLogin      = "dashboard.login"
	EventRegister   = "dashboard.register"
	EventLogout     = "dashboard.logout"
	EventRangeSet   = "dashboard.range.set"
	EventRangeClear = "dashboard.range.clear"
	EventOrdersPage = "dashboard.orders.page"
	EventResync     = "dashboard.resync.trigger"
)

// Telemetry allows commands to emit structured events. A nil recorder is
// replaced with a no-op, so constructors accept nil freely.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

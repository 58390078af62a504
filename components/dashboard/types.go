package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/storelens/storelens/pkg/backend"
)

// SessionGuard decides whether the viewer may enter the dashboard and evicts
// the credential on authentication failure. Implemented by pkg/session.Guard.
type SessionGuard interface {
	Resolve(ctx context.Context) (backend.Identity, error)
	Logout() error
}

// RefreshHook notifies transports (REST/WebSocket/SSE) about panel changes.
type RefreshHook interface {
	PanelUpdated(ctx context.Context, event PanelEvent) error
}

// PanelRegistry stores panel definitions/builders discoverable via hooks or
// manifests.
type PanelRegistry interface {
	RegisterDefinition(def PanelDefinition) error
	RegisterBuilder(code string, builder PanelBuilder) error
	Definition(code string) (PanelDefinition, bool)
	Definitions() []PanelDefinition
	BuildPanels(deps BuilderDeps) ([]Panel, error)
}

// PanelPhase is the lifecycle phase of one panel's data.
type PanelPhase string

// Panel lifecycle phases. A failed panel stays failed until a dependency
// change or a successful resync triggers the next reload.
const (
	PhaseLoading PanelPhase = "loading"
	PhaseReady   PanelPhase = "ready"
	PhaseFailed  PanelPhase = "failed"
)

// Reload reasons carried on PanelQuery and PanelEvent.
const (
	ReasonMount  = "mount"
	ReasonRange  = "range"
	ReasonPage   = "page"
	ReasonResync = "resync"
)

// PanelQuery carries the dependency values mapped into a panel's operation.
type PanelQuery struct {
	Range  DateRange
	Reason string
}

// PanelState is a transport-ready snapshot of one panel.
type PanelState struct {
	Code  string     `json:"code"`
	Title string     `json:"title"`
	Phase PanelPhase `json:"phase"`
	Data  any        `json:"data,omitempty"`
	Error string     `json:"error,omitempty"`
	Range DateRange  `json:"range"`
}

// PanelEvent describes a panel state transition that transports may care
// about.
type PanelEvent struct {
	Panel  string     `json:"panel"`
	Phase  PanelPhase `json:"phase"`
	Reason string     `json:"reason"`
}

// Panel is one independent dashboard widget with its own data lifecycle. The
// shell coordinates heterogeneous controller instances through this interface.
type Panel interface {
	Code() string
	Title() string
	DependsOnRange() bool
	Reload(ctx context.Context, query PanelQuery)
	State() PanelState
}

// PanelDefinition describes a panel's metadata and configuration schema.
type PanelDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Config      map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// BuilderDeps carries the collaborators a panel builder may need.
type BuilderDeps struct {
	Client    backend.AnalyticsClient
	Charts    *ChartRenderer
	Hook      RefreshHook
	Telemetry Telemetry
	Logger    *zap.Logger
}

// PanelBuilder constructs a panel from its definition and collaborators.
type PanelBuilder func(def PanelDefinition, deps BuilderDeps) (Panel, error)

package dashboard

import (
	core "github.com/storelens/storelens/components/dashboard"
)

// Shell exposes the underlying components/dashboard.Shell type.
type Shell = core.Shell

// Options re-export for convenience.
type Options = core.Options

// DateRange re-export for convenience.
type DateRange = core.DateRange

// ShellState re-export for convenience.
type ShellState = core.ShellState

// NewShell proxies to the internal constructor.
func NewShell(opts Options) (*Shell, error) {
	return core.NewShell(opts)
}

// NewRegistry proxies to the internal constructor.
func NewRegistry() *core.Registry {
	return core.NewRegistry()
}

// NewBroadcastHook proxies to the internal constructor.
func NewBroadcastHook() *core.BroadcastHook {
	return core.NewBroadcastHook()
}

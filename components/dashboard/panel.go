package dashboard

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/storelens/storelens/pkg/backend"
)

// FetchFunc runs a panel's bound facade operation with the dependency values
// mapped into its parameters.
type FetchFunc[T any] func(ctx context.Context, query PanelQuery) (T, error)

// PanelController is the generalized per-widget state machine: it owns one
// loading/ready/failed lifecycle tied to one facade operation and re-runs it
// whenever the shell signals a dependency change.
//
// Each reload bumps a per-instance sequence number; a response is applied only
// while its sequence is still current, so a dependency change always
// invalidates in-flight requests and a stale response can never overwrite a
// newer one.
type PanelController[T any] struct {
	code      string
	title     string
	rangeDep  bool
	fetch     FetchFunc[T]
	hook      RefreshHook
	telemetry Telemetry
	logger    *zap.Logger

	mu        sync.Mutex
	seq       uint64
	phase     PanelPhase
	data      T
	err       error
	lastRange DateRange
}

// PanelConfig describes one controller instance.
type PanelConfig struct {
	Code           string
	Title          string
	DependsOnRange bool
	Hook           RefreshHook
	Telemetry      Telemetry
	Logger         *zap.Logger
}

// NewPanelController builds a controller in the loading phase; no request is
// issued until the shell triggers the first Reload.
func NewPanelController[T any](cfg PanelConfig, fetch FetchFunc[T]) *PanelController[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	hook := cfg.Hook
	if hook == nil {
		hook = noopRefreshHook{}
	}
	return &PanelController[T]{
		code:      cfg.Code,
		title:     cfg.Title,
		rangeDep:  cfg.DependsOnRange,
		fetch:     fetch,
		hook:      hook,
		telemetry: normalizeTelemetry(cfg.Telemetry),
		logger:    logger,
		phase:     PhaseLoading,
	}
}

// Code returns the panel's stable identifier.
func (p *PanelController[T]) Code() string { return p.code }

// Title returns the panel's display name.
func (p *PanelController[T]) Title() string { return p.title }

// DependsOnRange reports whether Date Range changes must trigger a reload.
func (p *PanelController[T]) DependsOnRange() bool { return p.rangeDep }

// Reload transitions to loading, issues the operation with the query's
// dependency values, and applies the outcome unless a newer reload superseded
// this one in the meantime. Failures are logged and recorded, never
// propagated: one panel's failure must not affect its siblings.
func (p *PanelController[T]) Reload(ctx context.Context, query PanelQuery) {
	seq := p.begin(query)
	data, err := p.fetch(ctx, query)
	if !p.finish(seq, data, err) {
		p.logger.Debug("discarding superseded panel response",
			zap.String("panel", p.code),
			zap.Uint64("seq", seq))
		return
	}
	if err != nil {
		p.logger.Warn("panel load failed",
			zap.String("panel", p.code),
			zap.String("reason", query.Reason),
			zap.Error(err))
		p.telemetry.Record(ctx, eventPanelFailed, map[string]any{
			"panel":  p.code,
			"reason": query.Reason,
			"error":  err.Error(),
		})
		p.emit(ctx, PhaseFailed, query.Reason)
		return
	}
	p.telemetry.Record(ctx, eventPanelReload, map[string]any{
		"panel":  p.code,
		"reason": query.Reason,
	})
	p.emit(ctx, PhaseReady, query.Reason)
}

// begin claims a new sequence number and resets the phase to loading.
func (p *PanelController[T]) begin(query PanelQuery) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.phase = PhaseLoading
	p.lastRange = query.Range
	return p.seq
}

// finish applies the outcome when seq is still current; a stale response is
// discarded without touching the state.
func (p *PanelController[T]) finish(seq uint64, data T, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		return false
	}
	if err != nil {
		p.phase = PhaseFailed
		p.err = err
		var zero T
		p.data = zero
		return true
	}
	p.phase = PhaseReady
	p.err = nil
	p.data = data
	return true
}

// State snapshots the panel for transports. Failed panels expose no payload;
// the widget renders its empty/placeholder state instead.
func (p *PanelController[T]) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	state := PanelState{
		Code:  p.code,
		Title: p.title,
		Phase: p.phase,
		Range: p.lastRange,
	}
	if p.phase == PhaseReady {
		state.Data = p.data
	}
	if p.err != nil {
		state.Error = errorMessage(p.err)
	}
	return state
}

func (p *PanelController[T]) emit(ctx context.Context, phase PanelPhase, reason string) {
	if err := p.hook.PanelUpdated(ctx, PanelEvent{Panel: p.code, Phase: phase, Reason: reason}); err != nil {
		p.logger.Debug("refresh hook rejected panel event", zap.String("panel", p.code), zap.Error(err))
	}
}

// errorMessage prefers the server-reported message for backend failures.
func errorMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

type noopRefreshHook struct{}

func (noopRefreshHook) PanelUpdated(context.Context, PanelEvent) error { return nil }

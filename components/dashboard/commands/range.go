package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/storelens/storelens/components/dashboard"
)

type rangeService interface {
	SetDateRange(ctx context.Context, rng dashboard.DateRange) error
	ClearDateRange(ctx context.Context) error
}

// SetDateRangeCommand replaces the shared date range for every dependent
// panel in one step.
type SetDateRangeCommand struct {
	shell     rangeService
	telemetry Telemetry
}

// NewSetDateRangeCommand creates a command instance.
func NewSetDateRangeCommand(shell rangeService, telemetry Telemetry) *SetDateRangeCommand {
	return &SetDateRangeCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[dashboard.DateRange] = (*SetDateRangeCommand)(nil)

// Execute applies the range. Invalid bounds are rejected before any panel
// reload happens.
func (c *SetDateRangeCommand) Execute(ctx context.Context, rng dashboard.DateRange) error {
	if c.shell == nil {
		return errors.New("range command requires shell")
	}
	if err := c.shell.SetDateRange(ctx, rng); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventRangeSet, map[string]any{
		"start": rng.Start,
		"end":   rng.End,
	})
	return nil
}

// ClearDateRangeInput is the empty message for ClearDateRangeCommand.
type ClearDateRangeInput struct{}

// ClearDateRangeCommand resets both bounds to the unfiltered view.
type ClearDateRangeCommand struct {
	shell     rangeService
	telemetry Telemetry
}

// NewClearDateRangeCommand creates a command instance.
func NewClearDateRangeCommand(shell rangeService, telemetry Telemetry) *ClearDateRangeCommand {
	return &ClearDateRangeCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ClearDateRangeInput] = (*ClearDateRangeCommand)(nil)

// Execute clears the range.
func (c *ClearDateRangeCommand) Execute(ctx context.Context, _ ClearDateRangeInput) error {
	if c.shell == nil {
		return errors.New("range command requires shell")
	}
	if err := c.shell.ClearDateRange(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventRangeClear, nil)
	return nil
}

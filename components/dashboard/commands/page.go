package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// Page moves accepted by OrdersPageInput.
const (
	MoveNext = "next"
	MovePrev = "prev"
)

// OrdersPageInput selects the target page of the orders table. When Move is
// set it wins over Page.
type OrdersPageInput struct {
	Page int    `json:"page"`
	Move string `json:"move,omitempty"`
}

type pagingService interface {
	SetOrdersPage(ctx context.Context, page int) error
	NextOrdersPage(ctx context.Context) error
	PrevOrdersPage(ctx context.Context) error
}

// OrdersPageCommand moves the orders table without touching any other panel.
type OrdersPageCommand struct {
	shell     pagingService
	telemetry Telemetry
}

// NewOrdersPageCommand creates a command instance.
func NewOrdersPageCommand(shell pagingService, telemetry Telemetry) *OrdersPageCommand {
	return &OrdersPageCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[OrdersPageInput] = (*OrdersPageCommand)(nil)

// Execute applies the page move. Out-of-range targets clamp instead of
// failing.
func (c *OrdersPageCommand) Execute(ctx context.Context, input OrdersPageInput) error {
	if c.shell == nil {
		return errors.New("page command requires shell")
	}
	var err error
	switch input.Move {
	case MoveNext:
		err = c.shell.NextOrdersPage(ctx)
	case MovePrev:
		err = c.shell.PrevOrdersPage(ctx)
	case "":
		err = c.shell.SetOrdersPage(ctx, input.Page)
	default:
		return errors.New("unknown page move: " + input.Move)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventOrdersPage, map[string]any{
		"page": input.Page,
		"move": input.Move,
	})
	return nil
}

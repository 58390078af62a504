package queries

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/storelens/storelens/components/dashboard"
)

// PanelStateInput identifies one hosted panel.
type PanelStateInput struct {
	Code string `json:"code"`
}

type panelService interface {
	Panel(code string) (dashboard.Panel, bool)
}

// PanelStateQuery fetches the state of a single panel.
type PanelStateQuery struct {
	shell panelService
}

// NewPanelStateQuery builds the query.
func NewPanelStateQuery(shell panelService) *PanelStateQuery {
	return &PanelStateQuery{shell: shell}
}

var _ gocommand.Querier[PanelStateInput, dashboard.PanelState] = (*PanelStateQuery)(nil)

// Query resolves the panel snapshot by code.
func (q *PanelStateQuery) Query(_ context.Context, input PanelStateInput) (dashboard.PanelState, error) {
	panel, ok := q.shell.Panel(input.Code)
	if !ok {
		return dashboard.PanelState{}, fmt.Errorf("%w: %s", dashboard.ErrUnknownPanel, input.Code)
	}
	return panel.State(), nil
}

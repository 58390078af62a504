package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/storelens/storelens/components/dashboard"
)

// StateInput is the empty message for StateQuery.
type StateInput struct{}

type snapshotService interface {
	Snapshot() dashboard.ShellState
}

// StateQuery executes a read-only snapshot of the whole dashboard.
type StateQuery struct {
	shell snapshotService
}

// NewStateQuery builds the query.
func NewStateQuery(shell snapshotService) *StateQuery {
	return &StateQuery{shell: shell}
}

var _ gocommand.Querier[StateInput, dashboard.ShellState] = (*StateQuery)(nil)

// Query snapshots the shell and every hosted panel.
func (q *StateQuery) Query(_ context.Context, _ StateInput) (dashboard.ShellState, error) {
	return q.shell.Snapshot(), nil
}

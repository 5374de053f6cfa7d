package simulation

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
)

// GoToPreviousPeriod reopens the previous period exactly as it stood when it
// was committed. Everything recorded since is discarded. It also reopens the
// final period of a finished game.
func (e *Engine) GoToPreviousPeriod(st GameState) (GameState, *Rejection, error) {
	if len(st.periods) < 2 {
		return st, reject(RejectNoPreviousPeriod, "", "already at the first period"), nil
	}
	idx := len(st.periods) - 2
	rec := st.periods[idx]
	if rec.closed == nil || idx >= len(st.YearRangeInitialStats) {
		return st, nil, fmt.Errorf("%w: period %d was never committed", ErrCorruptHistory, idx+1)
	}

	next := st.Clone()
	lists := rec.closed.clone()
	next.periods = next.periods[:idx+1]
	next.periods[idx].closed = nil
	next.YearRangeInitialStats = next.YearRangeInitialStats[:idx+1]

	next.Implemented = lists.Implemented
	next.Renewables = lists.Renewables
	next.Completed = lists.Completed
	next.Financed = lists.Financed
	next.CostSavings = lists.CostSavings
	next.PendingComparison = lists.PendingComparison
	next.Notifications = nil
	next.Phase = PhaseSelecting
	next.LastOutcome = domain.OutcomeContinue

	stats, capital, err := e.replay(next.YearRangeInitialStats[idx], st.Baseline, rec.capitalAtOpening, next.Implemented)
	if err != nil {
		return st, nil, err
	}
	next.Stats = stats
	next.CapitalFunding = capital

	e.Logger.Infof("reopened period %d", idx+1)
	return next, nil, nil
}

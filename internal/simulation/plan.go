package simulation

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
)

// PlanResult is the outcome of running a scripted game
type PlanResult struct {
	State      GameState
	Outcome    domain.Outcome
	Rejections []Rejection // intents the engine refused, in the order they were issued
}

// RunPlan plays plan from a fresh game. Each period's deselections run first,
// then selections, then either a step back or an advance. Selecting a project
// that is already selected, or deselecting one that is not, is a no-op.
// With finish set, periods left once the plan runs out are advanced with no
// further intents until the game ends.
func (e *Engine) RunPlan(plan domain.PlayPlan, finish bool) (PlanResult, error) {
	st, err := e.NewGame()
	if err != nil {
		return PlanResult{}, err
	}
	res := PlanResult{Outcome: domain.OutcomeContinue}

	for i, period := range plan.Periods {
		if st.IsOver() {
			e.Logger.Infof("plan has %d unplayed period(s) after the game ended", len(plan.Periods)-i)
			break
		}

		for _, id := range period.Deselect {
			if !st.IsSelected(id) {
				continue
			}
			if st, err = e.applyIntent(st, id, "", &res); err != nil {
				return res, err
			}
		}
		for _, sel := range period.Select {
			if st.IsSelected(sel.Project) {
				continue
			}
			if st, err = e.applyIntent(st, sel.Project, sel.Financing, &res); err != nil {
				return res, err
			}
		}

		if period.Back {
			next, rej, err := e.GoToPreviousPeriod(st)
			if err != nil {
				return res, fmt.Errorf("plan period %d: %w", i+1, err)
			}
			if rej != nil {
				res.Rejections = append(res.Rejections, *rej)
			}
			st = next
			res.Outcome = st.LastOutcome
			continue
		}

		next, outcome, err := e.AdvanceToNextPeriod(st)
		if err != nil {
			return res, fmt.Errorf("plan period %d: %w", i+1, err)
		}
		st, res.Outcome = next, outcome
	}

	for finish && !st.IsOver() {
		next, outcome, err := e.AdvanceToNextPeriod(st)
		if err != nil {
			return res, err
		}
		st, res.Outcome = next, outcome
	}

	res.State = st
	return res, nil
}

func (e *Engine) applyIntent(st GameState, id domain.ProjectID, f domain.FinancingType, res *PlanResult) (GameState, error) {
	next, rej, err := e.ToggleProjectSelection(st, id, f)
	if err != nil {
		return st, fmt.Errorf("period %s, project %s: %w", e.PeriodLabel(st.CurrentYear()), id, err)
	}
	if rej != nil {
		e.Logger.Debugf("rejected %s", rej)
		res.Rejections = append(res.Rejections, *rej)
	}
	return next, nil
}

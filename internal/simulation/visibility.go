package simulation

import (
	"github.com/rpgo/carbonsim/internal/domain"
)

// IsProjectVisible reports whether a project may be shown and selected in
// the current period. An active project is always visible; a completed one
// never is.
func (e *Engine) IsProjectVisible(st GameState, p *ProjectControl) bool {
	if st.IsSelected(p.ID) {
		return true
	}
	if st.IsCompleted(p.ID) {
		return false
	}
	return p.Visibility.Allows(func(id domain.ProjectID) bool {
		return st.IsCompleted(id) || st.IsSelected(id)
	})
}

// ListAvailableProjects describes every catalog project for the current
// period in catalog order, including invisible ones flagged as such.
func (e *Engine) ListAvailableProjects(st GameState) ([]domain.ProjectDescriptor, error) {
	interval := e.interval()
	atLimit := e.newProjectsThisPeriod(st) >= e.Settings.PeriodProjectLimit()
	out := make([]domain.ProjectDescriptor, 0, e.Catalog.Len())

	for _, p := range e.Catalog.Projects() {
		selected := st.IsSelected(p.ID)
		visible := e.IsProjectVisible(st, p)

		// an active project's effects are already in the current stats
		preview := st.Stats
		if !selected {
			var err error
			preview, err = SetCarbonEmissionsAndSavings(p.ApplyEffects(st.Stats, p.DisplayAppliers()), st.Baseline)
			if err != nil {
				return nil, err
			}
		}

		d := domain.ProjectDescriptor{
			ID:                p.ID,
			Title:             p.Title,
			Cost:              p.PeriodCost(interval),
			Rebate:            p.PeriodRebate(interval),
			Effects:           p.DisplayAppliers(),
			Preview:           preview,
			Visible:           visible,
			Selected:          selected,
			Renewable:         p.IsRenewable,
			FinancingOptions:  e.AvailableFinancing(st, p),
			CapitalFundsReady: containsFinancing(e.AvailableFinancing(st, p), domain.FinancingCapitalFunds),
		}
		switch {
		case st.IsOver():
			d.Disabled, d.DisabledReason = true, "game over"
		case selected:
		case !visible:
			d.Disabled, d.DisabledReason = true, "not available"
		case atLimit && e.startsNewProject(st, p):
			d.Disabled, d.DisabledReason = true, "project limit reached"
		case !e.affordable(st, p, d.FinancingOptions):
			d.Disabled, d.DisabledReason = true, "insufficient budget"
		}
		out = append(out, d)
	}
	return out, nil
}

// affordable reports whether any offered financing fits the current finances
func (e *Engine) affordable(st GameState, p *ProjectControl, options []domain.FinancingType) bool {
	for _, f := range options {
		charge, err := e.chargeFor(p, f, e.interval())
		if err == nil && !charge.Cost.GreaterThan(st.Stats.FinancesAvailable) {
			return true
		}
	}
	return false
}

package simulation

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
)

// RejectionReason is the machine-readable cause of a refused intent
type RejectionReason string

const (
	RejectOverProjectLimit     RejectionReason = "OVER_PROJECT_LIMIT"
	RejectInsufficientBudget   RejectionReason = "INSUFFICIENT_BUDGET"
	RejectFinancingUnavailable RejectionReason = "FINANCING_UNAVAILABLE"
	RejectProjectUnavailable   RejectionReason = "PROJECT_UNAVAILABLE"
	RejectNoPreviousPeriod     RejectionReason = "NO_PREVIOUS_PERIOD"
)

// Rejection explains why a player intent was refused. The state returned
// alongside a rejection is the input state, unchanged.
type Rejection struct {
	Reason    RejectionReason  `json:"reason"`
	ProjectID domain.ProjectID `json:"project_id,omitempty"`
	Message   string           `json:"message"`
}

func (r *Rejection) String() string {
	if r.ProjectID == "" {
		return fmt.Sprintf("%s: %s", r.Reason, r.Message)
	}
	return fmt.Sprintf("%s: %s: %s", r.Reason, r.ProjectID, r.Message)
}

func reject(reason RejectionReason, id domain.ProjectID, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, ProjectID: id, Message: fmt.Sprintf(format, args...)}
}

// unwindTolerance is the largest drift tolerated between an unwound period and its opening
var unwindTolerance = decimal.New(1, -5)

// ToggleProjectSelection selects the project when it is not active and
// deselects it (with its related projects) when it is. financing is ignored
// on deselection; the empty value means budget.
func (e *Engine) ToggleProjectSelection(st GameState, id domain.ProjectID, financing domain.FinancingType) (GameState, *Rejection, error) {
	if st.IsOver() {
		return st, nil, ErrGameOver
	}
	p, err := e.Catalog.Lookup(id)
	if err != nil {
		return st, nil, err
	}
	if st.IsSelected(id) {
		next, err := e.deselect(st, p)
		return next, nil, err
	}
	if financing == "" {
		financing = domain.FinancingBudget
	}
	return e.selectProject(st, p, financing)
}

func (e *Engine) selectProject(st GameState, p *ProjectControl, financing domain.FinancingType) (GameState, *Rejection, error) {
	year := st.CurrentYear()
	if !e.IsProjectVisible(st, p) {
		return st, reject(RejectProjectUnavailable, p.ID, "project is not available this period"), nil
	}
	if !containsFinancing(e.AvailableFinancing(st, p), financing) {
		return st, reject(RejectFinancingUnavailable, p.ID, "%s financing is not available for this project", financing), nil
	}
	if e.startsNewProject(st, p) && e.newProjectsThisPeriod(st) >= e.Settings.PeriodProjectLimit() {
		return st, reject(RejectOverProjectLimit, p.ID, "at most %d new projects may start per period",
			e.Settings.PeriodProjectLimit()), nil
	}
	charge, err := e.chargeFor(p, financing, e.interval())
	if err != nil {
		return st, nil, err
	}
	if charge.Cost.GreaterThan(st.Stats.FinancesAvailable) {
		return st, reject(RejectInsufficientBudget, p.ID, "costs %s but only %s is available",
			charge.Cost.StringFixed(2), st.Stats.FinancesAvailable.StringFixed(2)), nil
	}

	next := st.Clone()
	next.Implemented = append(next.Implemented, domain.ImplementedProject{
		ProjectID: p.ID,
		Financing: financing,
		Renewable: p.IsRenewable,
	})
	if p.IsRenewable {
		if i, ok := next.renewable(p.ID); ok {
			if !next.Renewables[i].ActiveIn(year) {
				next.Renewables[i].GameYearsImplemented = append(next.Renewables[i].GameYearsImplemented, year)
			}
		} else {
			next.Renewables = append(next.Renewables, domain.RenewableProject{
				ProjectID:            p.ID,
				FirstYear:            year,
				Financing:            financing,
				GameYearsImplemented: []int{year},
			})
		}
	}
	next.PendingComparison = removeID(next.PendingComparison, p.ID)

	stats, capital, err := e.replay(st.Stats, st.Baseline, st.CapitalFunding,
		next.Implemented[len(next.Implemented)-1:])
	if err != nil {
		return st, nil, err
	}
	next.Stats = stats
	next.CapitalFunding = capital

	e.Logger.Debugf("period %d: selected %s (%s), finances available %s",
		year, p.ID, financing, stats.FinancesAvailable.StringFixed(2))
	return next, nil, nil
}

// deselect removes p and its related projects. The remaining selections are
// replayed from the period opening so the result does not depend on rounding
// history.
func (e *Engine) deselect(st GameState, p *ProjectControl) (GameState, error) {
	year := st.CurrentYear()
	opening, err := st.Opening()
	if err != nil {
		return st, err
	}

	removed := map[domain.ProjectID]bool{p.ID: true}
	for _, related := range p.RelatedProjects {
		if st.IsSelected(related) {
			removed[related] = true
		}
	}

	if err := e.checkUnwind(st, opening); err != nil {
		return st, err
	}

	next := st.Clone()
	kept := next.Implemented[:0]
	for _, sel := range next.Implemented {
		if !removed[sel.ProjectID] {
			kept = append(kept, sel)
		}
	}
	next.Implemented = nilIfEmpty(kept)

	renewables := next.Renewables[:0]
	for _, r := range next.Renewables {
		if removed[r.ProjectID] {
			if r.FirstYear == year {
				continue
			}
			r.GameYearsImplemented = removeYear(r.GameYearsImplemented, year)
		}
		renewables = append(renewables, r)
	}
	next.Renewables = nilIfEmpty(renewables)

	if err := e.rederive(&next); err != nil {
		return st, err
	}
	for id := range removed {
		e.Logger.Debugf("period %d: deselected %s", year, id)
	}
	return next, nil
}

// checkUnwind reverses every selection of the period, newest first, and
// compares the result with the opening snapshot.
func (e *Engine) checkUnwind(st GameState, opening domain.TrackedStats) error {
	s := st.Stats
	for i := len(st.Implemented) - 1; i >= 0; i-- {
		sel := st.Implemented[i]
		q, err := e.Catalog.Lookup(sel.ProjectID)
		if err != nil {
			return err
		}
		charge, err := e.chargeFor(q, sel.Financing, s.Interval())
		if err != nil {
			return err
		}
		s = RemoveCharge(s, charge)
		s = q.UnapplyEffects(s, q.StatsActualAppliers)
	}
	if drift := s.MaxStatDrift(opening); drift.GreaterThan(unwindTolerance) {
		e.Logger.Warnf("period %d: unwinding selections drifted %s from the opening stats", st.CurrentYear(), drift.String())
	}
	return nil
}

// startsNewProject reports whether selecting p counts against the period cap.
// Re-selecting a renewable started in an earlier period is a renewal.
func (e *Engine) startsNewProject(st GameState, p *ProjectControl) bool {
	if !p.IsRenewable {
		return true
	}
	i, ok := st.renewable(p.ID)
	return !ok || st.Renewables[i].FirstYear == st.CurrentYear()
}

// newProjectsThisPeriod counts the selections that count against the period cap
func (e *Engine) newProjectsThisPeriod(st GameState) int {
	n := 0
	for _, sel := range st.Implemented {
		if !sel.Renewable {
			n++
			continue
		}
		if i, ok := st.renewable(sel.ProjectID); ok && st.Renewables[i].FirstYear == st.CurrentYear() {
			n++
		}
	}
	return n
}

// AddToComparison queues a project for side-by-side comparison
func (e *Engine) AddToComparison(st GameState, id domain.ProjectID) (GameState, error) {
	if _, err := e.Catalog.Lookup(id); err != nil {
		return st, err
	}
	for _, x := range st.PendingComparison {
		if x == id {
			return st, nil
		}
	}
	next := st.Clone()
	next.PendingComparison = append(next.PendingComparison, id)
	return next, nil
}

// RemoveFromComparison drops a project from the comparison queue
func (e *Engine) RemoveFromComparison(st GameState, id domain.ProjectID) GameState {
	next := st.Clone()
	next.PendingComparison = removeID(next.PendingComparison, id)
	return next
}

func removeID(ids []domain.ProjectID, id domain.ProjectID) []domain.ProjectID {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}

func removeYear(years []int, year int) []int {
	out := years[:0]
	for _, y := range years {
		if y != year {
			out = append(out, y)
		}
	}
	return out
}

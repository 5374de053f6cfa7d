package simulation

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Phase is the lifecycle stage of a game
type Phase string

const (
	PhaseSelecting Phase = "selecting"
	PhaseWon       Phase = "won"
	PhaseLost      Phase = "lost"
)

// GameState is the whole game as a value. Engine operations never modify
// the state they are given; they return a new one.
type GameState struct {
	// Baseline is the game-start snapshot every savings figure is measured against
	Baseline domain.TrackedStats
	// YearRangeInitialStats holds the opening stats of every period reached so far
	YearRangeInitialStats []domain.TrackedStats
	// Stats is the working snapshot for the current period
	Stats domain.TrackedStats

	Implemented       []domain.ImplementedProject
	Renewables        []domain.RenewableProject
	Completed         []domain.CompletedProject
	Financed          []domain.FinancedProject
	CapitalFunding    domain.CapitalFundingState
	CostSavings       []decimal.Decimal // realized energy-cost savings per closed period
	PendingComparison []domain.ProjectID
	Notifications     []Notification // raised by the last transition

	Phase       Phase
	LastOutcome domain.Outcome

	periods []periodRecord
}

// periodRecord is the bookkeeping needed to reopen a period
type periodRecord struct {
	capitalAtOpening domain.CapitalFundingState
	closed           *periodLists // set when the period is committed
}

// periodLists is the set of project lists as they stood when a period closed
type periodLists struct {
	Implemented       []domain.ImplementedProject
	Renewables        []domain.RenewableProject
	Completed         []domain.CompletedProject
	Financed          []domain.FinancedProject
	CostSavings       []decimal.Decimal
	PendingComparison []domain.ProjectID
}

// CurrentYear returns the 1-based period number being played
func (st GameState) CurrentYear() int {
	return st.Stats.CurrentGameYear
}

// PeriodsPlayed returns how many periods have been committed
func (st GameState) PeriodsPlayed() int {
	n := 0
	for _, r := range st.periods {
		if r.closed != nil {
			n++
		}
	}
	return n
}

// IsOver reports whether the game was won or lost
func (st GameState) IsOver() bool {
	return st.Phase == PhaseWon || st.Phase == PhaseLost
}

// Opening returns the opening stats of the current period
func (st GameState) Opening() (domain.TrackedStats, error) {
	y := st.CurrentYear()
	if y < 1 || y > len(st.YearRangeInitialStats) {
		return domain.TrackedStats{}, fmt.Errorf("%w: no opening stats for period %d", ErrCorruptHistory, y)
	}
	return st.YearRangeInitialStats[y-1], nil
}

// IsSelected reports whether the project is active in the current period
func (st GameState) IsSelected(id domain.ProjectID) bool {
	for _, p := range st.Implemented {
		if p.ProjectID == id {
			return true
		}
	}
	return false
}

// IsCompleted reports whether the project was finished in an earlier period
func (st GameState) IsCompleted(id domain.ProjectID) bool {
	for _, p := range st.Completed {
		if p.ProjectID == id {
			return true
		}
	}
	return false
}

func (st GameState) usesFinancing(id domain.ProjectID, f domain.FinancingType) bool {
	for _, p := range st.Implemented {
		if p.ProjectID == id && p.Financing == f {
			return true
		}
	}
	return false
}

func (st GameState) renewable(id domain.ProjectID) (int, bool) {
	for i, r := range st.Renewables {
		if r.ProjectID == id {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a deep copy that shares no slices with st
func (st GameState) Clone() GameState {
	out := st
	out.YearRangeInitialStats = cloneSlice(st.YearRangeInitialStats)
	out.Implemented = cloneSlice(st.Implemented)
	out.Renewables = cloneRenewables(st.Renewables)
	out.Completed = cloneSlice(st.Completed)
	out.Financed = cloneSlice(st.Financed)
	out.CostSavings = cloneSlice(st.CostSavings)
	out.PendingComparison = cloneSlice(st.PendingComparison)
	out.Notifications = cloneSlice(st.Notifications)
	out.periods = make([]periodRecord, len(st.periods))
	for i, r := range st.periods {
		out.periods[i] = periodRecord{capitalAtOpening: r.capitalAtOpening}
		if r.closed != nil {
			lists := r.closed.clone()
			out.periods[i].closed = &lists
		}
	}
	return out
}

func (st GameState) snapshotLists() periodLists {
	return periodLists{
		Implemented:       cloneSlice(st.Implemented),
		Renewables:        cloneRenewables(st.Renewables),
		Completed:         cloneSlice(st.Completed),
		Financed:          cloneSlice(st.Financed),
		CostSavings:       cloneSlice(st.CostSavings),
		PendingComparison: cloneSlice(st.PendingComparison),
	}
}

func (l periodLists) clone() periodLists {
	return periodLists{
		Implemented:       cloneSlice(l.Implemented),
		Renewables:        cloneRenewables(l.Renewables),
		Completed:         cloneSlice(l.Completed),
		Financed:          cloneSlice(l.Financed),
		CostSavings:       cloneSlice(l.CostSavings),
		PendingComparison: cloneSlice(l.PendingComparison),
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneRenewables(in []domain.RenewableProject) []domain.RenewableProject {
	out := cloneSlice(in)
	for i := range out {
		out[i].GameYearsImplemented = cloneSlice(in[i].GameYearsImplemented)
	}
	return out
}

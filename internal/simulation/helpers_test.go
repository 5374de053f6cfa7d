package simulation

import (
	"fmt"
	"testing"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testSettings() domain.GameSettings {
	return domain.GameSettings{
		Name:             "test",
		StartYear:        2024,
		GameYearInterval: 1,
		TotalPeriods:     10,
		AnnualBudget:     decimal.NewFromInt(150_000),
		Baseline:         DefaultBaseline(),
		Financing: domain.FinancingSettings{
			AllowLoan:         true,
			AllowGreenBond:    true,
			AllowEaaS:         true,
			AllowCapitalFunds: true,
		},
	}
}

func newTestEngine(t *testing.T, settings domain.GameSettings, projects ...ProjectControl) *Engine {
	t.Helper()
	if len(projects) == 0 {
		projects = DefaultProjects()
	}
	catalog, err := NewCatalog(projects...)
	require.NoError(t, err)
	e, err := NewEngine(catalog, settings)
	require.NoError(t, err)
	return e
}

func newTestGame(t *testing.T, e *Engine) GameState {
	t.Helper()
	st, err := e.NewGame()
	require.NoError(t, err)
	return st
}

// mustToggle toggles a project and fails the test on an error or rejection
func mustToggle(t *testing.T, e *Engine, st GameState, id domain.ProjectID, f domain.FinancingType) GameState {
	t.Helper()
	next, rej, err := e.ToggleProjectSelection(st, id, f)
	require.NoError(t, err)
	require.Nil(t, rej, "unexpected rejection: %v", rej)
	return next
}

func mustAdvance(t *testing.T, e *Engine, st GameState) (GameState, domain.Outcome) {
	t.Helper()
	next, outcome, err := e.AdvanceToNextPeriod(st)
	require.NoError(t, err)
	return next, outcome
}

// withCapitalReward grants round A as if it had been earned at the start of the current period
func withCapitalReward(st GameState) GameState {
	next := st.Clone()
	next.CapitalFunding.RoundA.Earned = true
	next.CapitalFunding.RoundA.EarnedYear = next.CurrentYear()
	next.periods[len(next.periods)-1].capitalAtOpening = next.CapitalFunding
	return next
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !got.Equal(dec(want)) {
		msg := ""
		if len(msgAndArgs) > 0 {
			if format, ok := msgAndArgs[0].(string); ok {
				msg = fmt.Sprintf(format, msgAndArgs[1:]...) + ": "
			} else {
				msg = fmt.Sprint(msgAndArgs...) + ": "
			}
		}
		t.Errorf("%sexpected %s, got %s", msg, want, got.String())
	}
}

// recordingLogger captures log lines by level
type recordingLogger struct {
	debug, info, warn, errors []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...any) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

package simulation

import (
	"testing"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoToPreviousPeriod_AtFirstPeriod(t *testing.T) {
	e := newTestEngine(t, testSettings())
	st := newTestGame(t, e)

	next, rej, err := e.GoToPreviousPeriod(st)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectNoPreviousPeriod, rej.Reason)
	assert.Equal(t, 1, next.CurrentYear())
}

func TestGoToPreviousPeriod_RestoresCommittedPeriod(t *testing.T) {
	e := newTestEngine(t, testSettings())
	p1 := mustToggle(t, e, newTestGame(t, e), "led_lighting", "")
	p1 = mustToggle(t, e, p1, "wind_ppa", "")
	p1, err := e.AddToComparison(p1, "heat_pump")
	require.NoError(t, err)

	p2, _ := mustAdvance(t, e, p1)
	p2 = mustToggle(t, e, p2, "smart_thermostats", "")

	back, rej, err := e.GoToPreviousPeriod(p2)
	require.NoError(t, err)
	require.Nil(t, rej)

	assert.Equal(t, 1, back.CurrentYear())
	assert.True(t, back.Stats.Equal(p1.Stats), "stats are re-derived from the period opening")
	assert.Equal(t, p1.Implemented, back.Implemented)
	assert.Equal(t, p1.Renewables, back.Renewables)
	assert.Equal(t, p1.PendingComparison, back.PendingComparison)
	assert.Empty(t, back.Completed)
	assert.Empty(t, back.CostSavings)
	assert.Len(t, back.YearRangeInitialStats, 1)
	assert.Equal(t, 0, back.PeriodsPlayed())

	// replaying forward gives the same period 2 again
	again, _ := mustAdvance(t, e, back)
	assert.True(t, again.Stats.Equal(mustRederived(t, e, p2, "smart_thermostats")))
}

// mustRederived returns st's stats with one selection toggled back off
func mustRederived(t *testing.T, e *Engine, st GameState, id domain.ProjectID) domain.TrackedStats {
	t.Helper()
	return mustToggle(t, e, st, id, "").Stats
}

func TestGoToPreviousPeriod_RevertsCapitalFunding(t *testing.T) {
	offsets := ProjectControl{
		ID:                  "offsets",
		Cost:                decimal.NewFromInt(10_000),
		StatsActualAppliers: domain.Appliers{domain.StatAbsoluteCarbonSavings: domain.Absolute(300_000)},
	}
	e := newTestEngine(t, testSettings(), offsets)
	st := mustToggle(t, e, newTestGame(t, e), "offsets", "")

	next, _ := mustAdvance(t, e, st)
	require.True(t, next.CapitalFunding.RoundA.Earned)

	back, rej, err := e.GoToPreviousPeriod(next)
	require.NoError(t, err)
	require.Nil(t, rej)
	assert.False(t, back.CapitalFunding.RoundA.Earned)
	assert.Equal(t, st.CapitalFunding, back.CapitalFunding)
}

func TestGoToPreviousPeriod_ReopensFinishedGame(t *testing.T) {
	s := testSettings()
	s.TotalPeriods = 1
	e := newTestEngine(t, s)

	over, outcome := mustAdvance(t, e, newTestGame(t, e))
	require.Equal(t, domain.OutcomeLose, outcome)

	back, rej, err := e.GoToPreviousPeriod(over)
	require.NoError(t, err)
	require.Nil(t, rej)
	assert.Equal(t, PhaseSelecting, back.Phase)
	assert.Equal(t, domain.OutcomeContinue, back.LastOutcome)
	_ = mustToggle(t, e, back, "led_lighting", "")
}

func TestGetEndOfGameSummary(t *testing.T) {
	e := newTestEngine(t, testSettings())
	st := mustToggle(t, e, newTestGame(t, e), "led_lighting", "")
	st = mustToggle(t, e, st, "vfd_motors", domain.FinancingLoan)
	st, _ = mustAdvance(t, e, st)
	st = mustToggle(t, e, st, "smart_thermostats", "")

	sum, err := e.GetEndOfGameSummary(st)
	require.NoError(t, err)
	require.Len(t, sum.Periods, 2)

	p1 := sum.Periods[0]
	assert.Equal(t, "2024", p1.Label)
	assertDecimal(t, "150000", p1.Budget)
	assertDecimal(t, "54243.78", p1.ImplementationSpend)
	assertDecimal(t, "5000", p1.Rebates)
	assertDecimal(t, "0", p1.HiddenSpend)
	assert.Equal(t, []domain.ProjectID{"led_lighting", "vfd_motors"}, p1.Projects)

	p2 := sum.Periods[1]
	assert.Equal(t, "2025", p2.Label)
	assertDecimal(t, "14243.78", p2.HiddenSpend)
	assertDecimal(t, "25000", p2.ImplementationSpend)
	assertDecimal(t, "5000", sum.TotalRebates)

	// 40000 + 14243.78 in period 1, then 14243.78 + 25000
	assertDecimal(t, "93487.56", sum.TotalSpending)
	// three loan installments left
	assertDecimal(t, "42731.34", sum.ProjectedFutureSpending)
	assert.True(t, sum.CarbonSavingsPercent.Equal(st.Stats.CarbonSavingsPercent))
	assert.True(t, sum.CostPerCarbonSavingsKg.IsPositive())
}

func TestBuildReport_FinishedGame(t *testing.T) {
	s := testSettings()
	s.TotalPeriods = 2
	e := newTestEngine(t, s)

	st := mustToggle(t, e, newTestGame(t, e), "vfd_motors", domain.FinancingLoan)
	st, _ = mustAdvance(t, e, st)
	st, outcome := mustAdvance(t, e, st)
	require.Equal(t, domain.OutcomeLose, outcome)

	report, err := e.BuildReport("demo", st)
	require.NoError(t, err)
	assert.Equal(t, "demo", report.Name)
	assert.Equal(t, domain.OutcomeLose, report.Outcome)
	assert.Equal(t, 2, report.FinalYear)
	require.Len(t, report.Summary.Periods, 2)
	require.Len(t, report.Completed, 1)

	// the unplayed period's installment is still owed
	assertDecimal(t, "28487.56", report.Summary.TotalSpending)
	assertDecimal(t, "42731.34", report.Summary.ProjectedFutureSpending)
}

func TestListAvailableProjects(t *testing.T) {
	e := newTestEngine(t, testSettings())
	st := mustToggle(t, e, newTestGame(t, e), "led_lighting", "")

	list, err := e.ListAvailableProjects(st)
	require.NoError(t, err)
	require.Len(t, list, e.Catalog.Len())

	byID := map[domain.ProjectID]domain.ProjectDescriptor{}
	for _, d := range list {
		byID[d.ID] = d
	}

	led := byID["led_lighting"]
	assert.True(t, led.Selected)
	assert.False(t, led.Disabled)
	assert.True(t, led.Preview.Equal(st.Stats), "a selected project previews the current stats")

	delamping := byID["delamping"]
	assert.False(t, delamping.Visible)
	assert.True(t, delamping.Disabled)
	assert.Equal(t, "not available", delamping.DisabledReason)

	assert.False(t, byID["steam_trap_maintenance"].Visible)

	solar := byID["solar_rooftop"]
	assert.True(t, solar.Visible)
	assert.False(t, solar.Disabled, "a loan makes it affordable")
	assert.Contains(t, solar.FinancingOptions, domain.FinancingLoan)
	assert.False(t, solar.CapitalFundsReady)

	thermostats := byID["smart_thermostats"]
	assertDecimal(t, "3800", thermostats.Preview.NaturalGasMMBTU)
	assertDecimal(t, "3606400", thermostats.Preview.ElectricityUseKWh)

	heat := byID["heat_pump"]
	_, shown := heat.Effects[domain.StatElectricityUseKWh]
	assert.False(t, shown, "info appliers hide the electricity penalty")

	ppa := byID["wind_ppa"]
	assertDecimal(t, "45000", ppa.Cost)
	assert.True(t, ppa.Renewable)
	assert.Equal(t, []domain.FinancingType{domain.FinancingBudget}, ppa.FinancingOptions)
}

func TestListAvailableProjects_DisabledReasons(t *testing.T) {
	s := testSettings()
	s.AnnualBudget = decimal.NewFromInt(30_000)
	s.ProjectLimit = 2
	e := newTestEngine(t, s)
	st := newTestGame(t, e)

	list, err := e.ListAvailableProjects(st)
	require.NoError(t, err)
	for _, d := range list {
		if d.ID == "led_lighting" {
			assert.Equal(t, "insufficient budget", d.DisabledReason)
		}
	}

	st = mustToggle(t, e, st, "delamping", "")
	st = mustToggle(t, e, st, "boiler_tuneup", "")
	list, err = e.ListAvailableProjects(st)
	require.NoError(t, err)
	for _, d := range list {
		if d.ID == "compressed_air_leaks" {
			assert.Equal(t, "project limit reached", d.DisabledReason)
		}
	}
}

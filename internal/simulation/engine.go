package simulation

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/rpgo/carbonsim/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Engine runs games over a fixed catalog and settings
type Engine struct {
	Catalog   *Catalog
	Settings  domain.GameSettings
	Financing map[domain.FinancingType]FinancingOption
	Logger    Logger
}

// NewEngine creates an engine; unset settings take their defaults
func NewEngine(catalog *Catalog, settings domain.GameSettings) (*Engine, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	settings.ApplyDefaults()
	if settings.Baseline.NaturalGasEmissionsPerUnit.IsZero() {
		settings.Baseline.NaturalGasEmissionsPerUnit = NaturalGasEmissionsFactor
	}
	if settings.Baseline.HydrogenEmissionsPerUnit.IsZero() {
		settings.Baseline.HydrogenEmissionsPerUnit = HydrogenEmissionsFactor
	}
	return &Engine{
		Catalog:   catalog,
		Settings:  settings,
		Financing: NewFinancingOptions(settings.Financing),
		Logger:    NopLogger{},
	}, nil
}

// SetLogger sets a logger for the engine. Passing nil resets to a no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) interval() int {
	if e.Settings.GameYearInterval < 1 {
		return 1
	}
	return e.Settings.GameYearInterval
}

// NewGame returns the state at the start of period 1
func (e *Engine) NewGame() (GameState, error) {
	interval := decimal.NewFromInt(int64(e.interval()))
	b := e.Settings.Baseline
	budget := e.Settings.PeriodBudget()

	opening := domain.TrackedStats{
		NaturalGasMMBTU:             b.NaturalGasMMBTU.Mul(interval),
		ElectricityUseKWh:           b.ElectricityUseKWh.Mul(interval),
		HydrogenMMBTU:               b.HydrogenMMBTU.Mul(interval),
		NaturalGasCostPerUnit:       b.NaturalGasCostPerUnit,
		ElectricityCostPerUnit:      b.ElectricityCostPerUnit,
		HydrogenCostPerUnit:         b.HydrogenCostPerUnit,
		NaturalGasEmissionsPerUnit:  b.NaturalGasEmissionsPerUnit,
		ElectricityEmissionsPerUnit: ElectricityEmissionsFactor(0),
		HydrogenEmissionsPerUnit:    b.HydrogenEmissionsPerUnit,
		YearBudget:                  budget,
		FinancesAvailable:           budget,
		CurrentGameYear:             1,
		GameYearInterval:            e.interval(),
		GameYearDisplayOffset:       0,
	}
	opening.CarbonEmissions = CalculateEmissions(opening)
	baseline := opening

	opening, err := SetCarbonEmissionsAndSavings(opening, baseline)
	if err != nil {
		return GameState{}, fmt.Errorf("failed to start game: %w", err)
	}
	capital := domain.NewCapitalFundingState()

	e.Logger.Infof("new game: %d periods of %d year(s), budget %s, baseline emissions %s kg",
		e.Settings.TotalPeriods, e.interval(), budget.StringFixed(2), baseline.CarbonEmissions.String())

	return GameState{
		Baseline:              baseline,
		YearRangeInitialStats: []domain.TrackedStats{opening},
		Stats:                 opening,
		CapitalFunding:        capital,
		Phase:                 PhaseSelecting,
		LastOutcome:           domain.OutcomeContinue,
		periods:               []periodRecord{{capitalAtOpening: capital}},
	}, nil
}

// replay rebuilds a period's working stats: the opening snapshot with every
// selection applied in insertion order. Capital funding rewards are consumed
// from capital as capital-funded selections are met.
func (e *Engine) replay(opening domain.TrackedStats, baseline domain.TrackedStats, capital domain.CapitalFundingState,
	selections []domain.ImplementedProject) (domain.TrackedStats, domain.CapitalFundingState, error) {
	s := opening
	for _, sel := range selections {
		p, err := e.Catalog.Lookup(sel.ProjectID)
		if err != nil {
			return s, capital, err
		}
		if sel.Financing == domain.FinancingCapitalFunds {
			var ok bool
			capital, ok = ConsumeCapitalFunding(capital, p.ID, opening.CurrentGameYear)
			if !ok {
				return s, capital, fmt.Errorf("%w: %s is capital funded but no reward is available", ErrCorruptHistory, p.ID)
			}
		}
		charge, err := e.chargeFor(p, sel.Financing, opening.Interval())
		if err != nil {
			return s, capital, err
		}
		s = p.ApplyEffects(s, p.StatsActualAppliers)
		s = ApplyCharge(s, charge)
	}
	s, err := SetCarbonEmissionsAndSavings(s, baseline)
	return s, capital, err
}

// rederive recomputes Stats and CapitalFunding for the current period of st
func (e *Engine) rederive(st *GameState) error {
	opening, err := st.Opening()
	if err != nil {
		return err
	}
	rec := st.periods[len(st.periods)-1]
	stats, capital, err := e.replay(opening, st.Baseline, rec.capitalAtOpening, st.Implemented)
	if err != nil {
		return err
	}
	st.Stats = stats
	st.CapitalFunding = capital
	return nil
}

// PeriodLabel returns the calendar label of a period, e.g. "2026" or "2026-2027"
func (e *Engine) PeriodLabel(year int) string {
	return dateutil.PeriodLabel(e.Settings.StartYear, year, e.interval())
}

package simulation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
)

// VisibilityRule gates when a project shows up in the selectable list
type VisibilityRule struct {
	// RequiresAny shows the project only once one of these is completed or active
	RequiresAny []domain.ProjectID `yaml:"requires_any,omitempty" json:"requires_any,omitempty"`
	// HiddenWhenAny hides the project while one of these is completed or active
	HiddenWhenAny []domain.ProjectID `yaml:"hidden_when_any,omitempty" json:"hidden_when_any,omitempty"`
}

// Allows evaluates the rule; has reports whether a project is completed or active
func (v VisibilityRule) Allows(has func(domain.ProjectID) bool) bool {
	if len(v.RequiresAny) > 0 {
		found := false
		for _, id := range v.RequiresAny {
			if has(id) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, id := range v.HiddenWhenAny {
		if has(id) {
			return false
		}
	}
	return true
}

// ProjectControl is the immutable definition of one catalog project
type ProjectControl struct {
	ID          domain.ProjectID `yaml:"id" json:"id"`
	Title       string           `yaml:"title" json:"title"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Cost        decimal.Decimal  `yaml:"cost" json:"cost"`
	Rebate      decimal.Decimal  `yaml:"rebate,omitempty" json:"rebate,omitempty"`

	// StatsInfoAppliers are shown to the player; empty means show the actual ones
	StatsInfoAppliers domain.Appliers `yaml:"info_appliers,omitempty" json:"info_appliers,omitempty"`
	// StatsActualAppliers are applied when the project is selected
	StatsActualAppliers domain.Appliers `yaml:"actual_appliers" json:"actual_appliers"`
	// StatsRecapAppliers are surprise effects applied once the period closes
	StatsRecapAppliers domain.Appliers `yaml:"recap_appliers,omitempty" json:"recap_appliers,omitempty"`

	IsRenewable            bool                   `yaml:"renewable,omitempty" json:"renewable,omitempty"`
	IsPPA                  bool                   `yaml:"ppa,omitempty" json:"ppa,omitempty"` // power purchase agreement
	IsCapitalFundsEligible bool                   `yaml:"capital_funds_eligible,omitempty" json:"capital_funds_eligible,omitempty"`
	FinancingOptions       []domain.FinancingType `yaml:"financing_options,omitempty" json:"financing_options,omitempty"`
	YearsToPayOff          int                    `yaml:"years_to_pay_off,omitempty" json:"years_to_pay_off,omitempty"`
	RelatedProjects        []domain.ProjectID     `yaml:"related_projects,omitempty" json:"related_projects,omitempty"`
	Visibility             VisibilityRule         `yaml:"visibility,omitempty" json:"visibility,omitempty"`
}

// Validate checks the definition in isolation; cross-references are checked by NewCatalog
func (p *ProjectControl) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: project id is required", ErrInvalidProject)
	}
	if p.Cost.IsNegative() {
		return fmt.Errorf("%w: %s: cost cannot be negative", ErrInvalidProject, p.ID)
	}
	if p.Rebate.IsNegative() {
		return fmt.Errorf("%w: %s: rebate cannot be negative", ErrInvalidProject, p.ID)
	}
	if p.YearsToPayOff < 0 {
		return fmt.Errorf("%w: %s: years to pay off cannot be negative", ErrInvalidProject, p.ID)
	}
	for name, as := range map[string]domain.Appliers{
		"info":   p.StatsInfoAppliers,
		"actual": p.StatsActualAppliers,
		"recap":  p.StatsRecapAppliers,
	} {
		if err := as.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %s appliers: %v", ErrInvalidApplier, p.ID, name, err)
		}
	}
	for _, f := range p.FinancingOptions {
		if _, err := domain.ParseFinancingType(string(f)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidProject, p.ID, err)
		}
	}
	return nil
}

// DisplayAppliers returns the effects shown to the player before selection
func (p *ProjectControl) DisplayAppliers() domain.Appliers {
	if len(p.StatsInfoAppliers) > 0 {
		return p.StatsInfoAppliers
	}
	return p.StatsActualAppliers
}

// PeriodCost returns the budget price for one period; renewables are paid per year
func (p *ProjectControl) PeriodCost(interval int) decimal.Decimal {
	if p.IsRenewable {
		return p.Cost.Mul(decimal.NewFromInt(int64(max(interval, 1))))
	}
	return p.Cost
}

// PeriodRebate returns the rebate for one period; renewables earn it per year
func (p *ProjectControl) PeriodRebate(interval int) decimal.Decimal {
	if p.IsRenewable {
		return p.Rebate.Mul(decimal.NewFromInt(int64(max(interval, 1))))
	}
	return p.Rebate
}

// NetCost returns PeriodCost less PeriodRebate
func (p *ProjectControl) NetCost(interval int) decimal.Decimal {
	return p.PeriodCost(interval).Sub(p.PeriodRebate(interval))
}

// ApplyEffects applies appliers to s in canonical stat order. Absolute
// appliers are scaled by the period length.
func (p *ProjectControl) ApplyEffects(s domain.TrackedStats, appliers domain.Appliers) domain.TrackedStats {
	periods := s.Interval()
	for _, k := range domain.AllStatKeys {
		a, ok := appliers[k]
		if !ok {
			continue
		}
		v, _ := s.Get(k)
		s, _ = s.Set(k, a.Apply(v, periods))
	}
	return s
}

// UnapplyEffects reverses ApplyEffects, walking the stats in reverse order
func (p *ProjectControl) UnapplyEffects(s domain.TrackedStats, appliers domain.Appliers) domain.TrackedStats {
	periods := s.Interval()
	for i := len(domain.AllStatKeys) - 1; i >= 0; i-- {
		k := domain.AllStatKeys[i]
		a, ok := appliers[k]
		if !ok {
			continue
		}
		v, _ := s.Get(k)
		s, _ = s.Set(k, a.Unapply(v, periods))
	}
	return s
}

// ApplyStatChanges applies the actual effects and the budget cost
func (p *ProjectControl) ApplyStatChanges(s domain.TrackedStats) domain.TrackedStats {
	s = p.ApplyEffects(s, p.StatsActualAppliers)
	return p.ApplyCost(s)
}

// UnApplyStatChanges reverses ApplyStatChanges
func (p *ProjectControl) UnApplyStatChanges(s domain.TrackedStats) domain.TrackedStats {
	s = p.UnApplyCost(s)
	return p.UnapplyEffects(s, p.StatsActualAppliers)
}

// ApplyCost charges the project's budget price for the period
func (p *ProjectControl) ApplyCost(s domain.TrackedStats) domain.TrackedStats {
	return ApplyCharge(s, p.budgetCharge(s.Interval()))
}

// UnApplyCost refunds ApplyCost
func (p *ProjectControl) UnApplyCost(s domain.TrackedStats) domain.TrackedStats {
	return RemoveCharge(s, p.budgetCharge(s.Interval()))
}

func (p *ProjectControl) budgetCharge(interval int) Charge {
	return Charge{Cost: p.PeriodCost(interval), Rebate: p.PeriodRebate(interval)}
}

// Charge is the money a selection moves in the current period
type Charge struct {
	Cost   decimal.Decimal
	Rebate decimal.Decimal
}

// ApplyCharge spends c.Cost and credits c.Rebate back to the budget
func ApplyCharge(s domain.TrackedStats, c Charge) domain.TrackedStats {
	s.FinancesAvailable = s.FinancesAvailable.Sub(c.Cost).Add(c.Rebate)
	s.ImplementationSpending = s.ImplementationSpending.Add(c.Cost)
	s.GameTotalSpending = s.GameTotalSpending.Add(c.Cost)
	s.YearBudget = s.YearBudget.Add(c.Rebate)
	return s
}

// RemoveCharge is the exact inverse of ApplyCharge
func RemoveCharge(s domain.TrackedStats, c Charge) domain.TrackedStats {
	s.FinancesAvailable = s.FinancesAvailable.Add(c.Cost).Sub(c.Rebate)
	s.ImplementationSpending = s.ImplementationSpending.Sub(c.Cost)
	s.GameTotalSpending = s.GameTotalSpending.Sub(c.Cost)
	s.YearBudget = s.YearBudget.Sub(c.Rebate)
	return s
}

// Catalog is the ordered, read-only set of projects a game draws from
type Catalog struct {
	order    []domain.ProjectID
	projects map[domain.ProjectID]*ProjectControl
}

// NewCatalog validates the projects and their cross-references
func NewCatalog(projects ...ProjectControl) (*Catalog, error) {
	c := &Catalog{projects: make(map[domain.ProjectID]*ProjectControl, len(projects))}
	for i := range projects {
		p := projects[i]
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.projects[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProject, p.ID)
		}
		c.projects[p.ID] = &p
		c.order = append(c.order, p.ID)
	}
	for _, id := range c.order {
		p := c.projects[id]
		refs := append(append(append([]domain.ProjectID{}, p.RelatedProjects...),
			p.Visibility.RequiresAny...), p.Visibility.HiddenWhenAny...)
		for _, ref := range refs {
			if _, ok := c.projects[ref]; !ok {
				return nil, fmt.Errorf("%w: %s references %s", ErrUnknownProject, id, ref)
			}
		}
	}
	return c, nil
}

// Len returns the number of projects
func (c *Catalog) Len() int { return len(c.order) }

// Projects returns the projects in catalog order. Callers must not modify them.
func (c *Catalog) Projects() []*ProjectControl {
	out := make([]*ProjectControl, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.projects[id])
	}
	return out
}

// Lookup returns the project with the given id
func (c *Catalog) Lookup(id domain.ProjectID) (*ProjectControl, error) {
	if p, ok := c.projects[id]; ok {
		return p, nil
	}
	if s := c.Suggest(id); len(s) > 0 {
		return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownProject, id, s[0])
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProject, id)
}

// Suggest returns catalog ids within a small edit distance of id, closest first
func (c *Catalog) Suggest(id domain.ProjectID) []domain.ProjectID {
	type candidate struct {
		id   domain.ProjectID
		dist int
	}
	needle := strings.ToLower(string(id))
	limit := max(2, len(needle)/3)
	var found []candidate
	for _, known := range c.order {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(string(known)))
		if d <= limit {
			found = append(found, candidate{known, d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].dist < found[j].dist })
	out := make([]domain.ProjectID, 0, len(found))
	for _, f := range found {
		out = append(out, f.id)
	}
	return out
}

package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ApplierPrecision is the number of decimal places every applier result is rounded to
const ApplierPrecision int32 = 5

// NumberApplier is a reversible change to one tracked stat: either a
// relative change (x * (1 + m)) or an absolute delta (x + m * periods).
type NumberApplier struct {
	Modifier   decimal.Decimal `yaml:"modifier" json:"modifier"`
	IsAbsolute bool            `yaml:"absolute,omitempty" json:"absolute,omitempty"`
}

// Relative builds a percentage applier; -0.1 reduces a stat by 10%
func Relative(m float64) NumberApplier {
	return NumberApplier{Modifier: decimal.NewFromFloat(m)}
}

// Absolute builds an additive applier; the delta is per real year
func Absolute(m float64) NumberApplier {
	return NumberApplier{Modifier: decimal.NewFromFloat(m), IsAbsolute: true}
}

// Validate rejects relative modifiers that would zero or flip the sign of a stat
func (a NumberApplier) Validate() error {
	if !a.IsAbsolute && a.Modifier.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("relative modifier must be greater than -1, got %s", a.Modifier.String())
	}
	return nil
}

// Apply returns previous with the change applied. periods scales absolute
// appliers only and defaults to 1.
func (a NumberApplier) Apply(previous decimal.Decimal, periods int) decimal.Decimal {
	if a.IsAbsolute {
		return previous.Add(a.delta(periods)).Round(ApplierPrecision)
	}
	return previous.Mul(a.factor()).Round(ApplierPrecision)
}

// Unapply is the inverse of Apply, exact up to the rounding precision
func (a NumberApplier) Unapply(previous decimal.Decimal, periods int) decimal.Decimal {
	if a.IsAbsolute {
		return previous.Sub(a.delta(periods)).Round(ApplierPrecision)
	}
	return previous.Div(a.factor()).Round(ApplierPrecision)
}

// String renders the applier as "+12%" or "-14400"
func (a NumberApplier) String() string {
	if a.IsAbsolute {
		if a.Modifier.IsNegative() {
			return a.Modifier.String()
		}
		return "+" + a.Modifier.String()
	}
	pct := a.Modifier.Mul(decimal.NewFromInt(100))
	if pct.IsNegative() {
		return pct.String() + "%"
	}
	return "+" + pct.String() + "%"
}

func (a NumberApplier) factor() decimal.Decimal {
	return decimal.NewFromInt(1).Add(a.Modifier)
}

func (a NumberApplier) delta(periods int) decimal.Decimal {
	if periods < 1 {
		periods = 1
	}
	return a.Modifier.Mul(decimal.NewFromInt(int64(periods)))
}

// Appliers maps stats to the change a project makes to them
type Appliers map[StatKey]NumberApplier

// Validate checks every key is a known stat and every modifier is usable
func (as Appliers) Validate() error {
	for k, a := range as {
		if _, err := ParseStatKey(string(k)); err != nil {
			return err
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return nil
}

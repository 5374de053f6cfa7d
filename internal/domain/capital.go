package domain

import "github.com/shopspring/decimal"

// CapitalFundingRound is one milestone reward: a free project unlocked when
// carbon savings first reach Threshold.
type CapitalFundingRound struct {
	Name       string          `yaml:"name" json:"name"`
	Threshold  decimal.Decimal `yaml:"threshold" json:"threshold"`
	Earned     bool            `yaml:"earned" json:"earned"`
	EarnedYear int             `yaml:"earned_year,omitempty" json:"earned_year,omitempty"`
	Used       bool            `yaml:"used" json:"used"`
	UsedBy     ProjectID       `yaml:"used_by,omitempty" json:"used_by,omitempty"`
	UsedYear   int             `yaml:"used_year,omitempty" json:"used_year,omitempty"`
	Expired    bool            `yaml:"expired" json:"expired"`
}

// Available reports whether the reward can still pay for a project
func (r CapitalFundingRound) Available() bool {
	return r.Earned && !r.Used && !r.Expired
}

// CapitalFundingState holds both milestone rounds
type CapitalFundingState struct {
	RoundA CapitalFundingRound `yaml:"round_a" json:"round_a"`
	RoundB CapitalFundingRound `yaml:"round_b" json:"round_b"`
}

// NewCapitalFundingState returns the rounds with nothing earned: A at 15%
// savings, B at 30%.
func NewCapitalFundingState() CapitalFundingState {
	return CapitalFundingState{
		RoundA: CapitalFundingRound{Name: "A", Threshold: decimal.NewFromFloat(0.15)},
		RoundB: CapitalFundingRound{Name: "B", Threshold: decimal.NewFromFloat(0.30)},
	}
}

// HasAvailableReward reports whether either round can fund a project
func (s CapitalFundingState) HasAvailableReward() bool {
	return s.RoundA.Available() || s.RoundB.Available()
}

package simulation

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
)

// NotificationKind classifies a message raised during a period transition
type NotificationKind string

const (
	NotifyCapitalFundingEarned  NotificationKind = "capital_funding_earned"
	NotifyCapitalFundingExpired NotificationKind = "capital_funding_expired"
	NotifyRenewableLapsed       NotificationKind = "renewable_lapsed"
)

// Notification is a player-facing event produced by AdvanceToNextPeriod
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Year    int              `json:"year"`
	Message string           `json:"message"`
}

// CheckCapitalFundingMilestones expires stale rewards and grants the rounds
// whose savings threshold has been reached. Round B is only granted once
// round A has been earned; both may be earned by the same check.
// expiryPeriods == 0 disables expiry.
func CheckCapitalFundingMilestones(s domain.CapitalFundingState, savings decimal.Decimal, year, expiryPeriods int) (domain.CapitalFundingState, []Notification) {
	var notes []Notification

	if expiryPeriods > 0 {
		for _, r := range []*domain.CapitalFundingRound{&s.RoundA, &s.RoundB} {
			if r.Available() && year-r.EarnedYear >= expiryPeriods {
				r.Expired = true
				notes = append(notes, Notification{
					Kind:    NotifyCapitalFundingExpired,
					Year:    year,
					Message: fmt.Sprintf("Capital funding round %s expired unused", r.Name),
				})
			}
		}
	}

	earn := func(r *domain.CapitalFundingRound) {
		r.Earned = true
		r.EarnedYear = year
		notes = append(notes, Notification{
			Kind: NotifyCapitalFundingEarned,
			Year: year,
			Message: fmt.Sprintf("Carbon savings reached %s%%: capital funding round %s can pay for one eligible project",
				r.Threshold.Mul(decimal.NewFromInt(100)).String(), r.Name),
		})
	}
	if !s.RoundA.Earned && savings.GreaterThanOrEqual(s.RoundA.Threshold) {
		earn(&s.RoundA)
	}
	if s.RoundA.Earned && !s.RoundB.Earned && savings.GreaterThanOrEqual(s.RoundB.Threshold) {
		earn(&s.RoundB)
	}
	return s, notes
}

// ConsumeCapitalFunding marks the oldest available reward as used by project.
// It reports false when no reward is available.
func ConsumeCapitalFunding(s domain.CapitalFundingState, project domain.ProjectID, year int) (domain.CapitalFundingState, bool) {
	for _, r := range []*domain.CapitalFundingRound{&s.RoundA, &s.RoundB} {
		if r.Available() {
			r.Used = true
			r.UsedBy = project
			r.UsedYear = year
			return s, true
		}
	}
	return s, false
}

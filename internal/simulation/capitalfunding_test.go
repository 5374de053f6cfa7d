package simulation

import (
	"testing"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheckCapitalFundingMilestones(t *testing.T) {
	tests := []struct {
		name     string
		savings  string
		wantA    bool
		wantB    bool
		wantMsgs int
	}{
		{"below both", "0.1", false, false, 0},
		{"exactly round A", "0.15", true, false, 1},
		{"past both at once", "0.31", true, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, notes := CheckCapitalFundingMilestones(domain.NewCapitalFundingState(), dec(tt.savings), 3, 0)
			assert.Equal(t, tt.wantA, got.RoundA.Earned)
			assert.Equal(t, tt.wantB, got.RoundB.Earned)
			assert.Len(t, notes, tt.wantMsgs)
			if tt.wantA {
				assert.Equal(t, 3, got.RoundA.EarnedYear)
			}
		})
	}
}

func TestCheckCapitalFundingMilestones_RoundBNeedsRoundA(t *testing.T) {
	s := domain.NewCapitalFundingState()
	s.RoundA.Threshold = dec("0.4")

	got, _ := CheckCapitalFundingMilestones(s, dec("0.35"), 2, 0)
	assert.False(t, got.RoundA.Earned)
	assert.False(t, got.RoundB.Earned)
}

func TestCheckCapitalFundingMilestones_IsIdempotent(t *testing.T) {
	s, _ := CheckCapitalFundingMilestones(domain.NewCapitalFundingState(), dec("0.2"), 2, 0)
	again, notes := CheckCapitalFundingMilestones(s, dec("0.2"), 3, 0)
	assert.Empty(t, notes)
	assert.Equal(t, 2, again.RoundA.EarnedYear)
}

func TestCheckCapitalFundingMilestones_Expiry(t *testing.T) {
	s, _ := CheckCapitalFundingMilestones(domain.NewCapitalFundingState(), dec("0.2"), 2, 3)

	s, notes := CheckCapitalFundingMilestones(s, dec("0.2"), 4, 3)
	assert.Empty(t, notes)
	assert.True(t, s.RoundA.Available())

	s, notes = CheckCapitalFundingMilestones(s, dec("0.2"), 5, 3)
	if assert.Len(t, notes, 1) {
		assert.Equal(t, NotifyCapitalFundingExpired, notes[0].Kind)
	}
	assert.True(t, s.RoundA.Expired)

	// used rewards never expire
	used := domain.NewCapitalFundingState()
	used.RoundA.Earned, used.RoundA.EarnedYear, used.RoundA.Used = true, 1, true
	used, _ = CheckCapitalFundingMilestones(used, dec("0"), 9, 1)
	assert.False(t, used.RoundA.Expired)
}

func TestConsumeCapitalFunding(t *testing.T) {
	s := domain.NewCapitalFundingState()
	_, ok := ConsumeCapitalFunding(s, "x", 1)
	assert.False(t, ok)

	s, _ = CheckCapitalFundingMilestones(s, dec("0.5"), 2, 0)
	s, ok = ConsumeCapitalFunding(s, "first", 2)
	assert.True(t, ok)
	assert.Equal(t, domain.ProjectID("first"), s.RoundA.UsedBy)
	assert.False(t, s.RoundB.Used)

	s, ok = ConsumeCapitalFunding(s, "second", 2)
	assert.True(t, ok)
	assert.Equal(t, domain.ProjectID("second"), s.RoundB.UsedBy)

	_, ok = ConsumeCapitalFunding(s, "third", 2)
	assert.False(t, ok)
}

package dateutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElapsedYears(t *testing.T) {
	tests := []struct {
		name     string
		period   int
		interval int
		want     int
	}{
		{"first period", 1, 1, 0},
		{"third annual period", 3, 1, 2},
		{"third biennial period", 3, 2, 4},
		{"zero period clamps", 0, 2, 0},
		{"bad interval defaults to one", 4, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElapsedYears(tt.period, tt.interval))
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "2024", PeriodLabel(2024, 1, 1))
	assert.Equal(t, "2026", PeriodLabel(2024, 3, 1))
	assert.Equal(t, "2024-2025", PeriodLabel(2024, 1, 2))
	assert.Equal(t, "2028-2029", PeriodLabel(2024, 3, 2))
}

func TestPeriodEndYear(t *testing.T) {
	assert.Equal(t, 2024, PeriodEndYear(2024, 1, 1))
	assert.Equal(t, 2027, PeriodEndYear(2024, 2, 2))
	assert.Equal(t, 2026, PeriodEndYear(2024, 3, 0))
}

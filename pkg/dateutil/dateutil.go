package dateutil

import (
	"fmt"
)

// ElapsedYears returns the number of real years that have passed before the
// given 1-based period starts. Period 1 starts at 0 elapsed years.
func ElapsedYears(period, interval int) int {
	if period < 1 {
		return 0
	}
	if interval < 1 {
		interval = 1
	}
	return (period - 1) * interval
}

// PeriodStartYear returns the calendar year in which a period begins
func PeriodStartYear(startYear, period, interval int) int {
	return startYear + ElapsedYears(period, interval)
}

// PeriodEndYear returns the last calendar year covered by a period
func PeriodEndYear(startYear, period, interval int) int {
	if interval < 1 {
		interval = 1
	}
	return PeriodStartYear(startYear, period, interval) + interval - 1
}

// PeriodLabel renders a period as "2024" or, for multi-year periods, "2024-2025"
func PeriodLabel(startYear, period, interval int) string {
	first := PeriodStartYear(startYear, period, interval)
	last := PeriodEndYear(startYear, period, interval)
	if first == last {
		return fmt.Sprintf("%d", first)
	}
	return fmt.Sprintf("%d-%d", first, last)
}

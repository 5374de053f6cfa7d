//go:build unit

package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"$1,234.57":  decimal.NewFromFloat(1234.567),
		"$0.00":      decimal.Zero,
		"-$2,500.00": decimal.NewFromInt(-2500),
	}
	for want, v := range cases {
		if got := FormatCurrency(v); got != want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(0.123456)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatKg(t *testing.T) {
	if got, want := FormatKg(decimal.RequireFromString("1696240.4")), "1,696,240 kg"; got != want {
		t.Errorf("FormatKg = %q, want %q", got, want)
	}
}

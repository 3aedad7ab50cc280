package decimal

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1234.564, 1234.56},
		{1234.565, 1234.57},
		{2.675, 2.68},
		{-10.005, -10.01},
		{0, 0},
	}
	for _, c := range cases {
		if got := RoundMoney(c.in); got != c.want {
			t.Fatalf("RoundMoney(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{57.5, 57.5},
		{12.3456, 12.3},
		{-2.25, -2.3},
		{99.95, 100.0},
	}
	for _, c := range cases {
		if got := RoundPercent(c.in); got != c.want {
			t.Fatalf("RoundPercent(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRoundLeavesNonFiniteAlone(t *testing.T) {
	if got := RoundMoney(math.Inf(1)); !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf, got %v", got)
	}
	if got := RoundPercent(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
}

func TestRoundMoneySlice(t *testing.T) {
	got := RoundMoneySlice([]float64{-240000, 127499.999, 16750.004})
	want := []float64{-240000, 127500, 16750}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234567.891, "$1,234,567.89"},
		{999.5, "$999.50"},
		{0, "$0.00"},
		{-55000, "-$55,000.00"},
		{100000, "$100,000.00"},
		{999.995, "$1,000.00"},
		{-999.995, "-$1,000.00"},
		{-0.001, "$0.00"},
		{2_500_000_000, "$2,500,000,000.00"},
	}
	for _, c := range cases {
		if got := NewMoney(c.in).Format(); got != c.want {
			t.Fatalf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNewMoneyNonFinite(t *testing.T) {
	if !NewMoney(math.Inf(-1)).IsZero() {
		t.Fatalf("expected zero for -Inf")
	}
	if got := NewMoney(12.345).Round().String(); got != "12.35" {
		t.Fatalf("Round got %s", got)
	}
}

func TestRoundDecimal(t *testing.T) {
	if got := RoundMoneyDecimal(decimal.RequireFromString("4146435.0749")); got != 4146435.07 {
		t.Fatalf("RoundMoneyDecimal = %v", got)
	}
	if got := RoundMoneyDecimal(decimal.RequireFromString("-10.005")); got != -10.01 {
		t.Fatalf("RoundMoneyDecimal(-10.005) = %v", got)
	}
	if got := RoundPercentDecimal(decimal.RequireFromString("57.45")); got != 57.5 {
		t.Fatalf("RoundPercentDecimal = %v", got)
	}
}

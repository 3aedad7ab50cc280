package output

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/roikit/roi-calculator/internal/domain"
	dec "github.com/roikit/roi-calculator/pkg/decimal"
)

// FormatCurrency formats an amount as USD with thousands separators and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string { return dec.NewMoney(amount).Format() }

// FormatPercentage formats a percentage with 1 decimal.
func FormatPercentage(pct float64) string { return percentString(pct) + "%" }

// FormatAmount formats a decimal amount the same way as FormatCurrency.
func FormatAmount(d decimal.Decimal) string { return dec.Money{Decimal: d}.Format() }

// FormatRate formats a decimal percentage with 1 decimal.
func FormatRate(d decimal.Decimal) string { return d.StringFixed(dec.PercentPlaces) + "%" }

// FormatPayback renders a payback period in months, or N/A when it is never reached.
func FormatPayback(months float64) string {
	if !paybackReached(months) {
		return domain.PaybackNotAvailable
	}
	return decimal.NewFromFloat(months).StringFixed(0) + " months"
}

// FormatIRR renders an internal rate of return as a percentage.
func FormatIRR(irr *float64) string {
	if irr == nil {
		return domain.PaybackNotAvailable
	}
	return FormatPercentage(*irr * 100)
}

func paybackReached(months float64) bool {
	return months >= 0 && months <= domain.PaybackHorizonMonths
}

func moneyString(v float64) string { return dec.NewMoney(v).String() }

func percentString(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.PaybackNotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(dec.PercentPlaces)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

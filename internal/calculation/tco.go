package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/roikit/roi-calculator/internal/domain"
)

// DefaultTCOYears is the horizon used when a caller does not choose one.
const DefaultTCOYears = 5

// TCOEngine projects current- and future-state total cost of ownership.
// Amounts are accumulated at decimal precision; inputs arrive as float64.
type TCOEngine struct {
	hidden    domain.HiddenCostFactors
	inflation decimal.Decimal
	logger    Logger
}

// NewTCOEngine creates an engine that compounds recurring costs at inflation
// and applies the given hidden-cost factors.
func NewTCOEngine(hidden domain.HiddenCostFactors, inflation float64) *TCOEngine {
	return &TCOEngine{hidden: hidden, inflation: decimal.NewFromFloat(inflation), logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (e *TCOEngine) SetLogger(l Logger) { e.logger = loggerOrNop(l) }

// InflationRate returns the compounding rate applied to recurring amounts.
func (e *TCOEngine) InflationRate() float64 { return e.inflation.InexactFloat64() }

// Compare projects both states over years and pairs their cumulative totals.
func (e *TCOEngine) Compare(current domain.CurrentState, future domain.FutureState, years int, includeHidden bool) (*domain.TCOResult, error) {
	if years < 1 {
		return nil, fmt.Errorf("%w: years must be at least 1, got %d", domain.ErrInvalidInput, years)
	}
	amounts := []struct {
		name  string
		value float64
	}{
		{"annual_operations", current.AnnualOperations},
		{"annual_maintenance", current.AnnualMaintenance},
		{"annual_labor", current.AnnualLabor},
		{"annual_infrastructure", current.AnnualInfrastructure},
		{"implementation", future.Implementation},
		{"annual_license", future.AnnualLicense},
		{"annual_support", future.AnnualSupport},
		{"efficiency_savings", future.EfficiencySavings},
	}
	for _, a := range amounts {
		if err := checkAmount(a.name, a.value); err != nil {
			return nil, err
		}
	}

	factors := e.growthFactors(years)
	// annuity is the sum of inflation factors over the horizon, so a recurring
	// amount's horizon total is amount*annuity.
	annuity := decimal.Zero
	for _, g := range factors {
		annuity = annuity.Add(g)
	}

	currentRows, currentBreakdown, currentHidden := e.projectCurrent(current, factors, includeHidden, annuity)
	futureRows, futureBreakdown, futureHidden := e.projectFuture(future, factors, includeHidden, annuity)

	currentTCO := currentRows[len(currentRows)-1].Cumulative
	futureTCO := futureRows[len(futureRows)-1].Cumulative
	savings := currentTCO.Sub(futureTCO)
	savingsPct := decimal.Zero
	if currentTCO.IsPositive() {
		savingsPct = savings.Div(currentTCO).Mul(decimal.NewFromInt(100))
	}

	comparison := make([]domain.YearComparison, 0, years+1)
	comparison = append(comparison, domain.YearComparison{
		Year:              0,
		CurrentCumulative: decimal.Zero,
		FutureCumulative:  futureRows[0].Cumulative,
		CumulativeSavings: futureRows[0].Cumulative.Neg(),
	})
	for y := 1; y <= years; y++ {
		cur := currentRows[y-1].Cumulative
		fut := futureRows[y].Cumulative
		comparison = append(comparison, domain.YearComparison{
			Year:              y,
			CurrentCumulative: cur,
			FutureCumulative:  fut,
			CumulativeSavings: cur.Sub(fut),
		})
	}

	identified := make(map[string]decimal.Decimal, len(currentHidden)+len(futureHidden))
	for k, v := range currentHidden {
		identified["current_hidden_"+k] = v
	}
	for k, v := range futureHidden {
		identified["future_"+k] = v
	}

	e.logger.Debugf("TCO over %d years: current %s future %s savings %s",
		years, currentTCO.StringFixed(2), futureTCO.StringFixed(2), savings.StringFixed(2))

	return &domain.TCOResult{
		CurrentStateTCO:       currentTCO,
		FutureStateTCO:        futureTCO,
		TCOSavings:            savings,
		SavingsPercent:        savingsPct,
		Years:                 years,
		IncludeHidden:         includeHidden,
		CurrentBreakdown:      currentBreakdown,
		FutureBreakdown:       futureBreakdown,
		CurrentProjection:     currentRows,
		FutureProjection:      futureRows,
		YearlyComparison:      comparison,
		HiddenCostsIdentified: identified,
	}, nil
}

// HiddenCostSummary describes every configured hidden-cost category.
func (e *TCOEngine) HiddenCostSummary(includeHidden bool) map[string]string {
	out := make(map[string]string)
	if !includeHidden {
		return out
	}
	for _, group := range [][]domain.HiddenCostFactor{e.hidden.Current, e.hidden.FutureOneTime, e.hidden.FutureRecurring} {
		for _, f := range group {
			out[f.Name] = f.Description
		}
	}
	return out
}

// growthFactors returns (1+inflation)^(y-1) for y in 1..years.
func (e *TCOEngine) growthFactors(years int) []decimal.Decimal {
	step := decimal.NewFromInt(1).Add(e.inflation)
	factors := make([]decimal.Decimal, years)
	g := decimal.NewFromInt(1)
	for i := range factors {
		factors[i] = g
		g = g.Mul(step)
	}
	return factors
}

// projectCurrent returns rows for years 1..n, the horizon breakdown and the
// horizon total of each hidden category.
func (e *TCOEngine) projectCurrent(c domain.CurrentState, factors []decimal.Decimal, includeHidden bool, annuity decimal.Decimal) ([]domain.TCOYear, map[string]decimal.Decimal, map[string]decimal.Decimal) {
	operations := decimal.NewFromFloat(c.AnnualOperations)
	maintenance := decimal.NewFromFloat(c.AnnualMaintenance)
	labor := decimal.NewFromFloat(c.AnnualLabor)
	infrastructure := decimal.NewFromFloat(c.AnnualInfrastructure)
	base := operations.Add(maintenance).Add(labor).Add(infrastructure)

	hiddenAnnual := decimal.Zero
	hidden := make(map[string]decimal.Decimal)
	if includeHidden {
		for _, f := range e.hidden.Current {
			amount := decimal.NewFromFloat(c.Basis(f.Basis)).Mul(decimal.NewFromFloat(f.Rate))
			hidden[f.Name] = hidden[f.Name].Add(amount.Mul(annuity))
			hiddenAnnual = hiddenAnnual.Add(amount)
		}
	}

	rows := make([]domain.TCOYear, 0, len(factors))
	cumulative := decimal.Zero
	for i, g := range factors {
		row := domain.TCOYear{Year: i + 1, BaseCost: base.Mul(g), HiddenCost: hiddenAnnual.Mul(g)}
		row.Total = row.BaseCost.Add(row.HiddenCost)
		cumulative = cumulative.Add(row.Total)
		row.Cumulative = cumulative
		rows = append(rows, row)
	}

	breakdown := map[string]decimal.Decimal{
		"operations":     operations.Mul(annuity),
		"maintenance":    maintenance.Mul(annuity),
		"labor":          labor.Mul(annuity),
		"infrastructure": infrastructure.Mul(annuity),
	}
	for k, v := range hidden {
		breakdown["hidden_"+k] = v
	}
	return rows, breakdown, hidden
}

// projectFuture returns rows for years 0..n. Year 0 carries the implementation
// outlay and one-time hidden costs; recurring hidden costs are spread evenly
// across the horizon without inflation.
func (e *TCOEngine) projectFuture(f domain.FutureState, factors []decimal.Decimal, includeHidden bool, annuity decimal.Decimal) ([]domain.TCOYear, map[string]decimal.Decimal, map[string]decimal.Decimal) {
	years := decimal.NewFromInt(int64(len(factors)))
	implementation := decimal.NewFromFloat(f.Implementation)
	license := decimal.NewFromFloat(f.AnnualLicense)
	support := decimal.NewFromFloat(f.AnnualSupport)
	efficiency := decimal.NewFromFloat(f.EfficiencySavings)
	base := license.Add(support)

	hidden := make(map[string]decimal.Decimal)
	oneTime, recurring := decimal.Zero, decimal.Zero
	if includeHidden {
		for _, h := range e.hidden.FutureOneTime {
			amount := decimal.NewFromFloat(f.Basis(h.Basis)).Mul(decimal.NewFromFloat(h.Rate))
			hidden[h.Name] = hidden[h.Name].Add(amount)
			oneTime = oneTime.Add(amount)
		}
		for _, h := range e.hidden.FutureRecurring {
			amount := decimal.NewFromFloat(f.Basis(h.Basis)).Mul(decimal.NewFromFloat(h.Rate))
			hidden[h.Name] = hidden[h.Name].Add(amount.Mul(years))
			recurring = recurring.Add(amount)
		}
	}

	rows := make([]domain.TCOYear, 0, len(factors)+1)
	cumulative := implementation.Add(oneTime)
	rows = append(rows, domain.TCOYear{
		Year:       0,
		BaseCost:   implementation,
		HiddenCost: oneTime,
		Total:      cumulative,
		Cumulative: cumulative,
	})
	for i, g := range factors {
		row := domain.TCOYear{Year: i + 1, BaseCost: base.Mul(g), HiddenCost: recurring, Savings: efficiency.Mul(g)}
		row.Total = row.BaseCost.Add(row.HiddenCost).Sub(row.Savings)
		cumulative = cumulative.Add(row.Total)
		row.Cumulative = cumulative
		rows = append(rows, row)
	}

	breakdown := map[string]decimal.Decimal{
		"implementation": implementation,
		"license":        license.Mul(annuity),
		"support":        support.Mul(annuity),
	}
	if !efficiency.IsZero() {
		breakdown["efficiency_savings"] = efficiency.Mul(annuity).Neg()
	}
	for k, v := range hidden {
		breakdown[k] = v
	}
	return rows, breakdown, hidden
}

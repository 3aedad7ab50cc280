package calculation

import "math"

// RootFinder finds x in [lower, upper] with f(x) = 0. It reports false when the
// interval does not bracket a root or the method fails to converge.
type RootFinder interface {
	Solve(f func(float64) float64, lower, upper float64) (float64, bool)
}

// RootFinderFunc adapts a plain function to RootFinder.
type RootFinderFunc func(f func(float64) float64, lower, upper float64) (float64, bool)

func (fn RootFinderFunc) Solve(f func(float64) float64, lower, upper float64) (float64, bool) {
	return fn(f, lower, upper)
}

const (
	defaultRootTolerance     = 1e-12
	defaultRootMaxIterations = 100
)

// BrentSolver implements Brent's method: inverse quadratic interpolation and
// secant steps guarded by bisection.
type BrentSolver struct {
	Tolerance     float64
	MaxIterations int
}

// NewBrentSolver returns a solver with a 1e-12 tolerance and 100 iterations.
func NewBrentSolver() *BrentSolver {
	return &BrentSolver{Tolerance: defaultRootTolerance, MaxIterations: defaultRootMaxIterations}
}

func (s *BrentSolver) Solve(f func(float64) float64, lower, upper float64) (float64, bool) {
	tol, maxIter := s.Tolerance, s.MaxIterations
	if tol <= 0 {
		tol = defaultRootTolerance
	}
	if maxIter <= 0 {
		maxIter = defaultRootMaxIterations
	}

	a, b := lower, upper
	fa, fb := f(a), f(b)
	if !isFinite(fa) || !isFinite(fb) {
		return 0, false
	}
	if fa == 0 {
		return a, true
	}
	if fb == 0 {
		return b, true
	}
	if sameSign(fa, fb) {
		return 0, false
	}

	c, fc := b, fb
	var d, e float64
	for i := 0; i < maxIter; i++ {
		if sameSign(fb, fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*epsilon*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, true
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			sv := fb / fa
			if a == c {
				p = 2 * xm * sv
				q = 1 - sv
			} else {
				q = fa / fc
				r := fb / fc
				p = sv * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (sv - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
		if !isFinite(fb) {
			return 0, false
		}
	}
	return 0, false
}

// BisectionSolver halves the bracket until it is narrower than Tolerance.
type BisectionSolver struct {
	Tolerance     float64
	MaxIterations int
}

func (s *BisectionSolver) Solve(f func(float64) float64, lower, upper float64) (float64, bool) {
	tol, maxIter := s.Tolerance, s.MaxIterations
	if tol <= 0 {
		tol = 1e-10
	}
	if maxIter <= 0 {
		maxIter = 200
	}

	lo, hi := lower, upper
	flo, fhi := f(lo), f(hi)
	if !isFinite(flo) || !isFinite(fhi) {
		return 0, false
	}
	if flo == 0 {
		return lo, true
	}
	if fhi == 0 {
		return hi, true
	}
	if sameSign(flo, fhi) {
		return 0, false
	}

	for i := 0; i < maxIter; i++ {
		mid := lo + (hi-lo)/2
		fm := f(mid)
		if fm == 0 || (hi-lo)/2 < tol {
			return mid, true
		}
		if sameSign(fm, flo) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0, false
}

const epsilon = 2.220446049250313e-16

func sameSign(x, y float64) bool {
	return (x > 0 && y > 0) || (x < 0 && y < 0)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

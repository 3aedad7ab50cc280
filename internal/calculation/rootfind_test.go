package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrentSolver_FindsRoot(t *testing.T) {
	root, ok := NewBrentSolver().Solve(func(x float64) float64 { return x*x - 2 }, 0, 2)
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt2, root, 1e-9)
}

func TestBrentSolver_NoSignChange(t *testing.T) {
	_, ok := NewBrentSolver().Solve(func(x float64) float64 { return x*x + 1 }, -1, 1)
	assert.False(t, ok)
}

func TestBrentSolver_RootAtBound(t *testing.T) {
	root, ok := (&BrentSolver{}).Solve(func(x float64) float64 { return x - 3 }, 3, 5)
	require.True(t, ok)
	assert.Equal(t, 3.0, root)
}

func TestBrentSolver_IterationCap(t *testing.T) {
	s := &BrentSolver{Tolerance: 1e-300, MaxIterations: 1}
	_, ok := s.Solve(math.Sin, 2, 4)
	assert.False(t, ok)
}

func TestBisectionSolver(t *testing.T) {
	s := &BisectionSolver{Tolerance: 1e-12}
	root, ok := s.Solve(func(x float64) float64 { return math.Cos(x) - x }, 0, 1)
	require.True(t, ok)
	assert.InDelta(t, 0.7390851332, root, 1e-9)

	_, ok = s.Solve(func(x float64) float64 { return 1 }, 0, 1)
	assert.False(t, ok)
}

func TestRootFinderFunc(t *testing.T) {
	var calls int
	rf := RootFinderFunc(func(f func(float64) float64, lower, upper float64) (float64, bool) {
		calls++
		return 0.25, true
	})
	r := IRR([]float64{-100, 125}, rf)
	require.NotNil(t, r)
	assert.Equal(t, 0.25, *r)
	assert.Equal(t, 1, calls)
}

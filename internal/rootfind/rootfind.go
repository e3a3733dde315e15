// Package rootfind locates sign changes of real functions by bracket
// expansion and bisection.
package rootfind

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoBracket is returned when Bracket exhausts its iterations without
	// finding a sign change.
	ErrNoBracket = errors.New("rootfind: no bracket found")

	// ErrInvalidInterval is returned when Bisection is given an interval
	// whose ends have the same sign.
	ErrInvalidInterval = errors.New("rootfind: interval does not bracket a root")
)

// Func is a real function searched for a root.
type Func func(x float64) float64

// Config tunes the search.
type Config struct {
	Factor        float64 // Outward expansion per step, as a fraction of the width
	MaxIterations int     // Budget for both Bracket and Bisection
	Precision     float64 // Bisection stops once |f(mid)| is within this
}

// DefaultConfig returns the golden-ratio expansion, 100 iterations and a
// precision of 1e-5.
func DefaultConfig() Config {
	return Config{
		Factor:        0.618,
		MaxIterations: 100,
		Precision:     1e-5,
	}
}

// Result reports a bisection outcome.
type Result struct {
	Root       float64
	Iterations int
	Converged  bool // false if MaxIterations ran out before Precision was met
}

// Bracket widens [left, right] until f changes sign across it.
func Bracket(f Func, left, right float64) (float64, float64, error) {
	return DefaultConfig().Bracket(f, left, right)
}

// Bisection returns a root of f inside [left, right].
func Bisection(f Func, left, right float64) (float64, error) {
	return DefaultConfig().Bisection(f, left, right)
}

// Bracket widens [left, right] by alternately pushing the left and right
// ends outward until f changes sign across the interval.
func (c Config) Bracket(f Func, left, right float64) (float64, float64, error) {
	if left > right {
		left, right = right, left
	}
	fl, fr := f(left), f(right)
	if straddles(fl, fr) {
		return left, right, nil
	}

	for i := 0; i < c.MaxIterations; i++ {
		left -= c.Factor * (right - left)
		fl = f(left)
		if straddles(fl, fr) {
			return left, right, nil
		}

		right += c.Factor * (right - left)
		fr = f(right)
		if straddles(fl, fr) {
			return left, right, nil
		}
	}
	return left, right, fmt.Errorf("%w after %d iterations on [%g, %g]", ErrNoBracket, c.MaxIterations, left, right)
}

// Bisection returns the midpoint at which the search stopped. Running out
// of iterations is not an error; use BisectionResult to detect it.
func (c Config) Bisection(f Func, left, right float64) (float64, error) {
	res, err := c.BisectionResult(f, left, right)
	return res.Root, err
}

// BisectionResult is Bisection with convergence details.
func (c Config) BisectionResult(f Func, left, right float64) (Result, error) {
	fl, fr := f(left), f(right)
	if !straddles(fl, fr) {
		return Result{}, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrInvalidInterval, left, fl, right, fr)
	}

	var res Result
	for res.Iterations < c.MaxIterations {
		res.Iterations++
		mid := left + (right-left)/2
		fm := f(mid)
		res.Root = mid
		if math.Abs(fm) <= c.Precision {
			res.Converged = true
			return res, nil
		}
		if straddles(fl, fm) {
			right = mid
		} else {
			left, fl = mid, fm
		}
	}
	return res, nil
}

// straddles reports whether a and b lie on opposite sides of zero. Zero
// counts as a sign change.
func straddles(a, b float64) bool {
	return math.Signbit(a) != math.Signbit(b) || a == 0 || b == 0
}

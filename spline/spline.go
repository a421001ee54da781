package spline

import (
	"errors"

	"gonum.org/v1/gonum/interp"
)

// duplicateEps is the minimum abscissa separation; closer samples are
// considered duplicates.
const duplicateEps = 1e-5

// Sentinel errors for spline construction.
var (
	// ErrLengthMismatch indicates xs and ys differ in length.
	ErrLengthMismatch = errors.New("spline: sample and value lengths differ")

	// ErrNoData indicates fewer than two samples.
	ErrNoData = errors.New("spline: fewer than two samples")

	// ErrNotAscending indicates abscissas that are not strictly ascending.
	ErrNotAscending = errors.New("spline: sample abscissas must ascend")

	// ErrDuplicate indicates two abscissas closer than 1e-5.
	ErrDuplicate = errors.New("spline: duplicate sample abscissa")
)

// Spline is a natural cubic interpolant over validated samples.
type Spline struct {
	nc interp.NaturalCubic
}

// New validates the samples and fits the interpolant.
func New(xs, ys []float64) (*Spline, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}
	if len(xs) < 2 {
		return nil, ErrNoData
	}
	for i := 1; i < len(xs); i++ {
		d := xs[i] - xs[i-1]
		if d < 0 {
			return nil, ErrNotAscending
		}
		if d < duplicateEps {
			return nil, ErrDuplicate
		}
	}

	s := &Spline{}
	if err := s.nc.Fit(xs, ys); err != nil {
		return nil, err
	}
	return s, nil
}

// Evaluate returns the interpolated value at x.
func (s *Spline) Evaluate(x float64) float64 {
	return s.nc.Predict(x)
}

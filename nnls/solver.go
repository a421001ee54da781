package nnls

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Solver defaults.
const (
	// DefaultMaxIter caps active-set iterations per right-hand side.
	DefaultMaxIter = 50

	// DefaultEps is the dual-feasibility convergence tolerance.
	DefaultEps = 1e-10
)

// ErrDimensionMismatch indicates incompatible matrix dimensions between
// the design matrix, the signal, and the solution.
var ErrDimensionMismatch = errors.New("nnls: dimension mismatch")

// Solver solves min ‖Ax−b‖₂ s.t. x ≥ 0 by the Lawson–Hanson active-set
// method. The zero value is not ready; use NewSolver.
type Solver struct {
	// MaxIter caps the number of active-set iterations.
	MaxIter int

	// Eps is the convergence tolerance on the dual variables.
	Eps float64
}

// NewSolver returns a Solver with the documented defaults.
func NewSolver() *Solver {
	return &Solver{MaxIter: DefaultMaxIter, Eps: DefaultEps}
}

// workspace is the per-worker scratch state, reused across columns.
type workspace struct {
	passive []bool
	z       []float64
	resid   []float64
	sub     *mat.Dense
	cols    []int
	qr      mat.QR
}

// newWorkspace sizes scratch for an m×n design matrix.
func newWorkspace(m, n int) *workspace {
	return &workspace{
		passive: make([]bool, n),
		z:       make([]float64, n),
		resid:   make([]float64, m),
		cols:    make([]int, 0, n),
	}
}

// solvePassive least-squares fits b over the passive columns of a,
// writing the coefficients into ws.z aligned with ws.cols. Reports false
// when the subproblem is numerically singular.
func (ws *workspace) solvePassive(a *mat.Dense, b []float64) bool {
	m, _ := a.Dims()
	p := len(ws.cols)
	if p > m {
		// An overfull passive set has no unique least-squares fit.
		return false
	}
	if ws.sub == nil || ws.sub.RawMatrix().Cols != p || ws.sub.RawMatrix().Rows != m {
		ws.sub = mat.NewDense(m, p, nil)
	}
	for j, col := range ws.cols {
		for i := 0; i < m; i++ {
			ws.sub.Set(i, j, a.At(i, col))
		}
	}
	ws.qr.Factorize(ws.sub)

	var sol mat.Dense
	rhs := mat.NewVecDense(m, b)
	if err := ws.qr.SolveTo(&sol, false, rhs); err != nil {
		// A poorly conditioned subproblem still yields a usable iterate;
		// only a hard failure aborts.
		if _, ok := err.(mat.Condition); !ok {
			return false
		}
	}
	for j := range ws.cols {
		ws.z[j] = sol.At(j, 0)
	}
	return true
}

// solve runs Lawson–Hanson for one right-hand side, writing the solution
// into x (length n). The iterate at the iteration cap is returned as-is,
// clamped non-negative.
func (s *Solver) solve(a *mat.Dense, b []float64, x []float64, ws *workspace) {
	m, n := a.Dims()
	for j := 0; j < n; j++ {
		ws.passive[j] = false
		x[j] = 0
	}
	ws.cols = ws.cols[:0]

	for iter := 0; iter < s.MaxIter; iter++ {
		// Dual: w = Aᵀ(b − Ax).
		for i := 0; i < m; i++ {
			r := b[i]
			for _, col := range ws.cols {
				r -= a.At(i, col) * x[col]
			}
			ws.resid[i] = r
		}
		best, bestJ := s.Eps, -1
		for j := 0; j < n; j++ {
			if ws.passive[j] {
				continue
			}
			var wj float64
			for i := 0; i < m; i++ {
				wj += a.At(i, j) * ws.resid[i]
			}
			if wj > best {
				best, bestJ = wj, j
			}
		}
		if bestJ < 0 {
			break // dual feasible: optimum reached
		}
		ws.passive[bestJ] = true
		ws.cols = append(ws.cols, bestJ)

		// Inner loop: restore primal feasibility on the passive set.
		for {
			if !ws.solvePassive(a, b) {
				// Singular subproblem: back the new column out and stop.
				ws.passive[bestJ] = false
				ws.cols = ws.cols[:len(ws.cols)-1]
				clampNonNegative(x)
				return
			}
			feasible := true
			for j := range ws.cols {
				if ws.z[j] <= 0 {
					feasible = false
					break
				}
			}
			if feasible {
				for j, col := range ws.cols {
					x[col] = ws.z[j]
				}
				break
			}

			// Step toward z until the first passive coefficient hits zero.
			alpha := 1.0
			for j, col := range ws.cols {
				if ws.z[j] <= 0 && x[col] != ws.z[j] {
					if step := x[col] / (x[col] - ws.z[j]); step < alpha {
						alpha = step
					}
				}
			}
			for j, col := range ws.cols {
				x[col] += alpha * (ws.z[j] - x[col])
			}

			// Retire zeroed coefficients to the active set.
			kept := ws.cols[:0]
			for _, col := range ws.cols {
				if x[col] <= s.Eps {
					ws.passive[col] = false
					x[col] = 0
					continue
				}
				kept = append(kept, col)
			}
			ws.cols = kept
			if len(ws.cols) == 0 {
				break
			}
		}
	}
	clampNonNegative(x)
}

// clampNonNegative zeroes tiny negative round-off in the iterate.
func clampNonNegative(x []float64) {
	for i := range x {
		if x[i] < 0 {
			x[i] = 0
		}
	}
}

// Solve runs the solver for a single right-hand side and returns a fresh
// solution vector of length n.
func (s *Solver) Solve(a *mat.Dense, b []float64) ([]float64, error) {
	m, n := a.Dims()
	if len(b) != m {
		return nil, ErrDimensionMismatch
	}
	x := make([]float64, n)
	s.solve(a, b, x, newWorkspace(m, n))
	return x, nil
}

package nnls

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// SolveAll solves one NNLS problem per column of signal against the shared
// design matrix masks, writing each result into the matching column of
// solution. masks is m×n, signal is m×k, solution must be n×k.
//
// Columns are independent: they are striped across a worker pool sized to
// GOMAXPROCS, each worker reusing its own workspace. Workers touch
// disjoint columns of solution, so no synchronization is needed, and the
// parallel region performs no I/O.
func (s *Solver) SolveAll(masks, signal, solution *mat.Dense) error {
	m, n := masks.Dims()
	sm, k := signal.Dims()
	on, ok := solution.Dims()
	if sm != m || on != n || ok != k {
		return ErrDimensionMismatch
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > k {
		workers = k
	}
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		first := w
		g.Go(func() error {
			ws := newWorkspace(m, n)
			b := make([]float64, m)
			x := make([]float64, n)
			for col := first; col < k; col += workers {
				mat.Col(b, col, signal)
				s.solve(masks, b, x, ws)
				for row := 0; row < n; row++ {
					solution.Set(row, col, x[row])
				}
			}
			return nil
		})
	}
	return g.Wait()
}

package nnls_test

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/prismms/msdemux/nnls"
)

// BenchmarkSolveAll measures the batched parallel solve at a realistic
// block shape: a 50×50 cycle design against 20k product-ion columns.
func BenchmarkSolveAll(b *testing.B) {
	const (
		m = 50
		n = 50
		k = 20000
	)
	rng := rand.New(rand.NewSource(1))

	masks := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		masks.Set(i, i%n, 1)
		masks.Set(i, (i+1)%n, 1)
	}
	signal := mat.NewDense(m, k, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < k; j++ {
			signal.Set(i, j, rng.Float64()*1000)
		}
	}
	solution := mat.NewDense(n, k, nil)
	solver := nnls.NewSolver()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := solver.SolveAll(masks, signal, solution); err != nil {
			b.Fatal(err)
		}
	}
}

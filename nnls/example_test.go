package nnls_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/prismms/msdemux/nnls"
)

// ExampleSolver_Solve demonstrates recovering a non-negative solution
// from an overlap-style bidiagonal design.
func ExampleSolver_Solve() {
	// Two windows share each observation, b[i] = x[i] + x[i+1], except the
	// last, which sees only x[2].
	a := mat.NewDense(3, 3, []float64{
		1, 1, 0,
		0, 1, 1,
		0, 0, 1,
	})
	b := []float64{5, 7, 3}

	x, err := nnls.NewSolver().Solve(a, b)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.0f %.0f %.0f\n", x[0], x[1], x[2])
	// Output: 1 4 3
}

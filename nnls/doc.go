// Package nnls solves dense non-negative least-squares problems
// min ‖Ax − b‖₂ subject to x ≥ 0.
//
// The solver implements the Lawson–Hanson active-set method over small
// dense systems (rows and columns in the tens) and is built for the
// batched case: one design matrix shared by many right-hand sides, one
// per product-ion column. SolveAll fans the columns out over a worker
// pool; each worker owns a reusable workspace for its active-set state,
// no synchronization happens per column, and result columns are written
// to disjoint storage.
//
// Hitting the iteration cap is not an error: the solver returns its
// current iterate, clamped non-negative.
package nnls

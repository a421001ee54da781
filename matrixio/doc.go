// Package matrixio stores demultiplexing matrices in a random-access
// binary container for offline analysis.
//
// A matrix is framed as little-endian int64 row and column counts followed
// by the entries as IEEE-754 doubles in row-major order; column-major
// sources are transposed on the fly so the on-disk layout is always
// row-major. The debug container holds one (masks, signal, solution)
// triple per originating spectrum id: the file starts with an int64
// pointer to a footer, the triples follow, and the footer lists
// (id, offset) pairs so a reader can seek straight to any block.
package matrixio

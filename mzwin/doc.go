// Package mzwin models precursor isolation windows on a hashed m/z axis.
//
// All boundary identity in the demultiplexing scheme is decided on MZHash
// values: an m/z is scaled by 1e8 and rounded to an integer, which fixes
// the fuzzy-equality tolerance at ±5e-9 and makes boundary merging and
// deduplication deterministic. Comparing raw doubles for boundary identity
// silently splits a single detector boundary into near-duplicates and
// breaks cycle inference, so every set operation here runs on hashes.
//
// Window carries only hashed bounds and is the unit of design-matrix
// bookkeeping; IsolationWindow pairs a Window with the full-precision
// bounds preserved from the source file, for rewriting output precursors.
package mzwin

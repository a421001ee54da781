// Package demux assembles and solves per-spectrum demultiplexing problems
// and presents the result as an expanded spectrum list.
//
// Two demultiplexer variants build the block matrices. MSX gathers one
// neighboring MS2 spectrum (stride 1) per column of the full-width design
// matrix, so every isolation window of the scheme appears in it. Overlap works in precursor-m/z
// space instead: it selects the handful of spectra whose window centroids
// sit closest to the target's, slices the design matrix down to that local
// band, and optionally aligns neighbor intensities to the target's
// retention time with a cubic spline across same-phase cycles.
//
// SpectrumList is the facade: it wraps an input list, infers the scheme
// once, and serves index i of the expanded list by mapping it to
// (original spectrum, demux window), solving that spectrum's block on
// first touch, caching the solution for the sibling windows, and emitting
// a rewritten copy of the original spectrum.
package demux

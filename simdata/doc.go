// Package simdata generates simulated multiplexed DIA acquisitions for
// tests and benchmarks.
//
// A Scheme lays out the repeating cycle of MS1 and MS2 scan events with
// their precursor windows (equal-width MSX windows, or overlaps+1
// interleaved half-shifted sub-cycles). An Elution decides which analytes
// are emitting ions at a given clock time and how strongly; analytes carry
// a seeded random precursor m/z and fragment pattern. An Instrument walks
// the scheme at a fixed scan rate, samples the elution at each scan's
// clock time, and records centroided spectra with true monotone start
// times into an msdata.MemoryList.
package simdata

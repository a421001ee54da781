// Package msdemux is the root of the msdemux module, a Go library for
// demultiplexing multiplexed tandem mass spectra produced by
// data-independent acquisition (DIA) experiments.
//
// In multiplexed DIA, the instrument co-isolates several precursor m/z
// windows in a single fragmentation event (MSX), or repeats each cycle
// with a half-window m/z offset (overlap), so that every recorded
// product-ion spectrum mixes fragments from more than one precursor
// region. msdemux inverts that mixing: it infers the acquisition scheme
// from the spectrum list, frames each spectrum as a small non-negative
// least-squares problem over its neighborhood, and presents the result
// as an expanded spectrum list with one output spectrum per recovered
// isolation region.
//
// The module is organized as focused packages:
//
//   - mzwin     - hashed isolation-window values and predicates
//   - msdata    - the spectrum object model and list contracts
//   - peakex    - projection of peak lists onto fixed m/z bins
//   - maskcodec - acquisition-scheme inference and design-matrix rows
//   - nnls      - parallel batched non-negative least squares
//   - spline    - one-dimensional natural cubic interpolation
//   - matrixio  - binary container for (masks, signal, solution) dumps
//   - demux     - the demultiplexers and the spectrum-list facade
//   - simdata   - simulated acquisitions for tests and benchmarks
//
// Start with package demux: NewSpectrumList wraps any msdata.SpectrumList
// and exposes the demultiplexed view.
package msdemux

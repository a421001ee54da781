// Package maskcodec infers the acquisition scheme of a multiplexed DIA run
// and encodes spectra as design-matrix rows.
//
// Construction runs two passes. The first (cycle inference) walks the
// spectrum list, fixes the precursor count per MS2 spectrum, collects every
// distinct precursor window keyed by its jitter-tolerant formatted center,
// and self-terminates once the cycle repeats. The second (overlap
// resolution) works on the collected windows: it merges nearby hashed window boundaries, forms candidate
// sub-windows between adjacent boundaries, and keeps each candidate whose
// center falls inside an original window; the maximum coverage multiplicity
// is the overlap count of the scheme.
//
// After construction the codec is immutable and safe for concurrent reads:
// SpectrumToIndices maps any spectrum to the design-matrix columns of its
// component demultiplexed windows, and Mask/MaskRow write the corresponding
// (optionally weighted, optionally fill-time scaled) design row.
package maskcodec

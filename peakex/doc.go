// Package peakex projects irregular peak lists onto a fixed set of
// non-overlapping m/z bins.
//
// An Extractor is built once per demultiplexing block from the target
// spectrum's m/z grid and a mass tolerance (ppm or absolute). Each target
// m/z becomes a closed bin [mz-δ, mz+δ]; adjacent bins that overlap are
// snapped to the midpoint of the overlapping region, so total intensity
// stays conserved even when the input is not centroided. Extraction then
// sweeps a spectrum's peaks in m/z order with a monotone cursor over the
// bin array, rejecting out-of-range peaks in O(1) apiece.
package peakex

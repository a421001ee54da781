// Package msdata defines the spectrum object model and list contracts the
// demultiplexer consumes and produces.
//
// A SpectrumList is a read-only, index-addressable sequence of spectra.
// Spectra are plain values: precursors and scan descriptors are structs
// embedded in the spectrum rather than shared handles, so a clone can be
// rewritten (new id, new precursor window) cheaply and without touching
// the wrapped list. Native ids are space-separated key=value token strings
// carrying at least a scan=<int> token.
//
// CachingList wraps any SpectrumList in a bounded LRU keyed by index;
// the demultiplexer consults each original MS2 spectrum many times while
// assembling neighborhoods, so the cache sits directly in front of the
// source list.
package msdata

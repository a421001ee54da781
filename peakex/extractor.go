package peakex

import (
	"gonum.org/v1/gonum/mat"

	"github.com/prismms/msdemux/msdata"
)

// binRange is one closed m/z bin.
type binRange struct {
	low  float64
	high float64
}

// Extractor bins spectrum peaks onto a fixed m/z grid.
type Extractor struct {
	bins     []binRange
	maxDelta float64
	minValue float64
	maxValue float64
}

// NewExtractor builds an Extractor for an ascending target m/z grid and a
// mass tolerance.
func NewExtractor(targetMzs []float64, tol Tolerance) (*Extractor, error) {
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	if len(targetMzs) == 0 {
		return nil, ErrNoTargets
	}

	e := &Extractor{bins: make([]binRange, len(targetMzs))}
	for i, mz := range targetMzs {
		if i > 0 && mz < targetMzs[i-1] {
			return nil, ErrUnsortedTargets
		}
		delta := tol.Delta(mz)
		if delta > e.maxDelta {
			e.maxDelta = delta
		}
		e.bins[i] = binRange{low: mz - delta, high: mz + delta}
	}
	e.minValue = e.bins[0].low
	e.maxValue = e.bins[len(e.bins)-1].high

	// Snap overlapping neighbors to the midpoint of the overlap so each
	// observed peak lands in exactly one bin.
	for i := 0; i+1 < len(e.bins); i++ {
		if e.bins[i].high > e.bins[i+1].low {
			center := (e.bins[i].low + e.bins[i].high + e.bins[i+1].low + e.bins[i+1].high) / 4.0
			e.bins[i].high = center
			e.bins[i+1].low = center
		}
	}
	return e, nil
}

// NumBins returns the number of m/z bins.
func (e *Extractor) NumBins() int { return len(e.bins) }

// Extract zeros row rowIdx of dst, sums the spectrum's in-bin peak
// intensities into it, and scales the row by weight. dst must have at
// least NumBins columns.
func (e *Extractor) Extract(s *msdata.Spectrum, dst *mat.Dense, rowIdx int, weight float64) {
	row := dst.RawRowView(rowIdx)
	for i := range row {
		row[i] = 0
	}

	binStart := 0
	for qi, query := range s.Mzs {
		if query < e.minValue {
			continue
		}
		if query > e.maxValue {
			break
		}
		// Advance the shared cursor to the first bin that could contain
		// this (and any later) query peak: a bin holding the query has its
		// center within maxDelta of it, so its low edge lies within
		// 2·maxDelta.
		minStart := query - 2*e.maxDelta
		for binStart < len(e.bins) && e.bins[binStart].low < minStart {
			binStart++
		}
		for bi := binStart; bi < len(e.bins); bi++ {
			if e.bins[bi].low > query {
				break
			}
			if query <= e.bins[bi].high {
				row[bi] += s.Intensities[qi]
			}
		}
	}

	if weight != 1 {
		for i := range row {
			row[i] *= weight
		}
	}
}

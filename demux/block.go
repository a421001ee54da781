package demux

import (
	"gonum.org/v1/gonum/mat"

	"github.com/prismms/msdemux/maskcodec"
	"github.com/prismms/msdemux/msdata"
)

// Block is one assembled demultiplexing problem.
type Block struct {
	// Masks is the m×n design matrix: one row per neighbor spectrum, one
	// column per candidate demux window.
	Masks *mat.Dense

	// Signal is the m×k response matrix: one row per neighbor spectrum,
	// one column per product-ion bin of the target spectrum.
	Signal *mat.Dense

	// Indices are the solution-row positions corresponding to the
	// target's own demux windows, in demux-index order.
	Indices []int
}

// Demultiplexer chooses neighborhoods and assembles block matrices for
// one variant of the acquisition scheme.
type Demultiplexer interface {
	// BlockIndices returns the original-list indices of the spectra that
	// participate in the target's system of equations.
	BlockIndices(index int) ([]int, error)

	// BuildBlock assembles the design and response matrices for the
	// target over the given neighborhood.
	BuildBlock(index int, muxIndices []int) (*Block, error)
}

// decayWeight models intensity change over chromatographic elution: a
// neighbor scanDiff spectra away from the target is down-weighted by
// 1/(1+(5·scanDiff/spectraPerCycle)²), putting the roll-off width on the
// order of one cycle.
func decayWeight(scanDiff, spectraPerCycle int) float64 {
	d := 5.0 * float64(scanDiff) / float64(spectraPerCycle)
	return 1.0 / (1.0 + d*d)
}

// totalFillSeconds sums the MultiFillTime of every precursor, in seconds.
func totalFillSeconds(s *msdata.Spectrum) (float64, error) {
	total := 0.0
	for i := range s.Precursors {
		ms, err := s.Precursors[i].FillTime()
		if err != nil {
			return 0, err
		}
		total += ms
	}
	return total / 1000.0, nil
}

// demuxContext is the shared state of both demultiplexer variants.
type demuxContext struct {
	sl     msdata.SpectrumList
	codec  *maskcodec.Codec
	params Params
}

package demux

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/prismms/msdemux/maskcodec"
	"github.com/prismms/msdemux/msdata"
	"github.com/prismms/msdemux/peakex"
)

// compile-time interface check
var _ Demultiplexer = (*MSX)(nil)

// MSX demultiplexes multi-precursor acquisitions. Its design matrix spans
// the full demux block, so the neighborhood holds one MS2 spectrum per
// design column: DemuxBlockSize spectra around the target (several cycles
// when spectra co-isolate more than one precursor), plus the configured
// extra fraction of a cycle.
type MSX struct {
	demuxContext
}

// NewMSX builds the MSX demultiplexer over a spectrum list and its codec.
func NewMSX(sl msdata.SpectrumList, codec *maskcodec.Codec, p Params) *MSX {
	return &MSX{demuxContext{sl: sl, codec: codec, params: p}}
}

// BlockIndices gathers demuxBlockSize plus the extra fraction of a cycle
// of MS2 neighbors at stride 1.
func (d *MSX) BlockIndices(index int) ([]int, error) {
	count := d.codec.DemuxBlockSize() +
		int(math.Round(d.params.DemuxBlockExtra*float64(d.codec.SpectraPerCycle())))
	return FindNearbySpectra(d.sl, index, count, 1)
}

// BuildBlock writes one mask row and one extracted signal row per
// neighbor, both scaled by the optional elution-decay weight, the signal
// additionally by the neighbor's total fill time under variable fill.
func (d *MSX) BuildBlock(index int, muxIndices []int) (*Block, error) {
	target, err := d.sl.Spectrum(index)
	if err != nil {
		return nil, err
	}
	extractor, err := peakex.NewExtractor(target.Mzs, d.params.MassError)
	if err != nil {
		return nil, err
	}

	masks := mat.NewDense(len(muxIndices), d.codec.DemuxBlockSize(), nil)
	signal := mat.NewDense(len(muxIndices), extractor.NumBins(), nil)

	specPerCycle := d.codec.SpectraPerCycle()
	for row, mi := range muxIndices {
		s, err := d.sl.Spectrum(mi)
		if err != nil {
			return nil, err
		}
		weight := 1.0
		if d.params.ApplyWeighting {
			weight = decayWeight(index-mi, specPerCycle)
		}
		if err := d.codec.MaskRow(s, masks, row, weight); err != nil {
			return nil, err
		}
		if d.params.VariableFill {
			fill, err := totalFillSeconds(s)
			if err != nil {
				return nil, err
			}
			weight *= fill
		}
		extractor.Extract(s, signal, row, weight)
	}

	indices, err := d.codec.SpectrumToIndices(target)
	if err != nil {
		return nil, err
	}
	return &Block{Masks: masks, Signal: signal, Indices: indices}, nil
}

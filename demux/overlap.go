package demux

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/prismms/msdemux/maskcodec"
	"github.com/prismms/msdemux/msdata"
	"github.com/prismms/msdemux/peakex"
	"github.com/prismms/msdemux/spline"
)

// Overlap demultiplexes overlapping-window acquisitions, where every
// cycle repeats with a half-window m/z offset. Neighboring spectra share
// boundaries rather than whole windows, so the system is local in
// precursor-m/z space: only a small band of windows around the target
// participates, and neighbors are chosen by centroid distance in window
// index space rather than by time.
type Overlap struct {
	demuxContext
}

// compile-time interface check
var _ Demultiplexer = (*Overlap)(nil)

// NewOverlap builds the overlap demultiplexer over a spectrum list and
// its codec.
func NewOverlap(sl msdata.SpectrumList, codec *maskcodec.Codec, p Params) *Overlap {
	return &Overlap{demuxContext{sl: sl, codec: codec, params: p}}
}

// BlockIndices gathers one cycle of MS2 candidates (plus the extra
// fraction) around the target; BuildBlock narrows them to the m/z-local
// band.
func (d *Overlap) BlockIndices(index int) ([]int, error) {
	count := d.codec.SpectraPerCycle() +
		int(math.Round(d.params.DemuxBlockExtra*float64(d.codec.SpectraPerCycle())))
	return FindNearbySpectra(d.sl, index, count, 1)
}

// indexCentroid averages a spectrum's demux-window indices.
func (d *Overlap) indexCentroid(s *msdata.Spectrum) (float64, []int, error) {
	indices, err := d.codec.SpectrumToIndices(s)
	if err != nil {
		return 0, nil, err
	}
	sum := 0.0
	for _, i := range indices {
		sum += float64(i)
	}
	return sum / float64(len(indices)), indices, nil
}

// neighborDistance pairs a candidate spectrum with its signed centroid
// distance from the target in window-index space.
type neighborDistance struct {
	distance float64
	index    int
}

// distanceTie treats centroid distances this close as equal so ordering
// falls back to list order.
const distanceTie = 1e-3

// BuildBlock selects the overlapRegionsInApprox m/z-closest candidates,
// slices their mask rows down to the local band, and fills the response
// rows either by retention-time interpolation across same-phase cycles or
// by decay-weighted extraction.
func (d *Overlap) BuildBlock(index int, muxIndices []int) (*Block, error) {
	target, err := d.sl.Spectrum(index)
	if err != nil {
		return nil, err
	}
	extractor, err := peakex.NewExtractor(target.Mzs, d.params.MassError)
	if err != nil {
		return nil, err
	}

	n := overlapRegionsInApprox
	if d.codec.NumWindows() < n {
		n = d.codec.NumWindows()
	}
	if len(muxIndices) < n {
		return nil, ErrInsufficientNeighbors
	}

	centroid, deconvIndices, err := d.indexCentroid(target)
	if err != nil {
		return nil, err
	}

	// Clamp the band so it stays inside the window set.
	lower := int(math.Round(centroid - float64(n)/2.0))
	if lower < 0 {
		lower = 0
	}
	if max := d.codec.NumWindows() - n; lower > max {
		lower = max
	}

	// Rank candidates by centroid distance, keep the closest n, then
	// restore m/z order.
	distances := make([]neighborDistance, 0, len(muxIndices))
	for _, mi := range muxIndices {
		s, err := d.sl.Spectrum(mi)
		if err != nil {
			return nil, err
		}
		c, _, err := d.indexCentroid(s)
		if err != nil {
			return nil, err
		}
		distances = append(distances, neighborDistance{distance: c - centroid, index: mi})
	}
	sort.SliceStable(distances, func(i, j int) bool {
		return math.Abs(distances[i].distance) < math.Abs(distances[j].distance)-distanceTie
	})
	chosen := make([]neighborDistance, n)
	copy(chosen, distances[:n])
	sort.SliceStable(chosen, func(i, j int) bool {
		return chosen[i].distance < chosen[j].distance-distanceTie
	})

	masks := mat.NewDense(n, n, nil)
	signal := mat.NewDense(n, extractor.NumBins(), nil)

	for row, nb := range chosen {
		s, err := d.sl.Spectrum(nb.index)
		if err != nil {
			return nil, err
		}
		fullMask, err := d.codec.Mask(s, 1.0)
		if err != nil {
			return nil, err
		}
		for col := 0; col < n; col++ {
			masks.Set(row, col, fullMask[lower+col])
		}
	}

	if d.params.InterpolateRetentionTime {
		if err := d.interpolateSignal(target, chosen, extractor, signal); err != nil {
			return nil, err
		}
	} else {
		specPerCycle := d.codec.SpectraPerCycle()
		for row, nb := range chosen {
			s, err := d.sl.Spectrum(nb.index)
			if err != nil {
				return nil, err
			}
			weight := 1.0
			if d.params.ApplyWeighting {
				weight = decayWeight(index-nb.index, specPerCycle)
			}
			extractor.Extract(s, signal, row, weight)
		}
	}

	indices := make([]int, len(deconvIndices))
	for i, di := range deconvIndices {
		indices[i] = di - lower
	}
	return &Block{Masks: masks, Signal: signal, Indices: indices}, nil
}

// interpolateSignal evaluates, for every chosen neighbor and every
// product-ion bin, a cubic spline over cyclesInBlock same-phase samples at
// the target's retention time, clamped to zero from below.
func (d *Overlap) interpolateSignal(target *msdata.Spectrum, chosen []neighborDistance, extractor *peakex.Extractor, signal *mat.Dense) error {
	targetTime, ok := target.StartTime()
	if !ok {
		return ErrMissingRetentionTime
	}
	specPerCycle := d.codec.SpectraPerCycle()
	k := extractor.NumBins()

	binned := mat.NewDense(cyclesInBlock, k, nil)
	times := make([]float64, cyclesInBlock)
	values := make([]float64, cyclesInBlock)

	for row, nb := range chosen {
		cycleIndices, err := FindNearbySpectra(d.sl, nb.index, cyclesInBlock, specPerCycle)
		if err != nil {
			return err
		}
		for i, ci := range cycleIndices {
			s, err := d.sl.Spectrum(ci)
			if err != nil {
				return err
			}
			t, ok := s.StartTime()
			if !ok {
				return ErrMissingRetentionTime
			}
			times[i] = t
			extractor.Extract(s, binned, i, 1.0)
		}
		for col := 0; col < k; col++ {
			for i := 0; i < cyclesInBlock; i++ {
				values[i] = binned.At(i, col)
			}
			sp, err := spline.New(times, values)
			if err != nil {
				return err
			}
			signal.Set(row, col, math.Max(0, sp.Evaluate(targetTime)))
		}
	}
	return nil
}

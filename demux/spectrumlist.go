package demux

import (
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/prismms/msdemux/maskcodec"
	"github.com/prismms/msdemux/msdata"
	"github.com/prismms/msdemux/nnls"
)

// mapEntry addresses one output spectrum: the original it derives from
// and which of its demux windows it carries.
type mapEntry struct {
	msLevel        int
	originalIndex  int
	precursorIndex int
	demuxIndex     int
}

// lastSolution is the one-entry solve cache. Every demux window of one
// original spectrum shares the same solution, and the expanded list is
// consumed in order, so caching exactly one block removes the redundant
// solves without real memory cost.
type lastSolution struct {
	valid         bool
	originalIndex int
	solution      *mat.Dense
	indices       []int
}

// SpectrumList is the demultiplexed view of a wrapped spectrum list. Its
// size is the original size expanded by precursors×overlaps per MS2
// spectrum. Construction infers the acquisition scheme and builds the
// full index map; spectrum access solves lazily.
//
// Access is serialized internally, so a SpectrumList may be shared across
// goroutines, though the one-entry solution cache rewards sequential
// consumption.
type SpectrumList struct {
	params Params
	inner  msdata.SpectrumList
	codec  *maskcodec.Codec
	dm     Demultiplexer
	solver *nnls.Solver

	entries    []mapEntry
	identities []msdata.SpectrumIdentity

	mu   sync.Mutex
	last lastSolution
}

// NewSpectrumList wraps inner in a demultiplexed view. The acquisition
// scheme is inferred from inner immediately; scheme inference failures
// (no MS2 spectra, varying precursor counts, missing precursor fields)
// are fatal here. A provenance method is appended to dp when given.
//
// Per-access failures (insufficient neighbors, missing retention times,
// missing fill times) surface from Spectrum; the facade never emits a
// partially demultiplexed spectrum.
func NewSpectrumList(inner msdata.SpectrumList, p Params, dp *msdata.DataProcessing) (*SpectrumList, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	codec, err := maskcodec.New(inner, maskcodec.Params{
		MinimumWindowSize: p.MinimumWindowSize,
		VariableFill:      p.VariableFill,
	})
	if err != nil {
		return nil, err
	}

	cached, err := msdata.NewCachingList(inner, msdata.DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	sl := &SpectrumList{
		params: p,
		inner:  cached,
		codec:  codec,
		solver: &nnls.Solver{MaxIter: p.NNLSMaxIter, Eps: p.NNLSEps},
	}
	switch p.Optimization {
	case OptimizationMSX:
		sl.dm = NewMSX(cached, codec, p)
	case OptimizationOverlapOnly:
		sl.dm = NewOverlap(cached, codec, p)
	default:
		return nil, ErrBadOptimization
	}

	if err := sl.buildIndexMap(); err != nil {
		return nil, err
	}
	if dp != nil {
		dp.Append(codec.ProcessingMethod())
	}
	return sl, nil
}

// buildIndexMap scans the original list once, expanding each MS2 spectrum
// into precursors×overlaps entries and rewriting every native id.
func (sl *SpectrumList) buildIndexMap() error {
	perSpectrum := sl.codec.PrecursorsPerSpectrum() * sl.codec.OverlapsPerCycle()
	for i := 0; i < sl.inner.Size(); i++ {
		ident, err := sl.inner.Identity(i)
		if err != nil {
			return err
		}
		s, err := sl.inner.Spectrum(i)
		if err != nil {
			return err
		}

		count := 1
		if s.MSLevel == 2 {
			count = perSpectrum
		}
		for demuxIndex := 0; demuxIndex < count; demuxIndex++ {
			entry := mapEntry{
				msLevel:        s.MSLevel,
				originalIndex:  i,
				precursorIndex: demuxIndex / sl.codec.OverlapsPerCycle(),
				demuxIndex:     demuxIndex,
			}
			newIndex := len(sl.identities)
			sl.entries = append(sl.entries, entry)
			sl.identities = append(sl.identities, msdata.SpectrumIdentity{
				Index: newIndex,
				ID:    msdata.InjectScanID(ident.ID, newIndex+1, demuxIndex),
			})
		}
	}
	return nil
}

// Size returns the expanded list length.
func (sl *SpectrumList) Size() int { return len(sl.entries) }

// Identity returns the precomputed identity of output spectrum i.
func (sl *SpectrumList) Identity(i int) (msdata.SpectrumIdentity, error) {
	if i < 0 || i >= len(sl.identities) {
		return msdata.SpectrumIdentity{}, msdata.ErrIndexRange
	}
	return sl.identities[i], nil
}

// Spectrum returns output spectrum i: a copy of the original with
// rewritten identity for MS1 rows, a demultiplexed rewrite for MS2 rows.
func (sl *SpectrumList) Spectrum(i int) (*msdata.Spectrum, error) {
	if i < 0 || i >= len(sl.entries) {
		return nil, msdata.ErrIndexRange
	}
	entry := sl.entries[i]

	orig, err := sl.inner.Spectrum(entry.originalIndex)
	if err != nil {
		return nil, err
	}
	if entry.msLevel != 2 {
		out := orig.Clone()
		out.Index = i
		out.ID = sl.identities[i].ID
		return out, nil
	}
	return sl.demuxSpectrum(i, entry, orig)
}

// solveFor returns the cached solution for the original index, solving
// and replacing the cache entry on miss. Empty spectra yield a nil
// solution. Callers hold sl.mu.
func (sl *SpectrumList) solveFor(originalIndex int, orig *msdata.Spectrum) (*lastSolution, error) {
	if sl.last.valid && sl.last.originalIndex == originalIndex {
		return &sl.last, nil
	}

	if len(orig.Mzs) == 0 {
		// Nothing to solve; the output spectra stay empty.
		sl.last = lastSolution{valid: true, originalIndex: originalIndex}
		return &sl.last, nil
	}

	muxIndices, err := sl.dm.BlockIndices(originalIndex)
	if err != nil {
		return nil, err
	}
	block, err := sl.dm.BuildBlock(originalIndex, muxIndices)
	if err != nil {
		return nil, err
	}

	_, n := block.Masks.Dims()
	_, k := block.Signal.Dims()
	solution := mat.NewDense(n, k, nil)
	if err := sl.solver.SolveAll(block.Masks, block.Signal, solution); err != nil {
		return nil, err
	}
	if sl.params.DebugWriter != nil {
		if err := sl.params.DebugWriter.WriteBlock(uint64(originalIndex), block.Masks, block.Signal, solution); err != nil {
			return nil, err
		}
	}

	sl.last = lastSolution{
		valid:         true,
		originalIndex: originalIndex,
		solution:      solution,
		indices:       block.Indices,
	}
	return &sl.last, nil
}

// demuxSpectrum rewrites one demultiplexed output spectrum from the
// cached (or freshly solved) block solution.
func (sl *SpectrumList) demuxSpectrum(index int, entry mapEntry, orig *msdata.Spectrum) (*msdata.Spectrum, error) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	solved, err := sl.solveFor(entry.originalIndex, orig)
	if err != nil {
		return nil, err
	}

	out := orig.Clone()
	out.Index = index
	out.ID = sl.identities[index].ID

	// The isolation window of this output channel, addressed through the
	// target's own window indices.
	absIndices, err := sl.codec.SpectrumToIndices(orig)
	if err != nil {
		return nil, err
	}
	window, err := sl.codec.IsolationWindow(absIndices[entry.demuxIndex])
	if err != nil {
		return nil, err
	}
	targetMz, halfWidth := window.Target()

	// Collapse the precursor list to the single demultiplexed window.
	prec := out.Precursors[entry.precursorIndex]
	prec.Isolation = msdata.IsolationTarget{
		TargetMz:    targetMz,
		LowerOffset: halfWidth,
		UpperOffset: halfWidth,
	}
	if len(prec.SelectedIons) > 0 {
		prec.SelectedIons[0].Mz = targetMz
		// Splitting the window invalidates the recorded precursor
		// intensity.
		prec.SelectedIons[0].Intensity = 0
	}
	out.Precursors = []msdata.Precursor{prec}

	// Propagate the new identity into the back-references.
	for pi := range out.Precursors {
		out.Precursors[pi].SpectrumID = out.ID
	}
	for si := range out.Scans {
		out.Scans[si].SpectrumID = out.ID
	}

	out.Mzs, out.Intensities = sl.rebuildArrays(entry, orig, solved)
	return out, nil
}

// rebuildArrays emits the demultiplexed peak arrays from the solution.
// Rows listed in solved.indices jointly cover the multiplexed input, so
// in rescale mode each bin's original intensity is split in proportion to
// this channel's share of that sum.
func (sl *SpectrumList) rebuildArrays(entry mapEntry, orig *msdata.Spectrum, solved *lastSolution) (mzs, intensities []float64) {
	if solved.solution == nil {
		return nil, nil
	}
	row := solved.solution.RawRowView(solved.indices[entry.demuxIndex])

	summed := make([]float64, len(row))
	for _, r := range solved.indices {
		for i, v := range solved.solution.RawRowView(r) {
			summed[i] += v
		}
	}

	for i, rv := range row {
		// Zero bins are dropped except in profile spectra, whose even m/z
		// spacing downstream centroiders rely on.
		if rv <= 0 && !orig.Profile {
			continue
		}
		ov := orig.Intensities[i]
		if ov <= 0 && !orig.Profile {
			continue
		}
		mzs = append(mzs, orig.Mzs[i])
		switch {
		case sl.params.VariableFill:
			intensities = append(intensities, rv)
		case summed[i] <= 0:
			intensities = append(intensities, 0)
		default:
			intensities = append(intensities, ov*rv/summed[i])
		}
	}
	return mzs, intensities
}

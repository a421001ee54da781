package maskcodec

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/prismms/msdemux/msdata"
	"github.com/prismms/msdemux/mzwin"
)

// demuxMethodName is the provenance tag appended to the data-processing
// chain of a demultiplexed list. Downstream pipelines key worker handling
// off the "Demultiplexing" substring.
const demuxMethodName = "PRISM Demultiplexing"

// Codec holds an inferred acquisition scheme and maps spectra onto
// design-matrix rows. Immutable after construction.
type Codec struct {
	windows               []mzwin.IsolationWindow
	spectraPerCycle       int
	precursorsPerSpectrum int
	overlapsPerCycle      int
	variableFill          bool
}

// New infers the acquisition scheme from the spectrum list.
func New(sl msdata.SpectrumList, p Params) (*Codec, error) {
	if p.MinimumWindowSize <= 0 {
		p.MinimumWindowSize = DefaultMinimumWindowSize
	}
	c := &Codec{variableFill: p.VariableFill}
	if err := c.identifyCycle(sl); err != nil {
		return nil, err
	}
	c.identifyOverlap(p.MinimumWindowSize)
	return c, nil
}

// precursorKey formats an isolation center so that sub-centipoint jitter
// between cycles maps to the same precursor window.
func precursorKey(low, high float64) string {
	return fmt.Sprintf("%.2f", (low+high)/2.0)
}

// identifyCycle fixes the precursor count and collects one isolation
// window per distinct precursor, stopping once it has re-seen twice as
// many mappings as the map holds without adding a new one.
func (c *Codec) identifyCycle(sl msdata.SpectrumList) error {
	size := sl.Size()

	// Find the first MS2 spectrum; it fixes the precursor count.
	index := 0
	for ; index < size; index++ {
		s, err := sl.Spectrum(index)
		if err != nil {
			return err
		}
		if s.MSLevel != 2 {
			continue
		}
		c.precursorsPerSpectrum = len(s.Precursors)
		break
	}
	if index == size {
		return ErrNoMS2
	}
	if c.precursorsPerSpectrum == 0 {
		return ErrNoPrecursors
	}

	seen := make(map[string]mzwin.IsolationWindow)
	mappedAlready := 0
	for ; index < size && mappedAlready <= 2*len(seen); index++ {
		s, err := sl.Spectrum(index)
		if err != nil {
			return err
		}
		if s.MSLevel != 2 {
			continue
		}
		if len(s.Precursors) == 0 {
			return ErrNoPrecursors
		}
		if len(s.Precursors) != c.precursorsPerSpectrum {
			return ErrVaryingPrecursors
		}
		for i := range s.Precursors {
			low, high, err := s.Precursors[i].Bounds()
			if err != nil {
				return err
			}
			key := precursorKey(low, high)
			if _, ok := seen[key]; ok {
				mappedAlready++
				continue
			}
			mappedAlready = 0
			seen[key] = mzwin.NewIsolationWindow(low, high)
		}
	}
	if mappedAlready <= 2*len(seen) {
		// The list ran out before the cycle proved stable.
		return ErrTooFewSpectra
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.ParseFloat(keys[i], 64)
		b, _ := strconv.ParseFloat(keys[j], 64)
		return a < b
	})
	c.windows = make([]mzwin.IsolationWindow, 0, len(keys))
	for _, k := range keys {
		c.windows = append(c.windows, seen[k])
	}

	c.spectraPerCycle = len(c.windows) / c.precursorsPerSpectrum
	return nil
}

// boundary is one candidate demux-window edge.
type boundary struct {
	mz   float64
	hash mzwin.MZHash
}

// identifyOverlap splits the inferred precursor windows at their shared
// boundaries and replaces them with the used sub-windows. The maximum
// multiplicity with which any sub-window is covered becomes the overlap
// count of the scheme.
func (c *Codec) identifyOverlap(minimumWindowSize float64) {
	if len(c.windows) <= 1 {
		c.overlapsPerCycle = 1
		return
	}
	minHash := mzwin.Hash(minimumWindowSize)

	// Collect the distinct boundaries on hashes.
	uniq := make(map[mzwin.MZHash]boundary)
	for _, w := range c.windows {
		for _, mz := range []float64{w.LowMz, w.HighMz} {
			h := mzwin.Hash(mz)
			if _, ok := uniq[h]; !ok {
				uniq[h] = boundary{mz: mz, hash: h}
			}
		}
	}
	bs := make([]boundary, 0, len(uniq))
	for _, b := range uniq {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].hash < bs[j].hash })

	// Merge adjacent boundaries closer than the tolerance to their
	// midpoint; the pair is consumed.
	exact := make([]boundary, 0, len(bs))
	i := 0
	for i+1 < len(bs) {
		if bs[i+1].hash-bs[i].hash > minHash {
			exact = append(exact, bs[i])
			i++
			continue
		}
		mid := (bs[i].mz + bs[i+1].mz) / 2.0
		exact = append(exact, boundary{mz: mid, hash: mzwin.Hash(mid)})
		i += 2
	}
	if i < len(bs) {
		exact = append(exact, bs[i])
	}

	// Candidate sub-windows between adjacent boundaries.
	candidates := make([]mzwin.IsolationWindow, 0, len(exact)-1)
	for j := 0; j+1 < len(exact); j++ {
		candidates = append(candidates, mzwin.NewIsolationWindow(exact[j].mz, exact[j+1].mz))
	}

	// A candidate is used by every original window containing its center.
	counts := make([]int, len(candidates))
	for _, w := range c.windows {
		for j := range candidates {
			if w.Window.ContainsCenter(candidates[j].Window) {
				counts[j]++
			}
		}
	}

	maxCount := 0
	used := make([]mzwin.IsolationWindow, 0, len(candidates))
	for j := range candidates {
		if counts[j] == 0 {
			continue
		}
		if counts[j] > maxCount {
			maxCount = counts[j]
		}
		used = append(used, candidates[j])
	}
	c.overlapsPerCycle = maxCount
	c.windows = used
}

// NumWindows returns the number of unique demultiplexed isolation windows.
func (c *Codec) NumWindows() int { return len(c.windows) }

// SpectraPerCycle returns the number of MS2 spectra needed to cover every
// precursor window once, ignoring overlap.
func (c *Codec) SpectraPerCycle() int { return c.spectraPerCycle }

// PrecursorsPerSpectrum returns the invariant precursor count per MS2.
func (c *Codec) PrecursorsPerSpectrum() int { return c.precursorsPerSpectrum }

// OverlapsPerCycle returns the overlap multiplicity; 1 means pure MSX.
func (c *Codec) OverlapsPerCycle() int { return c.overlapsPerCycle }

// DemuxBlockSize returns the design-matrix width:
// spectraPerCycle * precursorsPerSpectrum * overlapsPerCycle.
func (c *Codec) DemuxBlockSize() int {
	return c.spectraPerCycle * c.precursorsPerSpectrum * c.overlapsPerCycle
}

// IsolationWindow returns the full-precision window at design column i.
func (c *Codec) IsolationWindow(i int) (mzwin.IsolationWindow, error) {
	if i < 0 || i >= len(c.windows) {
		return mzwin.IsolationWindow{}, ErrWindowIndex
	}
	return c.windows[i], nil
}

// SpectrumToIndices returns the design-matrix columns of the demultiplexed
// windows composing the given spectrum, ascending.
func (c *Codec) SpectrumToIndices(s *msdata.Spectrum) ([]int, error) {
	if len(s.Precursors) != c.precursorsPerSpectrum {
		return nil, ErrVaryingPrecursors
	}

	precWindows := make([]mzwin.Window, 0, len(s.Precursors))
	for i := range s.Precursors {
		low, high, err := s.Precursors[i].Bounds()
		if err != nil {
			return nil, err
		}
		precWindows = append(precWindows, mzwin.Window{Low: mzwin.Hash(low), High: mzwin.Hash(high)})
	}
	sort.Slice(precWindows, func(i, j int) bool { return precWindows[i].Less(precWindows[j]) })

	indices := make([]int, 0, c.overlapsPerCycle*c.precursorsPerSpectrum)
	cursor := 0
	for _, w := range precWindows {
		for si := cursor; si < len(c.windows); si++ {
			if w.High <= c.windows[si].Window.Low {
				// All remaining candidates start past this precursor.
				break
			}
			if w.ContainsCenter(c.windows[si].Window) {
				indices = append(indices, si)
				cursor = si + 1
			}
		}
	}
	if len(indices) != c.overlapsPerCycle*c.precursorsPerSpectrum {
		return nil, ErrDemuxMarks
	}
	return indices, nil
}

// markRow writes the spectrum's marks into row, which must already be
// zeroed and at least DemuxBlockSize long.
func (c *Codec) markRow(s *msdata.Spectrum, row []float64, weight float64) error {
	indices, err := c.SpectrumToIndices(s)
	if err != nil {
		return err
	}
	if !c.variableFill {
		for _, idx := range indices {
			row[idx] = weight
		}
		return nil
	}

	// Each mark carries the fill duration (seconds) of the precursor whose
	// window contains that candidate's center.
	for _, idx := range indices {
		w := c.windows[idx].Window
		for pi := range s.Precursors {
			low, high, err := s.Precursors[pi].Bounds()
			if err != nil {
				return err
			}
			pw := mzwin.Window{Low: mzwin.Hash(low), High: mzwin.Hash(high)}
			if !pw.ContainsCenter(w) {
				continue
			}
			fill, err := s.Precursors[pi].FillTime()
			if err != nil {
				return err
			}
			row[idx] = weight * fill / 1000.0
			break
		}
	}
	return nil
}

// Mask returns the spectrum's design row as a fresh vector of length
// DemuxBlockSize.
func (c *Codec) Mask(s *msdata.Spectrum, weight float64) ([]float64, error) {
	row := make([]float64, c.DemuxBlockSize())
	if err := c.markRow(s, row, weight); err != nil {
		return nil, err
	}
	return row, nil
}

// MaskRow zeroes row rowIdx of dst and writes the spectrum's design row
// into it. dst must have DemuxBlockSize columns.
func (c *Codec) MaskRow(s *msdata.Spectrum, dst *mat.Dense, rowIdx int, weight float64) error {
	row := dst.RawRowView(rowIdx)
	for i := range row {
		row[i] = 0
	}
	return c.markRow(s, row, weight)
}

// ProcessingMethod returns the provenance stamp recorded by lists that
// demultiplex with this codec.
func (c *Codec) ProcessingMethod() msdata.ProcessingMethod {
	return msdata.ProcessingMethod{
		UserParams: []msdata.UserParam{{Name: demuxMethodName}},
	}
}

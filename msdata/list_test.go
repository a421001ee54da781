package msdata_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismms/msdemux/msdata"
)

func ms2Spectrum(id string, target, lower, upper float64) *msdata.Spectrum {
	return &msdata.Spectrum{
		ID:      id,
		MSLevel: 2,
		Precursors: []msdata.Precursor{{
			Isolation: msdata.IsolationTarget{TargetMz: target, LowerOffset: lower, UpperOffset: upper},
		}},
	}
}

// TestMemoryList_IndexingAndBounds verifies Append indexing and range errors.
func TestMemoryList_IndexingAndBounds(t *testing.T) {
	list := &msdata.MemoryList{}
	list.Append(&msdata.Spectrum{ID: "scan=0", MSLevel: 1})
	list.Append(ms2Spectrum("scan=1", 500, 8, 8))

	assert.Equal(t, 2, list.Size())

	ident, err := list.Identity(1)
	require.NoError(t, err)
	assert.Equal(t, 1, ident.Index)
	assert.Equal(t, "scan=1", ident.ID)

	s, err := list.Spectrum(1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Index, "Append assigns the list index")

	_, err = list.Spectrum(2)
	assert.ErrorIs(t, err, msdata.ErrIndexRange)
	_, err = list.Identity(-1)
	assert.ErrorIs(t, err, msdata.ErrIndexRange)
}

// countingList wraps MemoryList and counts Spectrum reads.
type countingList struct {
	msdata.MemoryList
	reads int
}

func (l *countingList) Spectrum(i int) (*msdata.Spectrum, error) {
	l.reads++
	return l.MemoryList.Spectrum(i)
}

// TestCachingList_ReadThrough verifies repeated reads hit the LRU.
func TestCachingList_ReadThrough(t *testing.T) {
	inner := &countingList{}
	for i := 0; i < 5; i++ {
		inner.Append(ms2Spectrum("scan=0", 500, 8, 8))
	}

	cached, err := msdata.NewCachingList(inner, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, cached.Size())

	for round := 0; round < 3; round++ {
		for i := 0; i < 4; i++ {
			_, err := cached.Spectrum(i)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 4, inner.reads, "each of four spectra read once")

	// A fifth index evicts and re-reads once capacity is exceeded.
	_, err = cached.Spectrum(4)
	require.NoError(t, err)
	assert.Equal(t, 5, inner.reads)
}

// TestPrecursor_Bounds verifies bound derivation and the missing-field error.
func TestPrecursor_Bounds(t *testing.T) {
	p := msdata.Precursor{Isolation: msdata.IsolationTarget{TargetMz: 500, LowerOffset: 8, UpperOffset: 8}}
	low, high, err := p.Bounds()
	require.NoError(t, err)
	assert.Equal(t, 492.0, low)
	assert.Equal(t, 508.0, high)

	for _, bad := range []msdata.IsolationTarget{
		{TargetMz: 0, LowerOffset: 8, UpperOffset: 8},
		{TargetMz: 500, LowerOffset: 0, UpperOffset: 8},
		{TargetMz: 500, LowerOffset: 8, UpperOffset: -1},
	} {
		p := msdata.Precursor{Isolation: bad}
		_, _, err := p.Bounds()
		assert.ErrorIs(t, err, msdata.ErrMissingPrecursorField)
	}
}

// TestPrecursor_FillTime verifies MultiFillTime parsing and its absence.
func TestPrecursor_FillTime(t *testing.T) {
	p := msdata.Precursor{UserParams: []msdata.UserParam{{Name: msdata.MultiFillTimeParam, Value: "12.5"}}}
	ms, err := p.FillTime()
	require.NoError(t, err)
	assert.Equal(t, 12.5, ms)

	p = msdata.Precursor{}
	_, err = p.FillTime()
	assert.True(t, errors.Is(err, msdata.ErrFillTimeAbsent))

	p = msdata.Precursor{UserParams: []msdata.UserParam{{Name: msdata.MultiFillTimeParam, Value: "abc"}}}
	_, err = p.FillTime()
	assert.ErrorIs(t, err, msdata.ErrFillTimeAbsent)
}

// TestSpectrum_Clone verifies clones own their arrays and nested values.
func TestSpectrum_Clone(t *testing.T) {
	s := ms2Spectrum("scan=3", 500, 8, 8)
	s.Mzs = []float64{100, 200}
	s.Intensities = []float64{1, 2}
	s.Scans = []msdata.Scan{{SpectrumID: "scan=3", StartTime: 12.5, HasStartTime: true}}
	s.Precursors[0].SelectedIons = []msdata.SelectedIon{{Mz: 500.2, Intensity: 99}}

	c := s.Clone()
	c.Mzs[0] = -1
	c.Intensities[0] = -1
	c.Scans[0].SpectrumID = "changed"
	c.Precursors[0].SelectedIons[0].Mz = -1

	assert.Equal(t, 100.0, s.Mzs[0])
	assert.Equal(t, 1.0, s.Intensities[0])
	assert.Equal(t, "scan=3", s.Scans[0].SpectrumID)
	assert.Equal(t, 500.2, s.Precursors[0].SelectedIons[0].Mz)

	rt, ok := c.StartTime()
	assert.True(t, ok)
	assert.Equal(t, 12.5, rt)
}

// TestDataProcessing_Append verifies order assignment and software-ref
// inheritance.
func TestDataProcessing_Append(t *testing.T) {
	dp := &msdata.DataProcessing{}
	dp.Append(msdata.ProcessingMethod{SoftwareRef: "acme"})
	dp.Append(msdata.ProcessingMethod{UserParams: []msdata.UserParam{{Name: "Demultiplexing"}}})

	require.Len(t, dp.Methods, 2)
	assert.Equal(t, 0, dp.Methods[0].Order)
	assert.Equal(t, 1, dp.Methods[1].Order)
	assert.Equal(t, "acme", dp.Methods[1].SoftwareRef, "inherits the first method's software")
}

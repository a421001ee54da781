package simdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismms/msdemux/msdata"
	"github.com/prismms/msdemux/simdata"
)

// TestNewOverlapScheme_Layout verifies the interleaved half-shifted
// sub-cycles.
func TestNewOverlapScheme_Layout(t *testing.T) {
	p := simdata.DefaultParams()
	p.NumOverlaps = 1
	p.NumMs2ScansPerCycle = 25

	scheme, err := simdata.NewOverlapScheme(p)
	require.NoError(t, err)
	require.Len(t, scheme.Scans, 2*(1+25))

	assert.Equal(t, 1, scheme.Scans[0].MSLevel)
	assert.Equal(t, 1, scheme.Scans[26].MSLevel)

	// Window width (900-500)/25 = 16; sub-cycle B is shifted by 8.
	a0 := scheme.Scans[1]
	require.Equal(t, 2, a0.MSLevel)
	require.Len(t, a0.Precursors, 1)
	assert.InDelta(t, 508.0, a0.Precursors[0].CenterMz, 1e-9)
	assert.InDelta(t, 16.0, a0.Precursors[0].WidthMz, 1e-9)

	b0 := scheme.Scans[27]
	assert.InDelta(t, 516.0, b0.Precursors[0].CenterMz, 1e-9)
}

// TestNewSimpleScheme_MSXStriding verifies multi-precursor co-isolation.
func TestNewSimpleScheme_MSXStriding(t *testing.T) {
	p := simdata.DefaultParams()
	p.NumOverlaps = 0
	p.NumPrecursorsPerSpectrum = 3
	p.NumMs2ScansPerCycle = 9

	scheme, err := simdata.NewSimpleScheme(p)
	require.NoError(t, err)
	require.Len(t, scheme.Scans, 10)

	ev := scheme.Scans[1]
	require.Len(t, ev.Precursors, 3)
	// 27 windows of width 400/27; scan 0 takes windows 0, 9, 18.
	width := 400.0 / 27.0
	assert.InDelta(t, 500+width/2, ev.Precursors[0].CenterMz, 1e-9)
	assert.InDelta(t, 500+width/2+9*width, ev.Precursors[1].CenterMz, 1e-9)
	assert.InDelta(t, 500+width/2+18*width, ev.Precursors[2].CenterMz, 1e-9)
}

// TestNewScheme_Validation verifies parameter rejection.
func TestNewScheme_Validation(t *testing.T) {
	p := simdata.DefaultParams()
	p.NumMs2ScansPerCycle = 0
	_, err := simdata.NewScheme(p)
	assert.ErrorIs(t, err, simdata.ErrBadSchemeParams)

	p = simdata.DefaultParams()
	p.EndPrecursorMz = p.StartPrecursorMz
	_, err = simdata.NewScheme(p)
	assert.ErrorIs(t, err, simdata.ErrBadSchemeParams)
}

// TestSimpleAnalyte_Deterministic verifies seeding fixes the compound.
func TestSimpleAnalyte_Deterministic(t *testing.T) {
	a := simdata.NewSimpleAnalyte(7, 400, 900, 200, 1200)
	b := simdata.NewSimpleAnalyte(7, 400, 900, 200, 1200)

	assert.Equal(t, a.PrecursorMz(), b.PrecursorMz())
	assert.Equal(t, a.FragmentMzs(), b.FragmentMzs())
	assert.Equal(t, a.FragmentIntensities(), b.FragmentIntensities())

	require.Len(t, a.FragmentMzs(), 5)
	for i := 1; i < len(a.FragmentMzs()); i++ {
		assert.Less(t, a.FragmentMzs()[i-1], a.FragmentMzs()[i], "fragments ascend")
	}
	assert.GreaterOrEqual(t, a.PrecursorMz(), 400.0)
	assert.LessOrEqual(t, a.PrecursorMz(), 900.0)
}

// TestBuildList_StructureAndTimes verifies ids, levels, precursors, and
// monotone start times.
func TestBuildList_StructureAndTimes(t *testing.T) {
	p := simdata.DefaultParams()
	p.NumPrecursorsPerSpectrum = 1
	p.NumOverlaps = 1
	p.NumCycles = 3
	p.NumMs2ScansPerCycle = 5

	list, err := simdata.BuildList(p)
	require.NoError(t, err)
	assert.Equal(t, 3*2*(1+5), list.Size())

	prev := -1.0
	for i := 0; i < list.Size(); i++ {
		s, err := list.Spectrum(i)
		require.NoError(t, err)

		scan, ok := msdata.ScanNumber(s.ID)
		require.True(t, ok)
		assert.Equal(t, i, scan)

		rt, ok := s.StartTime()
		require.True(t, ok)
		assert.Greater(t, rt, prev, "start times ascend")
		prev = rt

		switch s.MSLevel {
		case 1:
			assert.Empty(t, s.Precursors)
		case 2:
			require.Len(t, s.Precursors, 1)
			_, _, err := s.Precursors[0].Bounds()
			assert.NoError(t, err)
		default:
			t.Fatalf("unexpected ms level %d", s.MSLevel)
		}
	}
}

// TestInstrument_FillTimes verifies the MultiFillTime user parameter is
// attached when configured.
func TestInstrument_FillTimes(t *testing.T) {
	p := simdata.DefaultParams()
	p.NumPrecursorsPerSpectrum = 1
	p.NumOverlaps = 1
	p.NumCycles = 2
	p.NumMs2ScansPerCycle = 4
	p.FillTimeMs = 12.5

	list, err := simdata.BuildList(p)
	require.NoError(t, err)
	for i := 0; i < list.Size(); i++ {
		s, err := list.Spectrum(i)
		require.NoError(t, err)
		for pi := range s.Precursors {
			ms, err := s.Precursors[pi].FillTime()
			require.NoError(t, err)
			assert.Equal(t, 12.5, ms)
		}
	}
}

// TestConstantElution_IsolationFiltering verifies MS2 spectra only record
// fragments when the analyte falls inside an isolation window.
func TestConstantElution_IsolationFiltering(t *testing.T) {
	p := simdata.DefaultParams()
	p.NumPrecursorsPerSpectrum = 1
	p.NumOverlaps = 0
	p.NumCycles = 1
	p.NumMs2ScansPerCycle = 4

	scheme, err := simdata.NewScheme(p)
	require.NoError(t, err)
	analyte := &simdata.FixedAnalyte{
		Precursor: 510,
		Mzs:       []float64{450, 600},
		Rel:       []float64{1, 0.5},
	}
	ins := &simdata.Instrument{
		Scheme:  scheme,
		Elution: &simdata.ConstantElution{Compound: analyte, Flux: 100},
	}
	list := ins.Run(1)

	// Window 0 is [500, 600]: only the first MS2 sees the fragments.
	s1, err := list.Spectrum(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{450, 600}, s1.Mzs)
	assert.Equal(t, []float64{100, 50}, s1.Intensities)

	for i := 2; i <= 4; i++ {
		s, err := list.Spectrum(i)
		require.NoError(t, err)
		assert.Empty(t, s.Mzs, "spectrum %d", i)
	}

	// The MS1 sees the precursor itself.
	s0, err := list.Spectrum(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{510.0}, s0.Mzs)
	assert.Equal(t, []float64{100.0}, s0.Intensities)
}

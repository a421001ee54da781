package simdata

import (
	"math"
	"math/rand"
	"sort"
)

// numFragments is the fragment count of a simulated analyte.
const numFragments = 5

// Analyte is a simulated compound: one precursor m/z and a fixed fragment
// pattern.
type Analyte interface {
	PrecursorMz() float64
	FragmentMzs() []float64
	FragmentIntensities() []float64
}

// SimpleAnalyte draws a seeded random precursor m/z and fragment pattern,
// so the same seed always describes the same compound.
type SimpleAnalyte struct {
	precursorMz float64
	mzs         []float64
	intensities []float64
}

// NewSimpleAnalyte builds an analyte from a seed and the precursor and
// fragment m/z ranges.
func NewSimpleAnalyte(seed int64, startPrecursorMz, endPrecursorMz, startFragmentMz, endFragmentMz float64) *SimpleAnalyte {
	rng := rand.New(rand.NewSource(seed))
	a := &SimpleAnalyte{
		precursorMz: startPrecursorMz + rng.Float64()*(endPrecursorMz-startPrecursorMz),
	}

	type frag struct{ mz, rel float64 }
	frags := make([]frag, numFragments)
	for i := range frags {
		frags[i] = frag{
			mz:  startFragmentMz + rng.Float64()*(endFragmentMz-startFragmentMz),
			rel: rng.Float64(),
		}
	}
	sort.Slice(frags, func(i, j int) bool { return frags[i].mz < frags[j].mz })
	for _, f := range frags {
		a.mzs = append(a.mzs, f.mz)
		a.intensities = append(a.intensities, f.rel)
	}
	return a
}

// PrecursorMz returns the precursor m/z.
func (a *SimpleAnalyte) PrecursorMz() float64 { return a.precursorMz }

// FragmentMzs returns the fragment m/z values, ascending.
func (a *SimpleAnalyte) FragmentMzs() []float64 { return a.mzs }

// FragmentIntensities returns the relative fragment intensities, parallel
// to FragmentMzs.
func (a *SimpleAnalyte) FragmentIntensities() []float64 { return a.intensities }

// FixedAnalyte is an analyte with explicit precursor and fragments, for
// tests that need full control of the pattern.
type FixedAnalyte struct {
	Precursor float64
	Mzs       []float64
	Rel       []float64
}

// PrecursorMz returns the precursor m/z.
func (a *FixedAnalyte) PrecursorMz() float64 { return a.Precursor }

// FragmentMzs returns the fragment m/z values.
func (a *FixedAnalyte) FragmentMzs() []float64 { return a.Mzs }

// FragmentIntensities returns the relative fragment intensities.
func (a *FixedAnalyte) FragmentIntensities() []float64 { return a.Rel }

// AnalyteIntensity pairs an analyte index with its current ion flux.
type AnalyteIntensity struct {
	Index     int
	IonsPerMs float64
}

// Elution decides which analytes are emitting at a given clock time.
type Elution interface {
	// Active returns the analyte indices eluting at time t (minutes) and
	// their ion flux.
	Active(t float64) []AnalyteIntensity

	// Analyte resolves an analyte index to its compound.
	Analyte(index int) Analyte
}

// SineElution elutes one analyte per period as a Gaussian peak whose
// height is modulated by a slow sine, so successive peaks differ.
type SineElution struct {
	Sigma      float64
	Period     float64
	SinePeriod float64

	startPrecursorMz float64
	endPrecursorMz   float64
	startFragmentMz  float64
	endFragmentMz    float64

	analytes map[int]Analyte
}

// NewSineElution builds the default elution profile over the given
// precursor and fragment ranges.
func NewSineElution(startPrecursorMz, endPrecursorMz, startFragmentMz, endFragmentMz float64) *SineElution {
	return &SineElution{
		Sigma:            1.0,
		Period:           5.0,
		SinePeriod:       50.0,
		startPrecursorMz: startPrecursorMz,
		endPrecursorMz:   endPrecursorMz,
		startFragmentMz:  startFragmentMz,
		endFragmentMz:    endFragmentMz,
		analytes:         make(map[int]Analyte),
	}
}

// normalPDF is the Gaussian density at x.
func normalPDF(x, mu, sigma float64) float64 {
	d := (x - mu) / sigma
	return math.Exp(-d*d/2.0) / (math.Sqrt(2.0*math.Pi) * sigma)
}

// Active returns the single analyte eluting at t.
func (e *SineElution) Active(t float64) []AnalyteIntensity {
	scale := 1.5 + math.Sin(t*2.0*math.Pi/e.SinePeriod)
	within := math.Mod(t, e.Period)
	flux := scale * normalPDF(within, e.Period/2.0, e.Sigma)
	return []AnalyteIntensity{{Index: int(math.Floor(t / e.Period)), IonsPerMs: flux}}
}

// Analyte resolves (and caches) the compound eluting in peak slot index.
func (e *SineElution) Analyte(index int) Analyte {
	if a, ok := e.analytes[index]; ok {
		return a
	}
	a := NewSimpleAnalyte(int64(index), e.startPrecursorMz, e.endPrecursorMz, e.startFragmentMz, e.endFragmentMz)
	e.analytes[index] = a
	return a
}

// ConstantElution elutes a single analyte at a steady flux for the whole
// run. Used by reconstruction tests where the expected demultiplexed
// pattern must be exactly proportional to the analyte's.
type ConstantElution struct {
	Compound Analyte
	Flux     float64
}

// Active returns the fixed analyte at its steady flux.
func (e *ConstantElution) Active(float64) []AnalyteIntensity {
	return []AnalyteIntensity{{Index: 0, IonsPerMs: e.Flux}}
}

// Analyte returns the fixed analyte.
func (e *ConstantElution) Analyte(int) Analyte { return e.Compound }

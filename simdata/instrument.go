package simdata

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/prismms/msdemux/msdata"
)

// DefaultScanRate is the simulated scan acquisition rate in scans per
// minute.
const DefaultScanRate = 1200.0

// Params configures a simulated acquisition.
type Params struct {
	NumPrecursorsPerSpectrum int
	NumOverlaps              int
	NumCycles                int
	NumMs2ScansPerCycle      int
	StartPrecursorMz         float64
	EndPrecursorMz           float64
	StartProductMz           float64
	EndProductMz             float64

	// FillTimeMs, when positive, attaches a MultiFillTime user parameter
	// of that many milliseconds to every simulated precursor.
	FillTimeMs float64
}

// DefaultParams mirrors the historical defaults of the simulator.
func DefaultParams() Params {
	return Params{
		NumPrecursorsPerSpectrum: 3,
		NumOverlaps:              1,
		NumCycles:                10,
		NumMs2ScansPerCycle:      25,
		StartPrecursorMz:         500.0,
		EndPrecursorMz:           900.0,
		StartProductMz:           400.0,
		EndProductMz:             1200.0,
	}
}

// Instrument walks an acquisition scheme at a fixed scan rate, sampling an
// elution profile at each scan's clock time.
type Instrument struct {
	Scheme     Scheme
	Elution    Elution
	ScanRate   float64
	FillTimeMs float64
}

// mergePoint adds an (mz, intensity) pair into parallel ascending arrays,
// summing with an existing point closer than 1e-7 m/z.
func mergePoint(mzs, intensities []float64, mz, intensity float64) ([]float64, []float64) {
	const eps = 1e-7
	i := sort.SearchFloat64s(mzs, mz-eps)
	if i < len(mzs) && mzs[i] <= mz+eps {
		intensities[i] += intensity
		return mzs, intensities
	}
	mzs = append(mzs, 0)
	intensities = append(intensities, 0)
	copy(mzs[i+1:], mzs[i:])
	copy(intensities[i+1:], intensities[i:])
	mzs[i] = mz
	intensities[i] = intensity
	return mzs, intensities
}

// buildSpectrum records one scan event at the given clock time.
func (ins *Instrument) buildSpectrum(scanNum int, ev ScanEvent, t float64) *msdata.Spectrum {
	id := fmt.Sprintf("controllerType=0 controllerNumber=1 scan=%d", scanNum)
	s := &msdata.Spectrum{
		ID:      id,
		MSLevel: ev.MSLevel,
		Scans:   []msdata.Scan{{SpectrumID: id, StartTime: t, HasStartTime: true}},
	}

	var mzs, intensities []float64
	for _, active := range ins.Elution.Active(t) {
		analyte := ins.Elution.Analyte(active.Index)
		switch ev.MSLevel {
		case 1:
			mzs, intensities = mergePoint(mzs, intensities, analyte.PrecursorMz(), active.IonsPerMs)
		case 2:
			isolated := false
			for _, w := range ev.Precursors {
				if w.CenterMz-w.WidthMz/2.0 <= analyte.PrecursorMz() && analyte.PrecursorMz() <= w.CenterMz+w.WidthMz/2.0 {
					isolated = true
					break
				}
			}
			if !isolated {
				continue
			}
			fragMzs := analyte.FragmentMzs()
			fragRel := analyte.FragmentIntensities()
			for i := range fragMzs {
				mzs, intensities = mergePoint(mzs, intensities, fragMzs[i], fragRel[i]*active.IonsPerMs)
			}
		}
	}
	s.Mzs = mzs
	s.Intensities = intensities

	for _, w := range ev.Precursors {
		p := msdata.Precursor{
			SpectrumID: id,
			Isolation: msdata.IsolationTarget{
				TargetMz:    w.CenterMz,
				LowerOffset: w.WidthMz / 2.0,
				UpperOffset: w.WidthMz / 2.0,
			},
			SelectedIons: []msdata.SelectedIon{{Mz: w.CenterMz}},
		}
		if ins.FillTimeMs > 0 {
			p.UserParams = append(p.UserParams, msdata.UserParam{
				Name:  msdata.MultiFillTimeParam,
				Value: strconv.FormatFloat(ins.FillTimeMs, 'f', -1, 64),
			})
		}
		s.Precursors = append(s.Precursors, p)
	}
	return s
}

// Run records numCycles repetitions of the scheme into a fresh list.
func (ins *Instrument) Run(numCycles int) *msdata.MemoryList {
	rate := ins.ScanRate
	if rate <= 0 {
		rate = DefaultScanRate
	}
	list := &msdata.MemoryList{}
	total := numCycles * len(ins.Scheme.Scans)
	for scanNum := 0; scanNum < total; scanNum++ {
		t := float64(scanNum) / rate
		ev := ins.Scheme.Scans[scanNum%len(ins.Scheme.Scans)]
		list.Append(ins.buildSpectrum(scanNum, ev, t))
	}
	return list
}

// BuildList assembles a simulated acquisition from Params using the sine
// elution profile.
func BuildList(p Params) (*msdata.MemoryList, error) {
	scheme, err := NewScheme(p)
	if err != nil {
		return nil, err
	}
	ins := &Instrument{
		Scheme:     scheme,
		Elution:    NewSineElution(p.StartPrecursorMz, p.EndPrecursorMz, p.StartProductMz, p.EndProductMz),
		FillTimeMs: p.FillTimeMs,
	}
	return ins.Run(p.NumCycles), nil
}

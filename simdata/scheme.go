package simdata

import "errors"

// ErrBadSchemeParams indicates non-positive scan counts or an empty
// precursor m/z range.
var ErrBadSchemeParams = errors.New("simdata: scheme requires positive scan counts and a non-empty m/z range")

// PrecursorWindow is one co-isolated window of a simulated MS2 event.
type PrecursorWindow struct {
	CenterMz float64
	WidthMz  float64
}

// ScanEvent is one slot of the repeating acquisition cycle.
type ScanEvent struct {
	MSLevel    int
	Precursors []PrecursorWindow
}

// Scheme is the repeating cycle of scan events.
type Scheme struct {
	Scans        []ScanEvent
	StartProduct float64
	EndProduct   float64
}

// NewSimpleScheme lays out one MS1 scan followed by equal-width MS2
// windows covering [StartPrecursorMz, EndPrecursorMz]. With more than one
// precursor per spectrum the windows are co-isolated with a stride of
// NumMs2ScansPerCycle windows, the classic MSX layout.
func NewSimpleScheme(p Params) (Scheme, error) {
	if p.NumMs2ScansPerCycle <= 0 || p.NumPrecursorsPerSpectrum <= 0 || p.EndPrecursorMz <= p.StartPrecursorMz {
		return Scheme{}, ErrBadSchemeParams
	}
	numWindows := p.NumMs2ScansPerCycle * p.NumPrecursorsPerSpectrum
	stride := p.NumMs2ScansPerCycle

	s := Scheme{StartProduct: p.StartProductMz, EndProduct: p.EndProductMz}
	width := (p.EndPrecursorMz - p.StartPrecursorMz) / float64(numWindows)
	s.Scans = append(s.Scans, ScanEvent{MSLevel: 1})
	for scanNum := 0; scanNum < p.NumMs2ScansPerCycle; scanNum++ {
		ev := ScanEvent{MSLevel: 2}
		for k := 0; k < p.NumPrecursorsPerSpectrum; k++ {
			windowIdx := scanNum + k*stride
			center := p.StartPrecursorMz + width/2.0 + float64(windowIdx)*width
			ev.Precursors = append(ev.Precursors, PrecursorWindow{CenterMz: center, WidthMz: width})
		}
		s.Scans = append(s.Scans, ev)
	}
	return s, nil
}

// NewOverlapScheme lays out NumOverlaps+1 interleaved sub-cycles, each a
// full sweep of equal-width windows shifted by a fraction of the window
// width, so neighboring sub-cycles share boundaries rather than windows.
func NewOverlapScheme(p Params) (Scheme, error) {
	if p.NumMs2ScansPerCycle <= 0 || p.NumOverlaps < 1 || p.EndPrecursorMz <= p.StartPrecursorMz {
		return Scheme{}, ErrBadSchemeParams
	}

	s := Scheme{StartProduct: p.StartProductMz, EndProduct: p.EndProductMz}
	width := (p.EndPrecursorMz - p.StartPrecursorMz) / float64(p.NumMs2ScansPerCycle)
	for overlapNum := 0; overlapNum <= p.NumOverlaps; overlapNum++ {
		offset := float64(overlapNum) * width / float64(p.NumOverlaps+1)
		s.Scans = append(s.Scans, ScanEvent{MSLevel: 1})
		for scanNum := 0; scanNum < p.NumMs2ScansPerCycle; scanNum++ {
			center := offset + p.StartPrecursorMz + width/2.0 + float64(scanNum)*width
			s.Scans = append(s.Scans, ScanEvent{
				MSLevel:    2,
				Precursors: []PrecursorWindow{{CenterMz: center, WidthMz: width}},
			})
		}
	}
	return s, nil
}

// NewScheme picks the overlap layout when NumOverlaps > 0 and the simple
// MSX layout otherwise.
func NewScheme(p Params) (Scheme, error) {
	if p.NumOverlaps > 0 {
		return NewOverlapScheme(p)
	}
	return NewSimpleScheme(p)
}

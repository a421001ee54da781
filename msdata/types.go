package msdata

import (
	"strconv"
	"strings"
)

// MultiFillTimeParam is the user-parameter name carrying a per-precursor
// ion fill duration in milliseconds on variable-fill acquisitions.
const MultiFillTimeParam = "MultiFillTime"

// UserParam is a free-form key/value annotation attached to a precursor.
type UserParam struct {
	Name  string
	Value string
}

// SelectedIon is the ion selected for fragmentation within a precursor.
type SelectedIon struct {
	Mz        float64
	Intensity float64
}

// IsolationTarget describes a precursor isolation window as recorded by
// the instrument: a target m/z with strictly positive lower and upper
// offsets. A zero target or non-positive offset marks the field as
// missing/invalid.
type IsolationTarget struct {
	TargetMz    float64
	LowerOffset float64
	UpperOffset float64
}

// Precursor is one co-isolated precursor window of an MS2 spectrum.
type Precursor struct {
	SpectrumID   string
	Isolation    IsolationTarget
	SelectedIons []SelectedIon
	UserParams   []UserParam
}

// UserParam returns the value of the named user parameter, if present.
func (p *Precursor) UserParam(name string) (string, bool) {
	for i := range p.UserParams {
		if p.UserParams[i].Name == name {
			return p.UserParams[i].Value, true
		}
	}
	return "", false
}

// FillTime returns the MultiFillTime user parameter in milliseconds.
// Returns ErrFillTimeAbsent when the parameter is missing or malformed.
func (p *Precursor) FillTime() (float64, error) {
	v, ok := p.UserParam(MultiFillTimeParam)
	if !ok {
		return 0, ErrFillTimeAbsent
	}
	ms, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, ErrFillTimeAbsent
	}
	return ms, nil
}

// Bounds returns the full-precision isolation range of the precursor.
// Returns ErrMissingPrecursorField when the target is unset or either
// offset is non-positive.
func (p *Precursor) Bounds() (low, high float64, err error) {
	iso := p.Isolation
	if iso.TargetMz <= 0 || iso.LowerOffset <= 0 || iso.UpperOffset <= 0 {
		return 0, 0, ErrMissingPrecursorField
	}
	return iso.TargetMz - iso.LowerOffset, iso.TargetMz + iso.UpperOffset, nil
}

// clone deep-copies the precursor value.
func (p *Precursor) clone() Precursor {
	out := *p
	out.SelectedIons = append([]SelectedIon(nil), p.SelectedIons...)
	out.UserParams = append([]UserParam(nil), p.UserParams...)
	return out
}

// Scan is one scan descriptor of a spectrum, carrying its start time in
// minutes and a back-reference to the owning spectrum id.
type Scan struct {
	SpectrumID   string
	StartTime    float64
	HasStartTime bool
}

// Spectrum is one mass spectrum: metadata plus parallel m/z and intensity
// arrays. Precursors and scans are embedded values so a cloned spectrum
// can be rewritten independently of the wrapped list.
type Spectrum struct {
	Index       int
	ID          string
	MSLevel     int
	Profile     bool
	Precursors  []Precursor
	Scans       []Scan
	Mzs         []float64
	Intensities []float64
}

// Clone returns a deep copy of the spectrum that owns its arrays,
// precursors, and scan descriptors.
func (s *Spectrum) Clone() *Spectrum {
	out := *s
	out.Precursors = make([]Precursor, len(s.Precursors))
	for i := range s.Precursors {
		out.Precursors[i] = s.Precursors[i].clone()
	}
	out.Scans = append([]Scan(nil), s.Scans...)
	out.Mzs = append([]float64(nil), s.Mzs...)
	out.Intensities = append([]float64(nil), s.Intensities...)
	return &out
}

// StartTime returns the retention time (minutes) of the first scan.
func (s *Spectrum) StartTime() (float64, bool) {
	if len(s.Scans) == 0 || !s.Scans[0].HasStartTime {
		return 0, false
	}
	return s.Scans[0].StartTime, true
}

// SpectrumIdentity is the lightweight identification of a spectrum within
// a list: its position and native id string.
type SpectrumIdentity struct {
	Index int
	ID    string
}

// ProcessingMethod records one processing step applied to a spectrum list.
type ProcessingMethod struct {
	Order       int
	SoftwareRef string
	UserParams  []UserParam
}

// DataProcessing accumulates the provenance chain of a spectrum list.
type DataProcessing struct {
	Methods []ProcessingMethod
}

// Append adds a processing method, assigning it the next order value and
// inheriting the software reference of the first method when unset.
func (dp *DataProcessing) Append(m ProcessingMethod) {
	m.Order = len(dp.Methods)
	if m.SoftwareRef == "" && len(dp.Methods) > 0 {
		m.SoftwareRef = dp.Methods[0].SoftwareRef
	}
	dp.Methods = append(dp.Methods, m)
}

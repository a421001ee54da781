package peakex

import "errors"

// Sentinel errors for extractor construction.
var (
	// ErrBadTolerance indicates a non-positive tolerance value or an
	// unknown unit.
	ErrBadTolerance = errors.New("peakex: tolerance must be positive with a known unit")

	// ErrNoTargets indicates an empty target m/z grid.
	ErrNoTargets = errors.New("peakex: target m/z grid is empty")

	// ErrUnsortedTargets indicates a target m/z grid that is not ascending.
	ErrUnsortedTargets = errors.New("peakex: target m/z grid must be ascending")
)

// Unit selects how a Tolerance value is interpreted.
type Unit int

const (
	// PPM interprets the tolerance as parts-per-million of the target m/z.
	PPM Unit = iota

	// MZ interprets the tolerance as an absolute m/z width.
	MZ
)

// Tolerance is a mass error allowance around a target m/z.
type Tolerance struct {
	Value float64
	Unit  Unit
}

// Delta returns the half-width of the bin centered at mz.
func (t Tolerance) Delta(mz float64) float64 {
	if t.Unit == PPM {
		return mz * t.Value * 1e-6
	}
	return t.Value
}

// Validate checks the tolerance for a positive value and a known unit.
func (t Tolerance) Validate() error {
	if t.Value <= 0 || (t.Unit != PPM && t.Unit != MZ) {
		return ErrBadTolerance
	}
	return nil
}

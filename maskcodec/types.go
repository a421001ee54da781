package maskcodec

import "errors"

// DefaultMinimumWindowSize is the m/z tolerance below which two inferred
// window boundaries are merged into one.
const DefaultMinimumWindowSize = 0.2

// Sentinel errors for scheme inference and mask generation.
var (
	// ErrNoMS2 indicates the input list has no MS2 spectra.
	ErrNoMS2 = errors.New("maskcodec: no MS2 scans found for this experiment")

	// ErrNoPrecursors indicates an MS2 spectrum without precursor
	// information.
	ErrNoPrecursors = errors.New("maskcodec: MS2 spectrum is missing precursor information")

	// ErrVaryingPrecursors indicates the precursor count differs between
	// MS2 spectra, which makes the scheme uninferable.
	ErrVaryingPrecursors = errors.New("maskcodec: number of precursors varies between MS2 scans")

	// ErrTooFewSpectra indicates the list ended before the cycle repeated
	// often enough to pin down the scheme.
	ErrTooFewSpectra = errors.New("maskcodec: too few spectra to determine the precursor windows")

	// ErrDemuxMarks indicates a spectrum mapped to a different number of
	// demux windows than the scheme requires; the boundary-merge tolerance
	// may be set too low.
	ErrDemuxMarks = errors.New("maskcodec: number of demultiplexing windows changed")

	// ErrWindowIndex indicates an isolation-window index outside the scheme.
	ErrWindowIndex = errors.New("maskcodec: isolation window index out of range")
)

// Params configures scheme inference.
type Params struct {
	// MinimumWindowSize is the boundary-merge tolerance in m/z.
	MinimumWindowSize float64

	// VariableFill scales mask marks by each precursor's MultiFillTime.
	VariableFill bool
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{MinimumWindowSize: DefaultMinimumWindowSize}
}

package msdata

import "errors"

// Sentinel errors for the spectrum object model. Callers match with
// errors.Is; messages carry the package prefix for grepping.
var (
	// ErrIndexRange indicates a spectrum index outside the list bounds.
	ErrIndexRange = errors.New("msdata: spectrum index out of range")

	// ErrMissingPrecursorField indicates a precursor without a target m/z,
	// without an offset, or with a non-positive offset.
	ErrMissingPrecursorField = errors.New("msdata: precursor is missing target m/z or isolation offsets")

	// ErrFillTimeAbsent indicates a precursor without the MultiFillTime
	// user parameter while variable-fill handling requires it.
	ErrFillTimeAbsent = errors.New("msdata: precursor has no MultiFillTime user parameter")
)

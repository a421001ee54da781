package demux

import (
	"errors"
	"fmt"

	"github.com/prismms/msdemux/matrixio"
	"github.com/prismms/msdemux/peakex"
)

// Sentinel errors surfaced by the demultiplexers and the facade.
var (
	// ErrBadOptimization indicates an unknown optimization name or value.
	ErrBadOptimization = errors.New("demux: unknown optimization")

	// ErrBadParams indicates an invalid parameter combination.
	ErrBadParams = errors.New("demux: invalid parameters")

	// ErrInsufficientNeighbors indicates the neighbor finder could not
	// gather the required number of MS2 spectra.
	ErrInsufficientNeighbors = errors.New("demux: not enough spectra to demultiplex this block")

	// ErrCenterNotMS2 indicates a neighbor search centered on a non-MS2
	// spectrum.
	ErrCenterNotMS2 = errors.New("demux: neighbor search center must be an MS2 spectrum")

	// ErrMissingRetentionTime indicates a spectrum without a start time
	// while retention-time interpolation is enabled.
	ErrMissingRetentionTime = errors.New("demux: spectrum has no retention time for interpolation")
)

// Optimization selects the demultiplexer variant.
type Optimization int

const (
	// OptimizationMSX demultiplexes multi-precursor MSX acquisitions over
	// a full cycle of neighbors.
	OptimizationMSX Optimization = iota

	// OptimizationOverlapOnly demultiplexes overlapping-window
	// acquisitions over an m/z-local band, with retention-time
	// interpolation on by default.
	OptimizationOverlapOnly
)

// optimizationNames maps the enum to its configuration spelling.
var optimizationNames = map[Optimization]string{
	OptimizationMSX:         "msx",
	OptimizationOverlapOnly: "overlap_only",
}

// String returns the configuration spelling of the optimization.
func (o Optimization) String() string {
	if s, ok := optimizationNames[o]; ok {
		return s
	}
	return fmt.Sprintf("optimization(%d)", int(o))
}

// ParseOptimization resolves a configuration spelling.
func ParseOptimization(s string) (Optimization, error) {
	for o, name := range optimizationNames {
		if name == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadOptimization, s)
}

// Solver and neighborhood defaults.
const (
	// DefaultNNLSMaxIter caps solver iterations per product-ion column.
	DefaultNNLSMaxIter = 50

	// DefaultNNLSEps is the solver convergence tolerance.
	DefaultNNLSEps = 1e-10

	// DefaultMinimumWindowSize is the boundary-merge tolerance in m/z.
	DefaultMinimumWindowSize = 0.2

	// DefaultMassErrorPPM is the peak-extraction tolerance.
	DefaultMassErrorPPM = 10.0

	// overlapRegionsInApprox is the design width of one overlap block.
	overlapRegionsInApprox = 7

	// cyclesInBlock is the number of same-phase cycles sampled per
	// neighbor for retention-time interpolation.
	cyclesInBlock = 3
)

// Params carries every tunable of the demultiplexer. Zero values are
// replaced by documented defaults in Validate, so DefaultParams followed
// by selective assignment is the expected usage.
type Params struct {
	// Optimization selects the demultiplexer variant.
	Optimization Optimization

	// MinimumWindowSize is the m/z tolerance for merging inferred window
	// boundaries.
	MinimumWindowSize float64

	// MassError is the peak-extraction tolerance.
	MassError peakex.Tolerance

	// ApplyWeighting enables the 1/(1+(5Δ/cycle)²) neighbor decay weight.
	ApplyWeighting bool

	// VariableFill scales masks by per-precursor fill times and emits raw
	// solver intensities.
	VariableFill bool

	// InterpolateRetentionTime aligns overlap neighbors to the target's
	// retention time via spline interpolation.
	InterpolateRetentionTime bool

	// NNLSMaxIter caps solver iterations.
	NNLSMaxIter int

	// NNLSEps is the solver tolerance.
	NNLSEps float64

	// DemuxBlockExtra adds a fraction of one cycle to the neighbor count.
	DemuxBlockExtra float64

	// DebugWriter, when set, receives every solved
	// (masks, signal, solution) block keyed by original spectrum index.
	DebugWriter *matrixio.DebugWriter
}

// DefaultParams returns the documented defaults: MSX optimization, 0.2 m/z
// boundary tolerance, 10 ppm mass error, interpolation enabled (effective
// in overlap mode only).
func DefaultParams() Params {
	return Params{
		Optimization:             OptimizationMSX,
		MinimumWindowSize:        DefaultMinimumWindowSize,
		MassError:                peakex.Tolerance{Value: DefaultMassErrorPPM, Unit: peakex.PPM},
		InterpolateRetentionTime: true,
		NNLSMaxIter:              DefaultNNLSMaxIter,
		NNLSEps:                  DefaultNNLSEps,
	}
}

// Validate fills zero values with defaults and rejects nonsensical
// combinations.
func (p *Params) Validate() error {
	if _, ok := optimizationNames[p.Optimization]; !ok {
		return ErrBadOptimization
	}
	if p.MinimumWindowSize == 0 {
		p.MinimumWindowSize = DefaultMinimumWindowSize
	}
	if p.MinimumWindowSize < 0 {
		return fmt.Errorf("%w: negative minimum window size", ErrBadParams)
	}
	if p.MassError == (peakex.Tolerance{}) {
		p.MassError = peakex.Tolerance{Value: DefaultMassErrorPPM, Unit: peakex.PPM}
	}
	if err := p.MassError.Validate(); err != nil {
		return err
	}
	if p.NNLSMaxIter == 0 {
		p.NNLSMaxIter = DefaultNNLSMaxIter
	}
	if p.NNLSMaxIter < 0 {
		return fmt.Errorf("%w: negative solver iteration cap", ErrBadParams)
	}
	if p.NNLSEps == 0 {
		p.NNLSEps = DefaultNNLSEps
	}
	if p.NNLSEps < 0 {
		return fmt.Errorf("%w: negative solver tolerance", ErrBadParams)
	}
	if p.DemuxBlockExtra < 0 {
		p.DemuxBlockExtra = 0
	}
	return nil
}

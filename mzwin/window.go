package mzwin

import "math"

// hashScale converts m/z to integer hash units. One hash unit is 1e-8 m/z.
const hashScale = 1e8

// MZHash is an m/z boundary identity: round(mz * 1e8).
type MZHash int64

// Hash converts a floating-point m/z to its integer hash.
func Hash(mz float64) MZHash {
	return MZHash(math.Round(mz * hashScale))
}

// Unhash converts an integer hash back to a floating-point m/z.
func Unhash(h MZHash) float64 {
	return float64(h) / hashScale
}

// Window is an m/z range on the hashed axis. Invariant: Low < High.
type Window struct {
	Low  MZHash
	High MZHash
}

// Center returns the rounded midpoint of the window on the hashed axis.
func (w Window) Center() MZHash {
	return w.Low + MZHash(math.Round(float64(w.High-w.Low)/2.0))
}

// Contains reports whether inner's full range is a subset of w.
func (w Window) Contains(inner Window) bool {
	return inner.Low >= w.Low && inner.High <= w.High
}

// ContainsCenter reports whether inner's center lies inside w.
func (w Window) ContainsCenter(inner Window) bool {
	c := inner.Center()
	return c >= w.Low && c <= w.High
}

// Equal reports whether two windows are identical within the hash error.
func (w Window) Equal(rhs Window) bool {
	return w.Contains(rhs) && rhs.Contains(w)
}

// Less orders windows by their start boundary.
func (w Window) Less(rhs Window) bool {
	return w.Low < rhs.Low
}

// IsolationWindow pairs a hashed Window with the full-precision bounds
// preserved from the source, so output precursors can be rewritten without
// accumulating hash rounding.
type IsolationWindow struct {
	LowMz  float64
	HighMz float64
	Window Window
}

// NewIsolationWindow builds an IsolationWindow from full-precision bounds.
func NewIsolationWindow(lowMz, highMz float64) IsolationWindow {
	return IsolationWindow{
		LowMz:  lowMz,
		HighMz: highMz,
		Window: Window{Low: Hash(lowMz), High: Hash(highMz)},
	}
}

// Less orders isolation windows by their hashed start boundary.
func (iw IsolationWindow) Less(rhs IsolationWindow) bool {
	return iw.Window.Less(rhs.Window)
}

// Target returns the center and half-width of the window in full precision.
func (iw IsolationWindow) Target() (center, halfWidth float64) {
	halfWidth = (iw.HighMz - iw.LowMz) / 2.0
	return iw.LowMz + halfWidth, halfWidth
}

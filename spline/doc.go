// Package spline provides one-dimensional natural cubic interpolation for
// retention-time alignment.
//
// The overlap demultiplexer samples each product-ion bin at a handful of
// same-phase cycles and needs the intensity at the target spectrum's
// retention time between those samples. Spline validates the sample
// abscissas (equal lengths, strictly ascending, no duplicates within
// 1e-5) and then evaluates a natural cubic fit; callers clamp the result
// to zero from below, since interpolated intensities may undershoot.
package spline

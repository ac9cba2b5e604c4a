// Package gradient computes the numerical rate of change of a sampled series
// over irregularly spaced timestamps.
//
// Compute uses a second-order central difference at interior points and a
// first-order one-sided difference at the two boundaries. Series shorter than
// two samples have no derivative; Compute returns ErrInsufficientData and
// the playback controller reports those samples as "derivative undefined"
// rather than zero.
package gradient

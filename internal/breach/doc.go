// Package breach implements the sustained-breach alert state machine.
//
// A Tracker is idle until the latest sample classifies red, records the
// timestamp the red run began, and emits at most one Alert per continuous
// red episode once the run has lasted longer than the configured minimum.
// A single non-red sample resets the tracker; a later red run starts a new
// episode that can fire again independently.
package breach

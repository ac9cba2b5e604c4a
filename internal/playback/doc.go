// Package playback implements the tick-driven replay controller at the heart
// of fracwatch.
//
// The Controller holds the append-only normalized series and a cursor that
// advances once per tick, emulating live arrival of historical records. Each
// tick takes the prefix behind the cursor, restricts it to the selected view
// window (all / trailing 5, 10 or 30 minutes), recomputes the ROP derivative
// over that slice, classifies every point, drives the breach tracker off the
// newest point, and publishes an immutable Snapshot to a buffered channel.
//
// Step accepts an explicit time.Time so tests drive the clock directly;
// Run wraps Step in a time.Ticker loop for production use.
package playback

// Package telemetry defines the raw drilling Record and normalized Sample
// types and the Normalize transform between them.
//
// Normalize filters records to the configured depth-of-interest range,
// combines the date and HH:MM:SS fields into an absolute timestamp plus an
// elapsed-seconds value, and orders the result by timestamp (stable).
// Malformed records are dropped individually and reported as
// MalformedRecordError diagnostics; never a fatal failure.
package telemetry

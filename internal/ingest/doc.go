// Package ingest reads EDR CSV exports into raw telemetry Records.
//
// Columns are located by header name, so column order and extra columns do
// not matter. The reader deliberately does no validation beyond locating the
// required columns: unreadable numeric cells become NaN and the telemetry
// normalizer decides which records to reject.
package ingest

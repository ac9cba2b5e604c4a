package telemetry

import (
	"fmt"
	"time"
)

// Record is one raw EDR telemetry sample as delivered by the data source.
// Float fields that were absent from the source are NaN; validation happens
// during normalization, not ingestion. A Record is immutable once ingested.
type Record struct {
	// Depth is the hole depth in feet.
	Depth float64 `json:"depth"`

	// ROP is the rate of penetration in ft/hr.
	ROP float64 `json:"rop"`

	// WOB is the weight on bit in klbs.
	WOB float64 `json:"wob"`

	// RPM is the rotary speed.
	RPM float64 `json:"rpm"`

	// Date is the wall-clock date in YYYY/MM/DD form. May be empty, in which
	// case samples are anchored to an arbitrary fixed day.
	Date string `json:"date"`

	// Time is the wall-clock time of day in HH:MM:SS form.
	Time string `json:"time"`
}

// Sample is a validated, timestamped Record restricted to the depth range of
// interest. ElapsedSec is the time-of-day component converted to seconds
// since midnight; across a normalized sequence it is non-decreasing.
type Sample struct {
	Record

	// Timestamp is the absolute wall-clock instant (date + time combined).
	Timestamp time.Time

	// ElapsedSec is seconds since midnight of the sample's time of day.
	ElapsedSec float64
}

// MalformedRecordError reports one raw record that could not be normalized.
// The offending record is dropped; normalization of the rest continues.
type MalformedRecordError struct {
	// Index is the record's position in the input collection.
	Index int

	// Reason describes the missing or unparsable field.
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("telemetry: record %d: %s", e.Index, e.Reason)
}

package telemetry

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	dateLayout = "2006/01/02"
	timeLayout = "15:04:05"

	// anchorDate stands in for the wall-clock date when the source omits it.
	anchorDate = "1970/01/01"
)

// Normalize validates raw records, keeps those with depth in [depthMin,
// depthMax], and returns them as Samples ordered by absolute timestamp
// ascending. The sort is stable, so records with equal timestamps keep their
// original relative order.
//
// Records missing depth, time, or penetration speed, or whose time field
// cannot be parsed, are dropped and reported in the returned diagnostics
// slice; normalization of the remaining records continues. Normalize is a
// pure transform; the input slice is not modified.
func Normalize(records []Record, depthMin, depthMax float64) ([]Sample, []*MalformedRecordError) {
	samples := make([]Sample, 0, len(records))
	var errs []*MalformedRecordError

	reject := func(i int, format string, args ...any) {
		errs = append(errs, &MalformedRecordError{Index: i, Reason: fmt.Sprintf(format, args...)})
	}

	for i, rec := range records {
		switch {
		case math.IsNaN(rec.Depth):
			reject(i, "missing depth")
			continue
		case math.IsNaN(rec.ROP):
			reject(i, "missing penetration speed")
			continue
		case rec.Time == "":
			reject(i, "missing time")
			continue
		}

		ts, err := parseTimestamp(rec.Date, rec.Time)
		if err != nil {
			reject(i, "%v", err)
			continue
		}

		if rec.Depth < depthMin || rec.Depth > depthMax {
			continue
		}

		h, m, s := ts.Clock()
		samples = append(samples, Sample{
			Record:     rec,
			Timestamp:  ts,
			ElapsedSec: float64(h*3600 + m*60 + s),
		})
	}

	sort.SliceStable(samples, func(a, b int) bool {
		return samples[a].Timestamp.Before(samples[b].Timestamp)
	})
	return samples, errs
}

// parseTimestamp combines the date and time-of-day fields into an absolute
// timestamp. An empty date anchors the sample to a fixed reference day.
func parseTimestamp(date, clock string) (time.Time, error) {
	if date == "" {
		date = anchorDate
	}
	ts, err := time.Parse(dateLayout+" "+timeLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse timestamp %q %q", date, clock)
	}
	return ts, nil
}

package breach

import (
	"time"

	"github.com/fracwatch/fracwatch/internal/severity"
)

// DefaultMinDuration is how long the latest sample must stay red before an
// alert fires.
const DefaultMinDuration = 2 * time.Second

// Alert is emitted once per continuous red episode whose duration exceeds
// the tracker's minimum.
type Alert struct {
	// DerivativeValue is the ROP derivative of the sample that tripped the alert.
	DerivativeValue float64 `json:"derivative_value"`

	// SustainedSeconds is how long the series had been continuously red when
	// the alert fired, measured on the sample clock.
	SustainedSeconds float64 `json:"sustained_seconds"`

	// StartedAt is the timestamp of the sample that opened the episode.
	StartedAt time.Time `json:"started_at"`

	// FiredAt is the timestamp of the sample that tripped the alert.
	FiredAt time.Time `json:"fired_at"`
}

// Tracker is the sustained-breach state machine. It is either idle or
// breaching since some timestamp; transitions happen only on red severity
// entry and exit, and no transition can fail.
//
// Tracker is not safe for concurrent use; the playback controller owns it
// and serializes all Observe calls.
type Tracker struct {
	minDuration time.Duration

	breaching bool
	start     time.Time
	fired     bool
}

// NewTracker returns an idle Tracker with the given minimum sustained
// duration. A non-positive minDuration falls back to DefaultMinDuration.
func NewTracker(minDuration time.Duration) *Tracker {
	if minDuration <= 0 {
		minDuration = DefaultMinDuration
	}
	return &Tracker{minDuration: minDuration}
}

// Observe advances the state machine with the latest visible sample's
// severity. now is the sample's own timestamp, so breach durations are
// measured on the sample clock and tests never sleep.
//
// Any non-red observation resets to idle immediately; there is no
// hysteresis. While breaching, Observe returns a non-nil Alert exactly once:
// on the first observation where the sustained duration strictly exceeds the
// minimum. Later observations in the same unbroken episode return nil.
func (t *Tracker) Observe(level severity.Level, derivative float64, now time.Time) *Alert {
	if level != severity.Red {
		t.breaching = false
		t.fired = false
		return nil
	}

	if !t.breaching {
		t.breaching = true
		t.start = now
		t.fired = false
		return nil
	}

	if t.fired {
		return nil
	}

	sustained := now.Sub(t.start)
	if sustained <= t.minDuration {
		return nil
	}

	t.fired = true
	return &Alert{
		DerivativeValue:  derivative,
		SustainedSeconds: sustained.Seconds(),
		StartedAt:        t.start,
		FiredAt:          now,
	}
}

// Breaching reports whether the tracker is currently inside a red episode.
func (t *Tracker) Breaching() bool {
	return t.breaching
}

// SetMinDuration replaces the minimum sustained duration. It applies from
// the next Observe call and does not reset an episode in progress.
func (t *Tracker) SetMinDuration(d time.Duration) {
	if d > 0 {
		t.minDuration = d
	}
}

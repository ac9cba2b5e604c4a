package playback

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/fracwatch/fracwatch/internal/breach"
	"github.com/fracwatch/fracwatch/internal/gradient"
	"github.com/fracwatch/fracwatch/internal/metrics"
	"github.com/fracwatch/fracwatch/internal/severity"
	"github.com/fracwatch/fracwatch/internal/telemetry"
)

const (
	// DefaultInterval is the tick cadence emulating live arrival.
	DefaultInterval = 1 * time.Second

	// defaultSnapshotBuffer is the published-snapshot channel depth.
	defaultSnapshotBuffer = 16

	// maxAlertHistory bounds the retained alert list.
	maxAlertHistory = 200
)

// Config configures a Controller. Zero fields fall back to defaults.
type Config struct {
	// Interval is the tick cadence. Defaults to DefaultInterval.
	Interval time.Duration

	// Thresholds are the severity cutoffs. A zero value means defaults.
	Thresholds severity.Thresholds

	// MinBreachDuration is the sustained-red time before an alert fires.
	MinBreachDuration time.Duration

	// SnapshotBuffer is the capacity of the published-snapshot channel.
	SnapshotBuffer int

	// OnAlert, when set, is invoked (in its own goroutine) for every alert
	// the tick loop publishes.
	OnAlert func(breach.Alert)

	// Counters receives run counters; nil disables instrumentation.
	Counters *metrics.Counters
}

// Controller owns the normalized series, the playback cursor, the view
// window and the breach tracker. Each tick it evaluates the visible slice
// end to end (derive, classify, alert) and publishes an immutable Snapshot.
//
// Ticks, window toggles and ingestion are serialized under one mutex, so a
// tick never observes a half-updated series or window.
type Controller struct {
	interval time.Duration
	out      chan Snapshot
	onAlert  func(breach.Alert)
	mtr      *metrics.Counters

	mu         sync.Mutex
	series     []telemetry.Sample
	cursor     int
	window     Window
	thresholds severity.Thresholds
	tracker    *breach.Tracker
	last       Snapshot
	hasLast    bool
	alerts     []breach.Alert
}

// New returns a Controller with an empty series and the window set to
// WindowAll. Call Ingest to load samples and Run to start the tick loop.
func New(cfg Config) *Controller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.SnapshotBuffer <= 0 {
		cfg.SnapshotBuffer = defaultSnapshotBuffer
	}
	if cfg.Thresholds == (severity.Thresholds{}) {
		cfg.Thresholds = severity.DefaultThresholds()
	}
	return &Controller{
		interval:   cfg.Interval,
		out:        make(chan Snapshot, cfg.SnapshotBuffer),
		onAlert:    cfg.OnAlert,
		mtr:        cfg.Counters,
		thresholds: cfg.Thresholds,
		tracker:    breach.NewTracker(cfg.MinBreachDuration),
	}
}

// Ingest appends normalized samples to the series. The series is append-only
// and ordered, so samples that predate the current tail are dropped (with a
// warning) rather than inserted into already-played history. Returns the
// number of samples accepted.
func (c *Controller) Ingest(samples []telemetry.Sample) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	accepted := 0
	for _, s := range samples {
		if n := len(c.series); n > 0 && s.Timestamp.Before(c.series[n-1].Timestamp) {
			slog.Warn("playback: dropping out-of-order sample",
				"timestamp", s.Timestamp, "tail", c.series[n-1].Timestamp)
			continue
		}
		c.series = append(c.series, s)
		accepted++
	}
	c.mtr.AddRecordsIngested(accepted)
	return accepted
}

// ToggleWindow advances the view window through the fixed cycle
// all → 5m → 10m → 30m → all and returns the new selection.
func (c *Controller) ToggleWindow() Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = c.window.next()
	slog.Info("playback: view window toggled", "window", c.window)
	return c.window
}

// Window returns the current view window.
func (c *Controller) Window() Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}

// SetThresholds swaps the severity cutoffs; applied from the next tick.
func (c *Controller) SetThresholds(t severity.Thresholds) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.thresholds = t
}

// SetMinBreachDuration swaps the sustained-breach minimum; applied from the
// next tick without resetting an episode in progress.
func (c *Controller) SetMinBreachDuration(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracker.SetMinDuration(d)
}

// Progress returns how far the cursor has advanced and the series length.
func (c *Controller) Progress() (cursor, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor, len(c.series)
}

// Latest returns the most recently published snapshot, if any.
func (c *Controller) Latest() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.hasLast
}

// Alerts returns a copy of the retained alert events, oldest first.
func (c *Controller) Alerts() []breach.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]breach.Alert, len(c.alerts))
	copy(out, c.alerts)
	return out
}

// Snapshots is the channel Run publishes to. Exactly one consumer should
// drain it; when it lags, the oldest snapshot is evicted.
func (c *Controller) Snapshots() <-chan Snapshot {
	return c.out
}

// Step runs one tick at the given wall-clock time: take the prefix up to the
// cursor, apply the view window, derive and classify, drive the breach
// tracker off the newest visible sample, and advance the cursor.
//
// When the cursor has consumed the whole series, Step is a no-op returning
// ok=false; the terminal state, not an error. Ingesting more records
// resumes advancement.
func (c *Controller) Step(now time.Time) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor >= len(c.series) {
		return Snapshot{}, false
	}

	prefix := c.series[:c.cursor]
	visible := windowSlice(prefix, c.window)
	points := buildPoints(visible, c.thresholds)

	current := severity.Green
	var alert *breach.Alert
	if n := len(points); n > 0 {
		last := points[n-1]
		current = last.Severity
		alert = c.tracker.Observe(last.Severity, last.Derivative, last.Timestamp)
	} else {
		// Nothing visible yet; an undefined derivative routes to idle.
		c.tracker.Observe(severity.Green, math.NaN(), now)
	}

	c.cursor++
	snap := Snapshot{
		Points:      points,
		Current:     current,
		Alert:       alert,
		Window:      c.window,
		Cursor:      c.cursor,
		Total:       len(c.series),
		GeneratedAt: now,
	}

	if alert != nil {
		c.alerts = append(c.alerts, *alert)
		if len(c.alerts) > maxAlertHistory {
			c.alerts = c.alerts[len(c.alerts)-maxAlertHistory:]
		}
		c.mtr.IncAlertsFired()
		slog.Warn("playback: sustained breach alert",
			"derivative", alert.DerivativeValue,
			"sustained_seconds", alert.SustainedSeconds,
		)
	}

	c.mtr.IncTicks()
	c.last = snap
	c.hasLast = true
	return snap, true
}

// Run drives Step on the tick cadence and publishes each snapshot. It keeps
// ticking after the series is exhausted so later ingestion resumes playback.
// Run blocks until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	t := time.NewTicker(c.interval)
	defer t.Stop()

	slog.Info("playback: started", "interval", c.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("playback: stopped")
			return
		case now := <-t.C:
			snap, ok := c.Step(now)
			if !ok {
				continue
			}
			c.publish(snap)
			if snap.Alert != nil && c.onAlert != nil {
				go c.onAlert(*snap.Alert)
			}
		}
	}
}

// publish enqueues snap without blocking the tick loop. When the buffer is
// full the oldest snapshot is evicted; consumers always see the newest.
func (c *Controller) publish(snap Snapshot) {
	select {
	case c.out <- snap:
	default:
		select {
		case <-c.out:
			slog.Debug("playback: snapshot buffer full, evicted oldest")
		default:
		}
		c.out <- snap
	}
}

// windowSlice returns the suffix of prefix whose timestamps fall within the
// window's trailing span, measured back from the newest sample in prefix.
func windowSlice(prefix []telemetry.Sample, w Window) []telemetry.Sample {
	d := w.Duration()
	if d == 0 || len(prefix) == 0 {
		return prefix
	}
	cutoff := prefix[len(prefix)-1].Timestamp.Add(-d)
	i := sort.Search(len(prefix), func(i int) bool {
		return !prefix[i].Timestamp.Before(cutoff)
	})
	return prefix[i:]
}

// buildPoints derives and classifies the visible slice. With fewer than two
// samples the derivative is undefined (NaN), which classifies green.
func buildPoints(visible []telemetry.Sample, t severity.Thresholds) []Point {
	if len(visible) == 0 {
		return nil
	}

	rop := make([]float64, len(visible))
	elapsed := make([]float64, len(visible))
	for i, s := range visible {
		rop[i] = s.ROP
		elapsed[i] = s.ElapsedSec
	}

	derivs, err := gradient.Compute(rop, elapsed)
	if err != nil {
		derivs = make([]float64, len(visible))
		for i := range derivs {
			derivs[i] = math.NaN()
		}
	}

	points := make([]Point, len(visible))
	for i, s := range visible {
		points[i] = Point{
			Timestamp:  s.Timestamp,
			ElapsedSec: s.ElapsedSec,
			Depth:      s.Depth,
			ROP:        s.ROP,
			WOB:        s.WOB,
			RPM:        s.RPM,
			Derivative: derivs[i],
			Severity:   t.Classify(derivs[i]),
		}
	}
	return points
}

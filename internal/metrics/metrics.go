package metrics

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Counters holds the run counters exposed on /metrics. All methods are safe
// for concurrent use and tolerate a nil receiver, so instrumented components
// can run without metrics wired in (e.g. unit tests).
type Counters struct {
	ticks           atomic.Uint64
	alertsFired     atomic.Uint64
	recordsIngested atomic.Uint64
	recordsRejected atomic.Uint64
}

// IncTicks records one completed playback tick.
func (c *Counters) IncTicks() {
	if c != nil {
		c.ticks.Add(1)
	}
}

// IncAlertsFired records one emitted breach alert.
func (c *Counters) IncAlertsFired() {
	if c != nil {
		c.alertsFired.Add(1)
	}
}

// AddRecordsIngested records n raw records accepted into the series.
func (c *Counters) AddRecordsIngested(n int) {
	if c != nil && n > 0 {
		c.recordsIngested.Add(uint64(n))
	}
}

// AddRecordsRejected records n raw records dropped as malformed.
func (c *Counters) AddRecordsRejected(n int) {
	if c != nil && n > 0 {
		c.recordsRejected.Add(uint64(n))
	}
}

// gauge is a named callback sampled at scrape time.
type gauge struct {
	name string
	help string
	fn   func() float64
}

// Handler serves the counters (plus any registered gauges) in Prometheus
// text exposition format.
type Handler struct {
	c      *Counters
	gauges []gauge
}

// NewHandler returns a Handler exposing c.
func NewHandler(c *Counters) *Handler {
	return &Handler{c: c}
}

// AddGauge registers a gauge whose value is read from fn on every scrape.
func (h *Handler) AddGauge(name, help string, fn func() float64) {
	h.gauges = append(h.gauges, gauge{name: name, help: help, fn: fn})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))

	families := []*dto.MetricFamily{
		counterFamily("fracwatch_ticks_total",
			"Playback ticks evaluated since start.", float64(h.c.ticks.Load())),
		counterFamily("fracwatch_alerts_fired_total",
			"Sustained-breach alerts emitted.", float64(h.c.alertsFired.Load())),
		counterFamily("fracwatch_records_ingested_total",
			"Raw telemetry records accepted into the series.", float64(h.c.recordsIngested.Load())),
		counterFamily("fracwatch_records_rejected_total",
			"Raw telemetry records dropped as malformed.", float64(h.c.recordsRejected.Load())),
	}
	for _, g := range h.gauges {
		families = append(families, gaugeFamily(g.name, g.help, g.fn()))
	}

	enc := expfmt.NewEncoder(w, format)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			slog.Warn("metrics: encode failed", "family", mf.GetName(), "err", err)
			return
		}
	}
}

func counterFamily(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{
			{Counter: &dto.Counter{Value: proto.Float64(v)}},
		},
	}
}

func gaugeFamily(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: proto.Float64(v)}},
		},
	}
}

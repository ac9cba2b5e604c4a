package api

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/fracwatch/fracwatch/internal/breach"
	"github.com/fracwatch/fracwatch/internal/metrics"
	"github.com/fracwatch/fracwatch/internal/playback"
	"github.com/fracwatch/fracwatch/internal/telemetry"
)

// maxIngestBody bounds a POST /api/v1/records request body.
const maxIngestBody = 4 << 20

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads published playback state and forwards operator commands.
type Handler struct {
	ctrl     *playback.Controller
	depthMin float64
	depthMax float64
	mtr      *metrics.Counters
	mux      *http.ServeMux
}

// New creates a Handler wired to the playback controller and registers all
// routes. depthMin/depthMax bound records accepted via POST /api/v1/records.
func New(ctrl *playback.Controller, depthMin, depthMax float64, mtr *metrics.Counters) http.Handler {
	h := &Handler{
		ctrl:     ctrl,
		depthMin: depthMin,
		depthMax: depthMax,
		mtr:      mtr,
		mux:      http.NewServeMux(),
	}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/snapshot", h.snapshot)
	h.mux.HandleFunc("/api/v1/alerts", h.alerts)
	h.mux.HandleFunc("/api/v1/window/toggle", h.toggleWindow)
	h.mux.HandleFunc("/api/v1/records", h.ingestRecords)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health: playback progress and current severity.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cursor, total := h.ctrl.Progress()
	resp := HealthResponse{
		CurrentSeverity: "green",
		Cursor:          cursor,
		Total:           total,
		Window:          h.ctrl.Window().String(),
		AlertCount:      len(h.ctrl.Alerts()),
	}
	if snap, ok := h.ctrl.Latest(); ok {
		resp.CurrentSeverity = snap.Current.String()
	}
	jsonResp(w, http.StatusOK, resp)
}

// snapshot returns GET /api/v1/snapshot: the most recently published tick.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, ok := h.ctrl.Latest()
	if !ok {
		jsonErr(w, http.StatusNotFound, "no snapshot published yet")
		return
	}
	jsonResp(w, http.StatusOK, ToSnapshotResponse(snap))
}

// alerts returns GET /api/v1/alerts: retained alert events, oldest first.
func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	events := h.ctrl.Alerts()
	out := make([]AlertResponse, 0, len(events))
	for _, a := range events {
		out = append(out, toAlertResponse(a))
	}
	jsonResp(w, http.StatusOK, out)
}

// toggleWindow handles POST /api/v1/window/toggle: cycles the view window.
func (h *Handler) toggleWindow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	next := h.ctrl.ToggleWindow()
	jsonResp(w, http.StatusOK, WindowResponse{Window: next.String()})
}

// ingestRecords handles POST /api/v1/records: normalizes and appends raw
// records to the live series. Malformed records are reported per index; the
// rest are accepted.
func (h *Handler) ingestRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var reqs []RecordRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBody))
	if err := dec.Decode(&reqs); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	records := make([]telemetry.Record, len(reqs))
	for i, rr := range reqs {
		records[i] = telemetry.Record{
			Depth: floatOrNaN(rr.Depth),
			ROP:   floatOrNaN(rr.ROP),
			WOB:   floatOrNaN(rr.WOB),
			RPM:   floatOrNaN(rr.RPM),
			Date:  rr.Date,
			Time:  rr.Time,
		}
	}

	samples, diags := telemetry.Normalize(records, h.depthMin, h.depthMax)
	accepted := h.ctrl.Ingest(samples)
	h.mtr.AddRecordsRejected(len(diags))

	resp := IngestResponse{Accepted: accepted, Rejected: make([]RejectedRecord, 0, len(diags))}
	for _, d := range diags {
		resp.Rejected = append(resp.Rejected, RejectedRecord{Index: d.Index, Reason: d.Reason})
	}
	if len(diags) > 0 {
		slog.Warn("api: rejected malformed records", "count", len(diags))
	}
	jsonResp(w, http.StatusOK, resp)
}

// --- converters -------------------------------------------------------------

// ToSnapshotResponse converts a published snapshot to its JSON payload.
// Exported because the WebSocket hub sends the same schema.
func ToSnapshotResponse(snap playback.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		Points:          make([]PointResponse, 0, len(snap.Points)),
		CurrentSeverity: snap.Current.String(),
		Window:          snap.Window.String(),
		Cursor:          snap.Cursor,
		Total:           snap.Total,
		GeneratedAt:     snap.GeneratedAt.UTC().Format(time.RFC3339),
	}
	for _, p := range snap.Points {
		resp.Points = append(resp.Points, PointResponse{
			Timestamp:  p.Timestamp.Format(time.RFC3339),
			ElapsedSec: p.ElapsedSec,
			Depth:      p.Depth,
			ROP:        p.ROP,
			WOB:        nanToZero(p.WOB),
			RPM:        nanToZero(p.RPM),
			Derivative: finitePtr(p.Derivative),
			Severity:   p.Severity.String(),
		})
	}
	if snap.Alert != nil {
		a := toAlertResponse(*snap.Alert)
		resp.Alert = &a
	}
	return resp
}

func toAlertResponse(a breach.Alert) AlertResponse {
	return AlertResponse{
		DerivativeValue:  a.DerivativeValue,
		SustainedSeconds: a.SustainedSeconds,
		StartedAt:        a.StartedAt.Format(time.RFC3339),
		FiredAt:          a.FiredAt.Format(time.RFC3339),
	}
}

// finitePtr returns nil for NaN or infinite values, which JSON cannot carry.
func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// nanToZero maps an absent optional measurement to 0 for the JSON payload.
func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func floatOrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// --- response helpers -------------------------------------------------------

func jsonResp(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("api: encode response failed", "err", err)
	}
}

func jsonErr(w http.ResponseWriter, status int, msg string) {
	jsonResp(w, status, errorResponse{Error: msg})
}

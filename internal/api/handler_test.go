package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fracwatch/fracwatch/internal/api"
	"github.com/fracwatch/fracwatch/internal/metrics"
	"github.com/fracwatch/fracwatch/internal/playback"
	"github.com/fracwatch/fracwatch/internal/telemetry"
)

var baseTime = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func mkSamples(rops ...float64) []telemetry.Sample {
	samples := make([]telemetry.Sample, len(rops))
	for i, rop := range rops {
		ts := baseTime.Add(time.Duration(i) * time.Second)
		h, m, s := ts.Clock()
		samples[i] = telemetry.Sample{
			Record:     telemetry.Record{Depth: 5000, ROP: rop, WOB: 25, RPM: 120},
			Timestamp:  ts,
			ElapsedSec: float64(h*3600 + m*60 + s),
		}
	}
	return samples
}

// newServer builds a controller pre-stepped through n ticks and a test server
// over its API.
func newServer(t *testing.T, ticks int, rops ...float64) (*httptest.Server, *playback.Controller) {
	t.Helper()
	ctrl := playback.New(playback.Config{})
	ctrl.Ingest(mkSamples(rops...))
	for i := 0; i < ticks; i++ {
		ctrl.Step(baseTime.Add(time.Duration(i) * time.Second))
	}
	srv := httptest.NewServer(api.New(ctrl, 4000, 6000, &metrics.Counters{}))
	t.Cleanup(srv.Close)
	return srv, ctrl
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestSnapshot_NotFoundBeforeFirstTick(t *testing.T) {
	srv, _ := newServer(t, 0, 100, 110)
	resp, err := http.Get(srv.URL + "/api/v1/snapshot")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSnapshot_ReturnsLatestTick(t *testing.T) {
	srv, _ := newServer(t, 3, 100, 110, 120, 130)

	var snap api.SnapshotResponse
	getJSON(t, srv.URL+"/api/v1/snapshot", &snap)

	if snap.Cursor != 3 || snap.Total != 4 {
		t.Errorf("cursor/total = %d/%d, want 3/4", snap.Cursor, snap.Total)
	}
	if len(snap.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(snap.Points))
	}
	p := snap.Points[len(snap.Points)-1]
	if p.Derivative == nil {
		t.Fatal("derivative should be defined for a two-sample slice")
	}
	if p.Severity == "" {
		t.Error("severity missing from point payload")
	}
}

func TestSnapshot_UndefinedDerivativeIsNull(t *testing.T) {
	srv, _ := newServer(t, 2, 100, 110) // latest tick sees a single sample

	var snap api.SnapshotResponse
	getJSON(t, srv.URL+"/api/v1/snapshot", &snap)
	if len(snap.Points) != 1 {
		t.Fatalf("points = %d, want 1", len(snap.Points))
	}
	if snap.Points[0].Derivative != nil {
		t.Errorf("derivative = %v, want null", *snap.Points[0].Derivative)
	}
	if snap.Points[0].Severity != "green" {
		t.Errorf("severity = %q, want green", snap.Points[0].Severity)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t, 2, 100, 110, 120)

	var h api.HealthResponse
	getJSON(t, srv.URL+"/api/v1/health", &h)
	if h.Cursor != 2 || h.Total != 3 {
		t.Errorf("cursor/total = %d/%d, want 2/3", h.Cursor, h.Total)
	}
	if h.Window != "all" {
		t.Errorf("window = %q, want all", h.Window)
	}
}

func TestToggleWindow_CyclesAndWraps(t *testing.T) {
	srv, ctrl := newServer(t, 0, 100)

	want := []string{"5m", "10m", "30m", "all"}
	for _, w := range want {
		resp, err := http.Post(srv.URL+"/api/v1/window/toggle", "application/json", nil)
		if err != nil {
			t.Fatalf("POST toggle: %v", err)
		}
		var body api.WindowResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		resp.Body.Close()
		if body.Window != w {
			t.Errorf("toggle = %q, want %q", body.Window, w)
		}
	}
	if ctrl.Window() != playback.WindowAll {
		t.Errorf("after four toggles window = %v, want all", ctrl.Window())
	}
}

func TestToggleWindow_GetNotAllowed(t *testing.T) {
	srv, _ := newServer(t, 0, 100)
	resp := getJSON(t, srv.URL+"/api/v1/window/toggle", nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestIngestRecords(t *testing.T) {
	srv, ctrl := newServer(t, 0)

	body := `[
		{"depth": 5000, "rop": 100, "wob": 25, "rpm": 120, "date": "2024/01/15", "time": "08:00:00"},
		{"rop": 100, "time": "08:00:01"},
		{"depth": 5000, "rop": 101, "wob": 25, "rpm": 120, "date": "2024/01/15", "time": "08:00:02"},
		{"depth": 3000, "rop": 102, "time": "08:00:03"}
	]`
	resp, err := http.Post(srv.URL+"/api/v1/records", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST records: %v", err)
	}
	defer resp.Body.Close()

	var out api.IngestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Record 1 has no depth (malformed); record 3 is out of depth range
	// (silently filtered, not an error).
	if out.Accepted != 2 {
		t.Errorf("accepted = %d, want 2", out.Accepted)
	}
	if len(out.Rejected) != 1 || out.Rejected[0].Index != 1 {
		t.Errorf("rejected = %+v, want index 1 only", out.Rejected)
	}
	if _, total := ctrl.Progress(); total != 2 {
		t.Errorf("series length = %d, want 2", total)
	}
}

func TestIngestRecords_BadJSON(t *testing.T) {
	srv, _ := newServer(t, 0)
	resp, err := http.Post(srv.URL+"/api/v1/records", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST records: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAlerts_EmptyHistory(t *testing.T) {
	srv, _ := newServer(t, 2, 100, 110)

	var out []api.AlertResponse
	getJSON(t, srv.URL+"/api/v1/alerts", &out)
	if len(out) != 0 {
		t.Errorf("alerts = %d, want 0", len(out))
	}
}

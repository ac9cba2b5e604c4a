package alerts

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fracwatch/fracwatch/internal/breach"
	"github.com/fracwatch/fracwatch/internal/config"
)

func testAlert() breach.Alert {
	fired := time.Date(2026, 1, 1, 8, 0, 3, 0, time.UTC)
	return breach.Alert{
		DerivativeValue:  5.2,
		SustainedSeconds: 3,
		StartedAt:        fired.Add(-3 * time.Second),
		FiredAt:          fired,
	}
}

func TestNotify_Slack(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got.Store(string(body))
	}))
	defer srv.Close()

	t.Setenv("TEST_SLACK_URL", srv.URL)
	n := New(config.AlertsConfig{Webhooks: []config.WebhookConfig{
		{Type: "slack", URLEnv: "TEST_SLACK_URL"},
	}})

	n.Notify(testAlert())

	body, _ := got.Load().(string)
	if body == "" {
		t.Fatal("webhook received no request")
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if !strings.Contains(payload["text"], "5.2") {
		t.Errorf("payload text missing derivative value: %q", payload["text"])
	}
}

func TestNotify_GenericHTTPCarriesAlert(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got.Store(body)
	}))
	defer srv.Close()

	t.Setenv("TEST_HTTP_URL", srv.URL)
	n := New(config.AlertsConfig{Webhooks: []config.WebhookConfig{
		{Type: "http", URLEnv: "TEST_HTTP_URL"},
	}})

	n.Notify(testAlert())

	body, _ := got.Load().([]byte)
	var payload struct {
		Alert breach.Alert `json:"alert"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Alert.DerivativeValue != 5.2 || payload.Alert.SustainedSeconds != 3 {
		t.Errorf("alert round-trip wrong: %+v", payload.Alert)
	}
}

func TestNotify_NoWebhooksIsNoOp(t *testing.T) {
	n := New(config.AlertsConfig{})
	n.Notify(testAlert()) // must not panic or block
}

func TestNotify_UnresolvedURLSkipped(t *testing.T) {
	n := New(config.AlertsConfig{Webhooks: []config.WebhookConfig{
		{Type: "slack", URLEnv: "FRACWATCH_UNSET_WEBHOOK_URL"},
	}})
	n.Notify(testAlert()) // URL resolves empty; target skipped
}

func TestNotify_ServerErrorDoesNotPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	t.Setenv("TEST_FAIL_URL", srv.URL)
	n := New(config.AlertsConfig{Webhooks: []config.WebhookConfig{
		{Type: "http", URLEnv: "TEST_FAIL_URL"},
	}})
	n.Notify(testAlert()) // delivery failure is logged, never returned
}

package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fracwatch/fracwatch/internal/breach"
	"github.com/fracwatch/fracwatch/internal/config"
)

const deliverTimeout = 10 * time.Second

// Notifier delivers breach alerts to the configured webhook targets.
// A Notifier with no webhooks is valid; Notify becomes a no-op.
type Notifier struct {
	webhooks []config.WebhookConfig
	client   *http.Client
}

// New creates a Notifier from the alerts configuration.
func New(cfg config.AlertsConfig) *Notifier {
	return &Notifier{
		webhooks: cfg.Webhooks,
		client:   &http.Client{Timeout: deliverTimeout},
	}
}

// Notify sends a to every configured webhook. Delivery errors are logged but
// never propagated; losing a webhook must not affect playback.
func (n *Notifier) Notify(a breach.Alert) {
	for _, wh := range n.webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}

		var err error
		switch wh.Type {
		case "slack":
			err = n.sendSlack(url, a)
		case "teams":
			err = n.sendTeams(url, a)
		case "http":
			err = n.sendHTTP(url, a)
		default:
			slog.Warn("alerts: unknown webhook type, skipping", "type", wh.Type)
			continue
		}

		if err != nil {
			slog.Error("alerts: webhook delivery failed", "type", wh.Type, "err", err)
		} else {
			slog.Debug("alerts: webhook delivered", "type", wh.Type)
		}
	}
}

// message is the human-readable alert summary shared by all webhook formats.
func message(a breach.Alert) string {
	return fmt.Sprintf("Fracture detected: ROP derivative %.2f sustained red for %.1fs. Drilling with reduced ROP recommended.",
		a.DerivativeValue, a.SustainedSeconds)
}

func (n *Notifier) sendSlack(url string, a breach.Alert) error {
	body, _ := json.Marshal(map[string]string{
		"text": "*[FRACTURE]* " + message(a),
	})
	return n.post(url, body)
}

func (n *Notifier) sendTeams(url string, a breach.Alert) error {
	payload := map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": "FF4F6A",
		"summary":    "Fracture detected",
		"title":      "fracwatch: sustained breach",
		"text":       message(a),
	}
	body, _ := json.Marshal(payload)
	return n.post(url, body)
}

func (n *Notifier) sendHTTP(url string, a breach.Alert) error {
	body, _ := json.Marshal(map[string]interface{}{"alert": a})
	return n.post(url, body)
}

func (n *Notifier) post(url string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fracwatch/fracwatch/internal/severity"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultTickInterval      = 1 * time.Second
	DefaultMinBreachDuration = 2 * time.Second
	DefaultDepthMin          = 4000.0
	DefaultDepthMax          = 6000.0
	DefaultHTTPPort          = 8080
	DefaultSnapshotBuffer    = 16
)

// Config is the top-level fracwatch configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Detection DetectionConfig `yaml:"detection"`
	Playback  PlaybackConfig  `yaml:"playback"`
	Server    ServerConfig    `yaml:"server"`
	Alerts    AlertsConfig    `yaml:"alerts"`
}

// InputConfig locates the historical data source replayed as a live feed.
type InputConfig struct {
	// CSVPath is the EDR CSV export to load at startup. Optional; the
	// series can also be fed entirely through POST /api/v1/records.
	CSVPath string `yaml:"csv_path"`
}

// DetectionConfig holds the depth range of interest and the detection knobs.
// Thresholds and MinBreachDuration are hot-reloadable; DepthMin/DepthMax are
// fixed for the session.
type DetectionConfig struct {
	// DepthMin and DepthMax bound the hole depth of interest in feet.
	// Records outside [DepthMin, DepthMax] never enter the series.
	DepthMin float64 `yaml:"depth_min"`
	DepthMax float64 `yaml:"depth_max"`

	// Thresholds are the ascending severity cutoffs for the ROP derivative.
	Thresholds severity.Thresholds `yaml:"thresholds"`

	// MinBreachDuration is how long the latest sample must stay red before
	// an alert fires.
	MinBreachDuration time.Duration `yaml:"min_breach_duration"`
}

// PlaybackConfig holds the replay tick settings.
type PlaybackConfig struct {
	// TickInterval is the cadence the cursor advances at.
	TickInterval time.Duration `yaml:"tick_interval"`

	// SnapshotBuffer is the published-snapshot channel depth.
	SnapshotBuffer int `yaml:"snapshot_buffer"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API, WebSocket stream and /metrics
	// listen on.
	HTTPPort int `yaml:"http_port"`
}

// AlertsConfig holds webhook delivery targets for breach alerts.
type AlertsConfig struct {
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: slack | teams | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable holding the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Detection: DetectionConfig{
			DepthMin:          DefaultDepthMin,
			DepthMax:          DefaultDepthMax,
			Thresholds:        severity.DefaultThresholds(),
			MinBreachDuration: DefaultMinBreachDuration,
		},
		Playback: PlaybackConfig{
			TickInterval:   DefaultTickInterval,
			SnapshotBuffer: DefaultSnapshotBuffer,
		},
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Detection.DepthMin > cfg.Detection.DepthMax {
		return fmt.Errorf("detection.depth_min must not exceed detection.depth_max")
	}
	if err := cfg.Detection.Thresholds.Validate(); err != nil {
		return err
	}
	if cfg.Detection.MinBreachDuration <= 0 {
		return fmt.Errorf("detection.min_breach_duration must be positive")
	}
	if cfg.Playback.TickInterval <= 0 {
		return fmt.Errorf("playback.tick_interval must be positive")
	}
	if cfg.Playback.SnapshotBuffer <= 0 {
		return fmt.Errorf("playback.snapshot_buffer must be positive")
	}
	for i, wh := range cfg.Alerts.Webhooks {
		switch wh.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("alerts.webhooks[%d]: unknown type %q", i, wh.Type)
		}
	}
	return nil
}

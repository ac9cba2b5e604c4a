// Package config loads and watches the fracwatch configuration file.
//
// Top-level types:
//   - Config{Input, Detection, Playback, Server, Alerts}: full config tree
//     parsed from YAML
//   - DetectionConfig: depth_min/depth_max, severity thresholds,
//     min_breach_duration
//   - PlaybackConfig: tick_interval, snapshot_buffer
//   - AlertsConfig / WebhookConfig: webhook targets; URL() resolves the
//     target URL from an environment variable so secrets stay out of the file
//
// Load(path) reads the YAML file, applies defaults (1s tick, 2s breach
// minimum, depth 4000–6000 ft, thresholds 3/3.5/4, port 8080), then
// validates structural constraints.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config, letting the detection thresholds be
// re-tuned without a restart. It handles the rename→create pattern used by
// atomic-save editors by re-adding the watch after a rename event.
package config

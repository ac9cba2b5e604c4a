// Package api implements the REST surface over the playback controller.
//
// Endpoints:
//
//	GET  /api/v1/health         - playback progress and current severity
//	GET  /api/v1/snapshot       - the most recently published tick snapshot
//	GET  /api/v1/alerts         - retained breach alert events
//	POST /api/v1/window/toggle  - cycle the view window (all → 5m → 10m → 30m)
//	POST /api/v1/records        - normalize and append raw records to the series
//
// All responses are JSON. Undefined derivatives are encoded as null; the
// WebSocket hub reuses ToSnapshotResponse so both transports share one schema.
package api

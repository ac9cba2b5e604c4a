package api

// PointResponse is one visible sample in a snapshot payload.
type PointResponse struct {
	Timestamp  string   `json:"timestamp"` // RFC3339
	ElapsedSec float64  `json:"elapsed_sec"`
	Depth      float64  `json:"depth"`
	ROP        float64  `json:"rop"`
	WOB        float64  `json:"wob"`
	RPM        float64  `json:"rpm"`
	Derivative *float64 `json:"derivative"` // null when undefined
	Severity   string   `json:"severity"`
}

// AlertResponse is one emitted breach alert.
type AlertResponse struct {
	DerivativeValue  float64 `json:"derivative_value"`
	SustainedSeconds float64 `json:"sustained_seconds"`
	StartedAt        string  `json:"started_at"` // RFC3339
	FiredAt          string  `json:"fired_at"`   // RFC3339
}

// SnapshotResponse is the payload for GET /api/v1/snapshot and the WebSocket
// stream.
type SnapshotResponse struct {
	Points          []PointResponse `json:"points"`
	CurrentSeverity string          `json:"current_severity"`
	Alert           *AlertResponse  `json:"alert,omitempty"`
	Window          string          `json:"window"`
	Cursor          int             `json:"cursor"`
	Total           int             `json:"total"`
	GeneratedAt     string          `json:"generated_at"` // RFC3339
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	CurrentSeverity string `json:"current_severity"`
	Cursor          int    `json:"cursor"`
	Total           int    `json:"total"`
	Window          string `json:"window"`
	AlertCount      int    `json:"alert_count"`
}

// WindowResponse is the payload for POST /api/v1/window/toggle.
type WindowResponse struct {
	Window string `json:"window"`
}

// RecordRequest is one raw record in a POST /api/v1/records body. Numeric
// fields are pointers so absent fields are distinguishable from zero values.
type RecordRequest struct {
	Depth *float64 `json:"depth"`
	ROP   *float64 `json:"rop"`
	WOB   *float64 `json:"wob"`
	RPM   *float64 `json:"rpm"`
	Date  string   `json:"date"`
	Time  string   `json:"time"`
}

// RejectedRecord reports one record dropped during ingestion.
type RejectedRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// IngestResponse is the payload for POST /api/v1/records.
type IngestResponse struct {
	Accepted int              `json:"accepted"`
	Rejected []RejectedRecord `json:"rejected"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

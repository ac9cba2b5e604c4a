// Package metrics exposes fracwatch run counters in Prometheus text
// exposition format.
//
// Counters is a small set of atomic counters incremented by the playback
// controller and the ingestion path; Handler encodes them (plus registered
// gauge callbacks) with expfmt on GET /metrics. There is no push, no
// registry; the counter set is fixed and tiny.
package metrics

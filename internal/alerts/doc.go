// Package alerts delivers sustained-breach alert events to external webhook
// targets (Slack, Teams, or a generic HTTP endpoint).
//
// The playback controller invokes Notifier.Notify asynchronously for each
// alert it publishes; delivery failures are logged and never reach the tick
// loop. Webhook URLs are resolved from environment variables named in the
// config so secrets stay out of the file.
package alerts

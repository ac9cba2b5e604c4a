// Package ws implements the WebSocket hub that streams playback snapshots.
//
// Hub manages a set of connected clients and forwards every snapshot the
// playback controller publishes; one message per tick.
//
// New(ctrl) creates a Hub.
// Hub.Run(ctx) drains the controller's snapshot channel; blocks until ctx
// is cancelled, then closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, sends the latest
// snapshot immediately on connect, then streams updates on each tick.
//
// Message format sent to clients:
//
//	{
//	  "event": "snapshot",
//	  "data":  { /* same schema as GET /api/v1/snapshot */ }
//	}
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. WebSocket endpoint is mounted at /ws/stream by the server.
package ws

package playback

import (
	"time"

	"github.com/fracwatch/fracwatch/internal/breach"
	"github.com/fracwatch/fracwatch/internal/severity"
)

// Point is one visible sample with its derived values. Derivative is NaN
// when undefined (fewer than two visible samples).
type Point struct {
	Timestamp  time.Time
	ElapsedSec float64
	Depth      float64
	ROP        float64
	WOB        float64
	RPM        float64
	Derivative float64
	Severity   severity.Level
}

// Snapshot is what the controller publishes after each tick. It owns its
// Points slice; consumers never see the controller's live series.
type Snapshot struct {
	// Points is the window-filtered visible slice, oldest first.
	Points []Point

	// Current is the severity of the newest visible point, green when the
	// visible slice is empty.
	Current severity.Level

	// Alert is non-nil only on the tick a sustained breach fired.
	Alert *breach.Alert

	// Window is the view window the snapshot was built with.
	Window Window

	// Cursor and Total describe playback progress through the series.
	Cursor int
	Total  int

	// GeneratedAt is the tick's wall-clock time.
	GeneratedAt time.Time
}

package playback

import "time"

// Window selects how much of the evaluated prefix is visible: the whole
// session, or only a trailing span of it.
type Window int

const (
	// WindowAll shows the entire prefix evaluated so far.
	WindowAll Window = iota
	Window5m
	Window10m
	Window30m

	windowCount // must stay last
)

// Duration returns the trailing span the window keeps; zero means unbounded.
func (w Window) Duration() time.Duration {
	switch w {
	case Window5m:
		return 5 * time.Minute
	case Window10m:
		return 10 * time.Minute
	case Window30m:
		return 30 * time.Minute
	default:
		return 0
	}
}

// String returns the window name used in logs and API responses.
func (w Window) String() string {
	switch w {
	case WindowAll:
		return "all"
	case Window5m:
		return "5m"
	case Window10m:
		return "10m"
	case Window30m:
		return "30m"
	default:
		return "all"
	}
}

// MarshalJSON encodes the Window as its name.
func (w Window) MarshalJSON() ([]byte, error) {
	return []byte(`"` + w.String() + `"`), nil
}

// next returns the following window in the fixed cycle, wrapping at the end.
// An out-of-range receiver resets to WindowAll; the cycle is a closed set,
// so that path is unreachable through the public API.
func (w Window) next() Window {
	if w < WindowAll || w >= windowCount {
		return WindowAll
	}
	return (w + 1) % windowCount
}

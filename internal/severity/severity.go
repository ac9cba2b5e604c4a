package severity

import "fmt"

// Level is a fracture-risk severity band, ordered by ascending danger.
type Level int

const (
	Green Level = iota
	Yellow
	Orange
	Red
)

// String returns the lowercase band name used in logs, JSON and the UI.
func (l Level) String() string {
	switch l {
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Orange:
		return "orange"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// MarshalJSON encodes the Level as its band name.
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// Thresholds holds the three ascending ROP-derivative cutoffs that separate
// the four severity bands. Values are in (ft/hr)/s.
type Thresholds struct {
	Yellow float64 `yaml:"yellow"`
	Orange float64 `yaml:"orange"`
	Red    float64 `yaml:"red"`
}

// Default cutoff values, matching the reference EDR detection profile.
const (
	DefaultYellow = 3.0
	DefaultOrange = 3.5
	DefaultRed    = 4.0
)

// DefaultThresholds returns the standard detection profile.
func DefaultThresholds() Thresholds {
	return Thresholds{Yellow: DefaultYellow, Orange: DefaultOrange, Red: DefaultRed}
}

// Validate checks that the cutoffs are strictly ascending.
func (t Thresholds) Validate() error {
	if !(t.Yellow < t.Orange && t.Orange < t.Red) {
		return fmt.Errorf("severity: thresholds must be strictly ascending, got yellow=%v orange=%v red=%v",
			t.Yellow, t.Orange, t.Red)
	}
	return nil
}

// Classify maps a derivative value to its severity band.
//
// A value exactly on a cutoff belongs to the band below it: Classify(t.Red)
// is Orange, not Red. NaN (an undefined derivative) compares false against
// every cutoff and therefore classifies as Green.
func (t Thresholds) Classify(d float64) Level {
	switch {
	case d > t.Red:
		return Red
	case d > t.Orange:
		return Orange
	case d > t.Yellow:
		return Yellow
	default:
		return Green
	}
}

// ClassifyAll classifies each value in ds.
func (t Thresholds) ClassifyAll(ds []float64) []Level {
	out := make([]Level, len(ds))
	for i, d := range ds {
		out[i] = t.Classify(d)
	}
	return out
}

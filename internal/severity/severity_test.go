package severity

import (
	"math"
	"testing"
)

func TestClassify_Bands(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name string
		d    float64
		want Level
	}{
		{"well below yellow", 0, Green},
		{"negative", -10, Green},
		{"exactly yellow", 3.0, Green},
		{"just above yellow", 3.01, Yellow},
		{"exactly orange", 3.5, Yellow},
		{"just above orange", 3.51, Orange},
		{"exactly red", 4.0, Orange},
		{"just above red", 4.0001, Red},
		{"far above red", 150, Red},
		{"positive infinity", math.Inf(1), Red},
		{"undefined (NaN)", math.NaN(), Green},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := th.Classify(tc.d); got != tc.want {
				t.Errorf("Classify(%v) = %v, want %v", tc.d, got, tc.want)
			}
		})
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	th := Thresholds{Yellow: 1, Orange: 2, Red: 3}

	if got := th.Classify(2.5); got != Orange {
		t.Errorf("Classify(2.5) = %v, want %v", got, Orange)
	}
	if got := th.Classify(3); got != Orange {
		t.Errorf("Classify(redT) = %v, want %v (boundary belongs to lower band)", got, Orange)
	}
	if got := th.Classify(3 + 1e-9); got != Red {
		t.Errorf("Classify(redT+eps) = %v, want %v", got, Red)
	}
}

func TestClassifyAll(t *testing.T) {
	th := DefaultThresholds()
	got := th.ClassifyAll([]float64{0, 3.2, 3.7, 5})
	want := []Level{Green, Yellow, Orange, Red}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ClassifyAll[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLevel_Ordering(t *testing.T) {
	if !(Green < Yellow && Yellow < Orange && Orange < Red) {
		t.Fatal("levels must be ordered by ascending danger")
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		l    Level
		want string
	}{
		{Green, "green"},
		{Yellow, "yellow"},
		{Orange, "orange"},
		{Red, "red"},
	}
	for _, tc := range tests {
		if got := tc.l.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", int(tc.l), got, tc.want)
		}
	}
}

func TestThresholds_Validate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Errorf("default thresholds should validate: %v", err)
	}
	if err := (Thresholds{Yellow: 3, Orange: 3, Red: 4}).Validate(); err == nil {
		t.Error("expected error for non-ascending thresholds")
	}
	if err := (Thresholds{Yellow: 5, Orange: 4, Red: 3}).Validate(); err == nil {
		t.Error("expected error for descending thresholds")
	}
}

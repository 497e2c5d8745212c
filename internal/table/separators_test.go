package table

import (
	"reflect"
	"testing"
)

// signalWithPeaks builds a flat signal with spikes at the given positions.
func signalWithPeaks(size int, peaks map[int]float64) []float64 {
	signal := make([]float64, size)
	for pos, v := range peaks {
		signal[pos] = v
	}
	return signal
}

func TestExtractSeparatorsMergesClosePeaks(t *testing.T) {
	params := DefaultParams()

	// Two peaks 2 pixels apart, below the merge window: one separator.
	signal := signalWithPeaks(100, map[int]float64{40: 1000, 42: 1000})
	got := ExtractSeparators(signal, params)
	if len(got) != 1 {
		t.Fatalf("got %d separators, want 1 (merged): %v", len(got), got)
	}
	if got[0] != 41 {
		t.Errorf("merged centroid: got %d, want 41", got[0])
	}
}

func TestExtractSeparatorsKeepsDistantPeaks(t *testing.T) {
	params := DefaultParams()

	// Two peaks 50 pixels apart, above the merge window: two separators.
	signal := signalWithPeaks(100, map[int]float64{20: 1000, 70: 1000})
	got := ExtractSeparators(signal, params)
	if !reflect.DeepEqual(got, []int{20, 70}) {
		t.Errorf("got %v, want [20 70]", got)
	}
}

func TestExtractSeparatorsWeightedCentroid(t *testing.T) {
	params := DefaultParams()

	// Unequal intensities inside one cluster pull the centroid toward
	// the stronger peak.
	signal := signalWithPeaks(100, map[int]float64{40: 3000, 43: 1000})
	got := ExtractSeparators(signal, params)
	if len(got) != 1 {
		t.Fatalf("got %d separators, want 1: %v", len(got), got)
	}
	// (40*3000 + 43*1000) / 4000 = 40.75 -> 41
	if got[0] != 41 {
		t.Errorf("weighted centroid: got %d, want 41", got[0])
	}
}

func TestExtractSeparatorsRelativeThreshold(t *testing.T) {
	params := DefaultParams()

	// A sub-threshold bump next to a dominant peak must not register.
	signal := signalWithPeaks(200, map[int]float64{50: 1000, 150: 100})
	got := ExtractSeparators(signal, params)
	if !reflect.DeepEqual(got, []int{50}) {
		t.Errorf("got %v, want [50]", got)
	}

	// Scaling the whole signal must not change the result: the
	// threshold is relative, not absolute.
	scaled := make([]float64, len(signal))
	for i, v := range signal {
		scaled[i] = v * 0.001
	}
	if got := ExtractSeparators(scaled, params); !reflect.DeepEqual(got, []int{50}) {
		t.Errorf("scaled signal: got %v, want [50]", got)
	}
}

func TestExtractSeparatorsAscending(t *testing.T) {
	params := DefaultParams()
	signal := signalWithPeaks(300, map[int]float64{10: 900, 100: 1000, 200: 950, 290: 980})

	got := ExtractSeparators(signal, params)
	if len(got) != 4 {
		t.Fatalf("got %d separators, want 4: %v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Errorf("separators not strictly increasing: %v", got)
		}
	}
}

func TestExtractSeparatorsEmptySignal(t *testing.T) {
	params := DefaultParams()
	if got := ExtractSeparators(make([]float64, 100), params); got != nil {
		t.Errorf("flat signal: got %v, want nil", got)
	}
	if got := ExtractSeparators(nil, params); got != nil {
		t.Errorf("nil signal: got %v, want nil", got)
	}
}

func TestGuidedSeparatorsUniformGrid(t *testing.T) {
	params := DefaultParams()

	// Peaks near (but not exactly at) uniform positions on a 101-sample
	// signal with 5 expected separators every 25 px.
	signal := signalWithPeaks(101, map[int]float64{0: 900, 27: 1000, 49: 950, 76: 980, 100: 990})
	got := GuidedSeparators(signal, 5, params)
	want := []int{0, 27, 49, 76, 100}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGuidedSeparatorsDegenerate(t *testing.T) {
	params := DefaultParams()
	if got := GuidedSeparators(nil, 5, params); got != nil {
		t.Errorf("empty signal: got %v, want nil", got)
	}
	if got := GuidedSeparators(make([]float64, 50), 1, params); got != nil {
		t.Errorf("expectedCount 1: got %v, want nil", got)
	}
}

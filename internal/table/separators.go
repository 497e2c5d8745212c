package table

import (
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// Project sums ink intensity along the axis orthogonal to the one being
// measured, producing a 1D signal whose local maxima sit on grid lines.
// AxisRows yields one sample per image row (horizontal separators),
// AxisCols one per column (vertical separators).
func Project(mask gocv.Mat, axis Axis) []float64 {
	rows, cols := mask.Rows(), mask.Cols()

	if axis == AxisRows {
		signal := make([]float64, rows)
		for y := 0; y < rows; y++ {
			var sum float64
			for x := 0; x < cols; x++ {
				sum += float64(mask.GetUCharAt(y, x))
			}
			signal[y] = sum
		}
		return signal
	}

	signal := make([]float64, cols)
	for x := 0; x < cols; x++ {
		var sum float64
		for y := 0; y < rows; y++ {
			sum += float64(mask.GetUCharAt(y, x))
		}
		signal[x] = sum
	}
	return signal
}

// ExtractSeparators finds separator coordinates in a projection signal.
// Positions above PeakFrac of the global maximum count as peak samples;
// the threshold is relative so the result does not depend on absolute
// illumination. Runs of peak samples within MergeGap pixels of each other
// collapse to a single separator at their intensity-weighted centroid, so
// thin double lines and anti-aliasing artifacts are not counted twice.
// Returned coordinates are strictly increasing.
func ExtractSeparators(signal []float64, params Params) []int {
	var maxVal float64
	for _, v := range signal {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		return nil
	}

	threshold := maxVal * params.PeakFrac
	var peaks []int
	for i, v := range signal {
		if v > threshold {
			peaks = append(peaks, i)
		}
	}

	return mergePeaks(peaks, signal, params.MergeGap)
}

// mergePeaks clusters adjacent peak positions and reduces each cluster to
// its intensity-weighted centroid.
func mergePeaks(peaks []int, signal []float64, gap int) []int {
	if len(peaks) == 0 {
		return nil
	}

	var separators []int
	clusterStart := 0
	for i := 1; i <= len(peaks); i++ {
		if i < len(peaks) && peaks[i]-peaks[i-1] <= gap {
			continue
		}
		separators = append(separators, clusterCentroid(peaks[clusterStart:i], signal))
		clusterStart = i
	}
	return separators
}

func clusterCentroid(cluster []int, signal []float64) int {
	positions := make([]float64, len(cluster))
	weights := make([]float64, len(cluster))
	for i, p := range cluster {
		positions[i] = float64(p)
		weights[i] = signal[p]
	}
	return int(stat.Mean(positions, weights) + 0.5)
}

// GuidedSeparators finds separators assuming uniform spacing: for each of
// expectedCount evenly spaced positions it takes the strongest signal
// sample within a window of the expected location. This assisted mode
// trades robustness to missing lines for a hard dependence on the
// configured shape; peak detection remains the primary extractor.
func GuidedSeparators(signal []float64, expectedCount int, params Params) []int {
	if expectedCount < 2 || len(signal) == 0 {
		return nil
	}

	size := len(signal)
	spacing := float64(size-1) / float64(expectedCount-1)
	window := int(spacing * params.SearchWindowFrac)

	separators := make([]int, 0, expectedCount)
	for i := 0; i < expectedCount; i++ {
		expected := int(float64(i) * spacing)
		start := expected - window
		if start < 0 {
			start = 0
		}
		end := expected + window + 1
		if end > size {
			end = size
		}

		best := start
		for j := start + 1; j < end; j++ {
			if signal[j] > signal[best] {
				best = j
			}
		}
		separators = append(separators, best)
	}
	return separators
}

// Package answer classifies rectified table cells as filled or empty by
// ink coverage and assembles per-question answer sets.
package answer

import (
	"omr-grader/internal/table"
	"omr-grader/pkg/geometry"

	"gocv.io/x/gocv"
)

// Params configures cell classification.
type Params struct {
	// InkThreshold is the foreground fraction at or above which a cell
	// counts as filled. Ties go to filled (>=).
	InkThreshold float64
	// MarginFrac is trimmed from each cell side before measuring, so
	// separator-line bleed does not inflate the density.
	MarginFrac float64
}

// DefaultParams returns classification defaults tuned on typical scans.
func DefaultParams() Params {
	return Params{
		InkThreshold: 0.15,
		MarginFrac:   0.20,
	}
}

// WithInkThreshold returns a copy of params with a custom fill threshold.
func (p Params) WithInkThreshold(threshold float64) Params {
	p.InkThreshold = threshold
	return p
}

// Set holds the filled choice indices for one question, ascending.
// Cardinality 0 means no answer, 1 a valid answer, >1 an ambiguous
// answer. None of these is an error condition.
type Set []int

// IsBlank reports whether no cell was filled.
func (s Set) IsBlank() bool { return len(s) == 0 }

// IsAmbiguous reports whether more than one cell was filled.
func (s Set) IsAmbiguous() bool { return len(s) > 1 }

// Single returns the lone filled choice, if there is exactly one.
func (s Set) Single() (int, bool) {
	if len(s) == 1 {
		return s[0], true
	}
	return 0, false
}

// CellRect returns the answer cell rectangle for (question, choice) in
// rectified-image coordinates. Header row and column are skipped: the
// first answer cell sits between the second and third separators.
func CellRect(rowSeps, colSeps []int, shape table.Shape, question, choice int) geometry.RectInt {
	var x1, x2, y1, y2 int
	if shape.Orientation == table.ColumnsAreQuestions {
		x1, x2 = colSeps[question+1], colSeps[question+2]
		y1, y2 = rowSeps[choice+1], rowSeps[choice+2]
	} else {
		x1, x2 = colSeps[choice+1], colSeps[choice+2]
		y1, y2 = rowSeps[question+1], rowSeps[question+2]
	}
	return geometry.RectInt{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Classify measures every answer cell of one question and returns the
// set of filled choice indices.
func Classify(rectified gocv.Mat, rowSeps, colSeps []int, shape table.Shape, question int, params Params) Set {
	var filled Set
	for choice := 0; choice < shape.Choices; choice++ {
		cell := CellRect(rowSeps, colSeps, shape, question, choice)
		if Density(rectified, cell, params.MarginFrac) >= params.InkThreshold {
			filled = append(filled, choice)
		}
	}
	return filled
}

// Density returns the fraction of foreground pixels inside the cell
// after trimming marginFrac from each side.
func Density(mask gocv.Mat, cell geometry.RectInt, marginFrac float64) float64 {
	mx := int(float64(cell.Width) * marginFrac)
	my := int(float64(cell.Height) * marginFrac)

	x1 := cell.X + mx
	x2 := cell.X + cell.Width - mx
	y1 := cell.Y + my
	y2 := cell.Y + cell.Height - my

	// Clamp to the image; separators sit on the rectified border
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > mask.Cols() {
		x2 = mask.Cols()
	}
	if y2 > mask.Rows() {
		y2 = mask.Rows()
	}
	if x2 <= x1 || y2 <= y1 {
		return 0
	}

	var ink int
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if mask.GetUCharAt(y, x) > 128 {
				ink++
			}
		}
	}
	return float64(ink) / float64((x2-x1)*(y2-y1))
}

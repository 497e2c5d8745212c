package answer

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"omr-grader/internal/table"
	"omr-grader/pkg/geometry"

	"gocv.io/x/gocv"
)

var fgWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// fillCell paints a whole grid cell as foreground on a binary mask.
func fillCell(mask *gocv.Mat, x1, y1, x2, y2 int) {
	gocv.Rectangle(mask, image.Rect(x1, y1, x2, y2), fgWhite, -1)
}

func TestCellRectOrientation(t *testing.T) {
	rowSeps := []int{0, 50, 100, 150}
	colSeps := []int{0, 60, 120, 180}

	colShape := table.Shape{Questions: 2, Choices: 2, Orientation: table.ColumnsAreQuestions}
	got := CellRect(rowSeps, colSeps, colShape, 0, 1)
	want := geometry.RectInt{X: 60, Y: 100, Width: 60, Height: 50}
	if got != want {
		t.Errorf("columns=questions q0/c1: got %+v, want %+v", got, want)
	}

	rowShape := table.Shape{Questions: 2, Choices: 2, Orientation: table.RowsAreQuestions}
	got = CellRect(rowSeps, colSeps, rowShape, 1, 0)
	want = geometry.RectInt{X: 60, Y: 100, Width: 60, Height: 50}
	if got != want {
		t.Errorf("rows=questions q1/c0: got %+v, want %+v", got, want)
	}
}

func TestClassifySingleFilledCell(t *testing.T) {
	mask := gocv.NewMatWithSize(150, 150, gocv.MatTypeCV8U)
	defer mask.Close()

	seps := []int{0, 50, 100, 150}
	shape := table.Shape{Questions: 2, Choices: 2, Orientation: table.ColumnsAreQuestions}

	// Question 0 is column 1, choice 1 is row 2
	fillCell(&mask, 50, 100, 100, 150)

	params := DefaultParams()
	if got := Classify(mask, seps, seps, shape, 0, params); !reflect.DeepEqual(got, Set{1}) {
		t.Errorf("question 0: got %v, want [1]", got)
	}
	if got := Classify(mask, seps, seps, shape, 1, params); !got.IsBlank() {
		t.Errorf("question 1: got %v, want blank", got)
	}
}

func TestClassifyMultipleFilledCells(t *testing.T) {
	mask := gocv.NewMatWithSize(150, 150, gocv.MatTypeCV8U)
	defer mask.Close()

	seps := []int{0, 50, 100, 150}
	shape := table.Shape{Questions: 2, Choices: 2, Orientation: table.ColumnsAreQuestions}

	// Both choices of question 1 (column 2) filled
	fillCell(&mask, 100, 50, 150, 100)
	fillCell(&mask, 100, 100, 150, 150)

	got := Classify(mask, seps, seps, shape, 1, DefaultParams())
	if !reflect.DeepEqual(got, Set{0, 1}) {
		t.Errorf("got %v, want [0 1]", got)
	}
	if !got.IsAmbiguous() {
		t.Error("two filled cells not flagged ambiguous")
	}
}

func TestDensityThresholdTieBreak(t *testing.T) {
	// A 10x10 cell with no margin: density has 1/100 resolution, so the
	// threshold boundary can be hit exactly.
	params := Params{InkThreshold: 0.15, MarginFrac: 0}
	shape := table.Shape{Questions: 1, Choices: 1, Orientation: table.ColumnsAreQuestions}
	seps := []int{0, 10, 20}

	tests := []struct {
		name       string
		inkPixels  int
		wantFilled bool
	}{
		{"just below threshold", 14, false},
		{"exactly at threshold", 15, true}, // >= means filled
		{"just above threshold", 16, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := gocv.NewMatWithSize(20, 20, gocv.MatTypeCV8U)
			defer mask.Close()

			// Cell is (10..20, 10..20); paint inkPixels pixels inside it
			painted := 0
			for y := 10; y < 20 && painted < tt.inkPixels; y++ {
				for x := 10; x < 20 && painted < tt.inkPixels; x++ {
					mask.SetUCharAt(y, x, 255)
					painted++
				}
			}

			got := Classify(mask, seps, seps, shape, 0, params)
			if filled := len(got) == 1; filled != tt.wantFilled {
				t.Errorf("density %d/100: filled=%v, want %v", tt.inkPixels, filled, tt.wantFilled)
			}
		})
	}
}

func TestDensityMarginExcludesBorderBleed(t *testing.T) {
	mask := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8U)
	defer mask.Close()

	// Separator-line bleed: foreground only along the cell border
	cell := geometry.RectInt{X: 0, Y: 0, Width: 100, Height: 100}
	gocv.Rectangle(&mask, image.Rect(0, 0, 100, 100), fgWhite, 8)

	if d := Density(mask, cell, 0.20); d != 0 {
		t.Errorf("border bleed leaked into trimmed density: %g", d)
	}
	if d := Density(mask, cell, 0); d == 0 {
		t.Error("untrimmed density should see the border")
	}
}

func TestDensityDegenerateCell(t *testing.T) {
	mask := gocv.NewMatWithSize(50, 50, gocv.MatTypeCV8U)
	defer mask.Close()

	if d := Density(mask, geometry.RectInt{X: 10, Y: 10, Width: 0, Height: 5}, 0.2); d != 0 {
		t.Errorf("zero-width cell density: got %g, want 0", d)
	}
	if d := Density(mask, geometry.RectInt{X: 48, Y: 48, Width: 10, Height: 10}, 0); d != 0 {
		t.Errorf("cell past image edge with no ink: got %g, want 0", d)
	}
}

func TestSetAccessors(t *testing.T) {
	if !(Set{}).IsBlank() {
		t.Error("empty set not blank")
	}
	if v, ok := (Set{2}).Single(); !ok || v != 2 {
		t.Errorf("Single: got %d, %v", v, ok)
	}
	if _, ok := (Set{1, 3}).Single(); ok {
		t.Error("Single on ambiguous set")
	}
}

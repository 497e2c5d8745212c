// Package render draws extraction overlays for visual inspection.
package render

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"omr-grader/internal/answer"
	"omr-grader/internal/pipeline"
	"omr-grader/internal/table"
	"omr-grader/pkg/geometry"

	"gocv.io/x/gocv"
)

var (
	separatorColor = color.RGBA{G: 200, A: 255}
	filledColor    = color.RGBA{B: 220, A: 255}
	ambiguousColor = color.RGBA{R: 220, A: 255}
)

// Overlay draws detected separators and classified cells onto a copy of
// the rectified page: green separator lines, blue boxes on filled cells,
// red boxes on the cells of ambiguous questions. The result must carry a
// rectified image (Config.KeepRectified).
func Overlay(result pipeline.PageResult, shape table.Shape) gocv.Mat {
	if result.Rectified.Ptr() == nil || result.Rectified.Empty() {
		return gocv.NewMat()
	}
	out := result.Rectified.Clone()

	w, h := out.Cols(), out.Rows()
	for _, y := range result.RowSeps {
		gocv.Line(&out, image.Pt(0, y), image.Pt(w, y), separatorColor, 1)
	}
	for _, x := range result.ColSeps {
		gocv.Line(&out, image.Pt(x, 0), image.Pt(x, h), separatorColor, 1)
	}

	for q, set := range result.Answers {
		boxColor := filledColor
		if set.IsAmbiguous() {
			boxColor = ambiguousColor
		}
		for _, choice := range set {
			cell := answer.CellRect(result.RowSeps, result.ColSeps, shape, q, choice)
			gocv.Rectangle(&out, rectToImage(cell), boxColor, 2)
		}
	}

	return out
}

// SaveOverlay writes the overlay for one page as a PNG in dir. Pages
// without a rectified image are skipped.
func SaveOverlay(dir string, result pipeline.PageResult, shape table.Shape) error {
	out := Overlay(result, shape)
	defer out.Close()
	if out.Ptr() == nil || out.Empty() {
		return nil
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_debug.png", result.ID))
	if ok := gocv.IMWrite(path, out); !ok {
		return fmt.Errorf("failed to write debug image %s", path)
	}
	return nil
}

func rectToImage(r geometry.RectInt) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

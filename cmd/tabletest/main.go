// Command tabletest runs table localization on a single page image and
// prints the recovered geometry.
package main

import (
	"flag"
	"fmt"
	"os"

	"omr-grader/internal/pipeline"
	"omr-grader/internal/scanio"
	"omr-grader/internal/sheet"
	"omr-grader/internal/table"
)

func main() {
	imagePath := flag.String("image", "", "Path to page image (PNG, JPEG, or TIFF)")
	questions := flag.Int("questions", 0, "Expected number of questions (0 = skip validation)")
	choices := flag.Int("choices", 0, "Expected number of answer choices")
	format := flag.String("format", "columns=questions", "Table format")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: tabletest -image <path> [-questions N -choices P -format columns=questions]")
		os.Exit(1)
	}

	src, err := scanio.LoadMat(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()
	fmt.Printf("Loaded image: %dx%d pixels\n", src.Cols(), src.Rows())

	sheetParams := sheet.DefaultParams()
	tableParams := table.DefaultParams()

	bin := sheet.Binarize(src, sheetParams)
	defer bin.Close()
	grid := sheet.ExtractGridMask(bin, sheetParams)
	defer grid.Close()

	quad, err := table.Localize(grid, tableParams)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Localization failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nTable corners:\n")
	fmt.Printf("  TL (%.0f, %.0f)  TR (%.0f, %.0f)\n", quad.TL.X, quad.TL.Y, quad.TR.X, quad.TR.Y)
	fmt.Printf("  BL (%.0f, %.0f)  BR (%.0f, %.0f)\n", quad.BL.X, quad.BL.Y, quad.BR.X, quad.BR.Y)
	fmt.Printf("Rectified size: %.0fx%.0f\n", quad.Width(), quad.Height())

	rectified := table.Rectify(bin, quad)
	defer rectified.Close()
	rectGrid := sheet.ExtractGridMask(rectified, sheetParams)
	defer rectGrid.Close()

	rowSeps := table.ExtractSeparators(table.Project(rectGrid, table.AxisRows), tableParams)
	colSeps := table.ExtractSeparators(table.Project(rectGrid, table.AxisCols), tableParams)

	fmt.Printf("\nRow separators (%d): %v\n", len(rowSeps), rowSeps)
	fmt.Printf("Col separators (%d): %v\n", len(colSeps), colSeps)

	if *questions > 0 && *choices > 0 {
		orientation, err := table.ParseOrientation(*format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		shape := table.Shape{Questions: *questions, Choices: *choices, Orientation: orientation}
		if err := shape.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid shape: %v\n", err)
			os.Exit(1)
		}
		if err := table.ValidateSeparators(rowSeps, colSeps, shape); err != nil {
			fmt.Printf("\nValidation: FAILED (%v) -> status %s\n", err, pipeline.StatusDimensionMismatch)
			os.Exit(1)
		}
		fmt.Printf("\nValidation: OK (%d rows x %d cols)\n", shape.Rows(), shape.Cols())
	}
}

package table

import "fmt"

// ValidateSeparators checks detected row/column separator positions
// against the expected table shape. Any mismatch is a hard stop for the
// page: the caller flags it and skips cell classification. Boundary
// lists must hold at least two strictly increasing coordinates.
func ValidateSeparators(rowSeps, colSeps []int, shape Shape) error {
	if err := checkMonotonic(AxisRows, rowSeps); err != nil {
		return err
	}
	if err := checkMonotonic(AxisCols, colSeps); err != nil {
		return err
	}

	if len(rowSeps) != shape.RowSeparators() {
		return &DimensionError{Axis: AxisRows, Found: len(rowSeps), Expected: shape.RowSeparators()}
	}
	if len(colSeps) != shape.ColSeparators() {
		return &DimensionError{Axis: AxisCols, Found: len(colSeps), Expected: shape.ColSeparators()}
	}
	return nil
}

func checkMonotonic(axis Axis, seps []int) error {
	if len(seps) < 2 {
		return fmt.Errorf("%s boundaries: need at least 2 separators, got %d", axis, len(seps))
	}
	for i := 1; i < len(seps); i++ {
		if seps[i] <= seps[i-1] {
			return fmt.Errorf("%s boundaries not strictly increasing at index %d (%d <= %d)",
				axis, i, seps[i], seps[i-1])
		}
	}
	return nil
}

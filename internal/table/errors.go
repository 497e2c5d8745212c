package table

import "fmt"

// NotFoundError reports that no four-corner table boundary could be
// recovered from a page's grid mask. Non-fatal to the run: the page is
// flagged and the next page proceeds.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return "table not found: " + e.Reason
}

// Axis selects a projection direction for separator extraction.
type Axis int

const (
	// AxisRows measures horizontal separator lines (row boundaries).
	AxisRows Axis = iota
	// AxisCols measures vertical separator lines (column boundaries).
	AxisCols
)

func (a Axis) String() string {
	if a == AxisRows {
		return "rows"
	}
	return "cols"
}

// DimensionError reports a mismatch between detected separator counts
// and the configured table shape. Non-fatal to the run.
type DimensionError struct {
	Axis     Axis
	Found    int
	Expected int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s separator count mismatch: found %d, expected %d",
		e.Axis, e.Found, e.Expected)
}

// Package table locates the answer table in a grid mask, rectifies its
// perspective, and recovers the row/column separator positions.
package table

import "fmt"

// Orientation describes which table axis carries the questions.
type Orientation int

const (
	// ColumnsAreQuestions lays questions out left-to-right, one column
	// each, with answer choices stacked vertically.
	ColumnsAreQuestions Orientation = iota
	// RowsAreQuestions lays questions out top-to-bottom, one row each,
	// with answer choices side by side.
	RowsAreQuestions
)

func (o Orientation) String() string {
	switch o {
	case ColumnsAreQuestions:
		return "columns=questions"
	case RowsAreQuestions:
		return "rows=questions"
	default:
		return "unknown"
	}
}

// ParseOrientation parses the CLI spelling of an orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "columns=questions", "columns":
		return ColumnsAreQuestions, nil
	case "rows=questions", "rows":
		return RowsAreQuestions, nil
	default:
		return 0, fmt.Errorf("invalid table format %q (want columns=questions or rows=questions)", s)
	}
}

// Shape is the expected table layout, fixed per run.
type Shape struct {
	Questions   int // Number of questions
	Choices     int // Number of answer choices per question
	Orientation Orientation
}

// Validate rejects impossible shapes. A bad shape is a configuration
// error and fatal at startup, before any page is processed.
func (s Shape) Validate() error {
	if s.Questions <= 0 {
		return fmt.Errorf("number of questions must be positive, got %d", s.Questions)
	}
	if s.Choices <= 0 {
		return fmt.Errorf("number of answer choices must be positive, got %d", s.Choices)
	}
	if s.Orientation != ColumnsAreQuestions && s.Orientation != RowsAreQuestions {
		return fmt.Errorf("invalid orientation %d", int(s.Orientation))
	}
	return nil
}

// Rows returns the expected number of grid rows, header included.
func (s Shape) Rows() int {
	if s.Orientation == ColumnsAreQuestions {
		return s.Choices + 1
	}
	return s.Questions + 1
}

// Cols returns the expected number of grid columns, header included.
func (s Shape) Cols() int {
	if s.Orientation == ColumnsAreQuestions {
		return s.Questions + 1
	}
	return s.Choices + 1
}

// RowSeparators returns the expected count of horizontal separator lines.
func (s Shape) RowSeparators() int {
	return s.Rows() + 1
}

// ColSeparators returns the expected count of vertical separator lines.
func (s Shape) ColSeparators() int {
	return s.Cols() + 1
}

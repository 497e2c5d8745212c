package pipeline

import (
	"fmt"
	"runtime"

	"omr-grader/internal/answer"
	"omr-grader/internal/grade"
	"omr-grader/internal/sheet"
	"omr-grader/internal/table"
)

// Config holds the immutable run-wide configuration. It is validated
// once at startup and then shared read-only by all page workers.
type Config struct {
	Shape table.Shape
	Key   grade.Key
	Rule  grade.Rule

	Sheet  sheet.Params
	Table  table.Params
	Answer answer.Params

	// Guided switches separator extraction to the uniform-spacing
	// assisted search instead of peak detection.
	Guided bool

	// KeepRectified retains the rectified page image in each PageResult
	// for debug rendering. The caller owns the Mats and must close them.
	KeepRectified bool

	// Workers is the page-level parallelism. Zero means NumCPU.
	Workers int
}

// NewConfig builds a Config with default tuning for the given shape and
// answer key.
func NewConfig(shape table.Shape, key grade.Key) Config {
	return Config{
		Shape:  shape,
		Key:    key,
		Rule:   grade.DefaultRule(),
		Sheet:  sheet.DefaultParams(),
		Table:  table.DefaultParams(),
		Answer: answer.DefaultParams(),
	}
}

// Validate rejects impossible configuration. Errors here are fatal at
// startup; nothing page-related has run yet.
func (c Config) Validate() error {
	if err := c.Shape.Validate(); err != nil {
		return fmt.Errorf("invalid table shape: %w", err)
	}
	if err := c.Key.Validate(c.Shape.Questions, c.Shape.Choices); err != nil {
		return fmt.Errorf("invalid answer key: %w", err)
	}
	if c.Answer.InkThreshold <= 0 || c.Answer.InkThreshold > 1 {
		return fmt.Errorf("ink threshold must be in (0, 1], got %g", c.Answer.InkThreshold)
	}
	if c.Answer.MarginFrac < 0 || c.Answer.MarginFrac >= 0.5 {
		return fmt.Errorf("cell margin must be in [0, 0.5), got %g", c.Answer.MarginFrac)
	}
	if c.Table.PeakFrac <= 0 || c.Table.PeakFrac >= 1 {
		return fmt.Errorf("peak threshold fraction must be in (0, 1), got %g", c.Table.PeakFrac)
	}
	if c.Table.MergeGap < 0 {
		return fmt.Errorf("merge gap must be non-negative, got %d", c.Table.MergeGap)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Package pipeline runs the page-level OMR extraction and grading flow.
package pipeline

import (
	"errors"
	"log"
	"sync"

	"omr-grader/internal/answer"
	"omr-grader/internal/grade"
	"omr-grader/internal/sheet"
	"omr-grader/internal/table"
	"omr-grader/pkg/geometry"

	"gocv.io/x/gocv"
)

// Status tags the outcome of one page.
type Status int

const (
	StatusOK Status = iota
	StatusTableNotFound
	StatusDimensionMismatch
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusTableNotFound:
		return "table_not_found"
	case StatusDimensionMismatch:
		return "dimension_mismatch"
	default:
		return "unknown"
	}
}

// Page is one input page awaiting processing.
type Page struct {
	ID    string
	Image gocv.Mat
}

// PageResult is the outcome of one page. Failed pages carry a status
// flag and whatever partial geometry was recovered; they never abort
// the run.
type PageResult struct {
	Page    int
	ID      string
	Status  Status
	Message string

	Answers   []answer.Set
	Scores    []float64
	Total     float64
	Ambiguous bool

	// Recovered geometry, exposed for debug rendering
	Quad    geometry.Quad
	RowSeps []int
	ColSeps []int

	// Rectified source-space page, populated only when
	// Config.KeepRectified is set. Owned by the caller.
	Rectified gocv.Mat
}

// HasIssues reports whether the page needs human attention.
func (r PageResult) HasIssues() bool {
	return r.Status != StatusOK || r.Ambiguous
}

// Close releases the rectified debug image, if any.
func (r *PageResult) Close() {
	if r.Rectified.Ptr() != nil {
		r.Rectified.Close()
	}
}

// Processor runs the extraction pipeline with a fixed configuration.
type Processor struct {
	cfg Config
}

// NewProcessor validates the configuration and returns a Processor.
func NewProcessor(cfg Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Processor{cfg: cfg}, nil
}

// ProcessPage runs the six extraction stages on one page. It is a pure
// function of its inputs: no state survives between pages, so pages may
// run concurrently.
func (p *Processor) ProcessPage(src gocv.Mat, pageNum int, id string) PageResult {
	result := PageResult{Page: pageNum, ID: id}

	bin := sheet.Binarize(src, p.cfg.Sheet)
	defer bin.Close()

	grid := sheet.ExtractGridMask(bin, p.cfg.Sheet)
	defer grid.Close()

	quad, err := table.Localize(grid, p.cfg.Table)
	if err != nil {
		return p.fail(result, err)
	}
	result.Quad = quad

	rectified := table.Rectify(bin, quad)
	defer rectified.Close()

	if p.cfg.KeepRectified {
		result.Rectified = table.Rectify(src, quad)
	}

	// Grid lines are re-extracted in rectified space; projection peaks
	// only line up with rows and columns after the skew is gone.
	rectGrid := sheet.ExtractGridMask(rectified, p.cfg.Sheet)
	defer rectGrid.Close()

	result.RowSeps = p.separators(rectGrid, table.AxisRows, p.cfg.Shape.RowSeparators())
	result.ColSeps = p.separators(rectGrid, table.AxisCols, p.cfg.Shape.ColSeparators())

	if err := table.ValidateSeparators(result.RowSeps, result.ColSeps, p.cfg.Shape); err != nil {
		return p.fail(result, err)
	}

	result.Answers = make([]answer.Set, p.cfg.Shape.Questions)
	for q := 0; q < p.cfg.Shape.Questions; q++ {
		result.Answers[q] = answer.Classify(rectified, result.RowSeps, result.ColSeps,
			p.cfg.Shape, q, p.cfg.Answer)
	}

	result.Scores, result.Total, result.Ambiguous = grade.Answers(result.Answers, p.cfg.Key, p.cfg.Rule)
	return result
}

func (p *Processor) separators(rectGrid gocv.Mat, axis table.Axis, expected int) []int {
	signal := table.Project(rectGrid, axis)
	if p.cfg.Guided {
		return table.GuidedSeparators(signal, expected, p.cfg.Table)
	}
	return table.ExtractSeparators(signal, p.cfg.Table)
}

// fail converts a stage error into a flagged result. Only the two
// extraction error types are expected; anything else is still flagged
// rather than allowed to abort the run.
func (p *Processor) fail(result PageResult, err error) PageResult {
	var notFound *table.NotFoundError
	var dimension *table.DimensionError
	switch {
	case errors.As(err, &notFound):
		result.Status = StatusTableNotFound
	case errors.As(err, &dimension):
		result.Status = StatusDimensionMismatch
	default:
		result.Status = StatusDimensionMismatch
	}
	result.Message = err.Error()
	log.Printf("page %s: %v", result.ID, err)
	return result
}

// ProcessAll runs every page through the pipeline using a fixed worker
// pool. Results land in a pre-sized slice keyed by page index, so
// workers never contend on shared state and a single join barrier is
// the only synchronization.
func (p *Processor) ProcessAll(pages []Page) []PageResult {
	results := make([]PageResult, len(pages))

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.cfg.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = p.ProcessPage(pages[i].Image, i, pages[i].ID)
			}
		}()
	}

	for i := range pages {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}

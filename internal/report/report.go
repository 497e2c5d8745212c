// Package report writes run results as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"omr-grader/internal/pipeline"
)

// WriteCSV writes one row per page: id, total score, per-question
// scores, and an issues column. Failed pages keep their row so the
// roster stays complete; their score columns are empty.
func WriteCSV(w io.Writer, results []pipeline.PageResult, questions int) error {
	cw := csv.NewWriter(w)

	header := []string{"page_id", "total_score", "issues"}
	for q := 1; q <= questions; q++ {
		header = append(header, fmt.Sprintf("question_%d_score", q))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := make([]string, 0, len(header))
		row = append(row, r.ID)
		if r.Status == pipeline.StatusOK {
			row = append(row, formatScore(r.Total))
		} else {
			row = append(row, "")
		}
		row = append(row, issuesFlag(r))

		for q := 0; q < questions; q++ {
			if q < len(r.Scores) {
				row = append(row, formatScore(r.Scores[q]))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the results to a file path.
func SaveCSV(path string, results []pipeline.PageResult, questions int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, results, questions)
}

func issuesFlag(r pipeline.PageResult) string {
	switch {
	case r.Status != pipeline.StatusOK:
		if r.Message != "" {
			return "extraction_issues; " + r.Message
		}
		return "extraction_issues"
	case r.Ambiguous:
		return "ambiguous_answers"
	default:
		return "OK"
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

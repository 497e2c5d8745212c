package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"omr-grader/internal/answer"
	"omr-grader/internal/pipeline"
)

func TestWriteCSV(t *testing.T) {
	results := []pipeline.PageResult{
		{
			Page: 0, ID: "student_001", Status: pipeline.StatusOK,
			Answers: []answer.Set{{2}, {0}},
			Scores:  []float64{1, -0.25},
			Total:   0.75,
		},
		{
			Page: 1, ID: "student_002", Status: pipeline.StatusTableNotFound,
			Message: "table not found: no contours in grid mask",
		},
		{
			Page: 2, ID: "student_003", Status: pipeline.StatusOK,
			Answers:   []answer.Set{{1, 2}, {0}},
			Scores:    []float64{0, 1},
			Total:     1,
			Ambiguous: true,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, results, 2); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(rows))
	}

	header := rows[0]
	if header[0] != "page_id" || header[3] != "question_1_score" || header[4] != "question_2_score" {
		t.Errorf("unexpected header: %v", header)
	}

	ok := rows[1]
	if ok[0] != "student_001" || ok[1] != "0.75" || ok[2] != "OK" || ok[3] != "1" || ok[4] != "-0.25" {
		t.Errorf("graded row: %v", ok)
	}

	failed := rows[2]
	if failed[1] != "" {
		t.Errorf("failed page has a total score: %v", failed)
	}
	if !strings.HasPrefix(failed[2], "extraction_issues") {
		t.Errorf("failed page issues flag: %q", failed[2])
	}
	if failed[3] != "" || failed[4] != "" {
		t.Errorf("failed page has question scores: %v", failed)
	}

	ambiguous := rows[3]
	if ambiguous[2] != "ambiguous_answers" {
		t.Errorf("ambiguous flag: %q", ambiguous[2])
	}
}

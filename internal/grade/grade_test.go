package grade

import (
	"math"
	"testing"

	"omr-grader/internal/answer"
)

func TestAnswersScoring(t *testing.T) {
	key := Key{2, 0, 1, 3}
	rule := DefaultRule()

	answers := []answer.Set{
		{2},    // correct
		{1},    // incorrect
		{},     // blank
		{0, 3}, // ambiguous
	}

	scores, total, ambiguous := Answers(answers, key, rule)

	want := []float64{1.0, -0.25, 0.0, 0.0}
	for i, s := range scores {
		if s != want[i] {
			t.Errorf("question %d: got %g, want %g", i+1, s, want[i])
		}
	}
	if total != 0.75 {
		t.Errorf("total: got %g, want 0.75", total)
	}
	if !ambiguous {
		t.Error("ambiguous answer not flagged")
	}
}

func TestAnswersCustomRule(t *testing.T) {
	key := Key{0, 0}
	rule := Rule{CorrectPoints: 2, IncorrectPoints: 0, NoAnswerPoints: 0.5}

	scores, total, ambiguous := Answers([]answer.Set{{0}, {}}, key, rule)
	if scores[0] != 2 || scores[1] != 0.5 {
		t.Errorf("scores: got %v, want [2 0.5]", scores)
	}
	if total != 2.5 {
		t.Errorf("total: got %g, want 2.5", total)
	}
	if ambiguous {
		t.Error("nothing was ambiguous")
	}
}

func TestKeyValidate(t *testing.T) {
	tests := []struct {
		name      string
		key       Key
		questions int
		choices   int
		wantErr   bool
	}{
		{"valid", Key{0, 1, 2}, 3, 4, false},
		{"wrong length", Key{0, 1}, 3, 4, true},
		{"choice out of range", Key{0, 4, 2}, 3, 4, true},
		{"negative choice", Key{0, -1, 2}, 3, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate(tt.questions, tt.choices)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 6})
	if s.Graded != 3 {
		t.Errorf("Graded: got %d, want 3", s.Graded)
	}
	if s.Mean != 4 {
		t.Errorf("Mean: got %g, want 4", s.Mean)
	}
	if math.Abs(s.StdDev-2) > 1e-9 {
		t.Errorf("StdDev: got %g, want 2", s.StdDev)
	}
	if s.Min != 2 || s.Max != 6 {
		t.Errorf("Min/Max: got %g/%g, want 2/6", s.Min, s.Max)
	}

	empty := Summarize(nil)
	if empty.Graded != 0 || empty.Mean != 0 {
		t.Errorf("empty summary: %+v", empty)
	}
}

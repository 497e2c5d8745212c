// Package grade applies per-question scoring rules to extracted answers.
package grade

import (
	"fmt"

	"omr-grader/internal/answer"

	"gonum.org/v1/gonum/stat"
)

// Rule defines the points awarded per question outcome.
type Rule struct {
	CorrectPoints   float64
	IncorrectPoints float64
	NoAnswerPoints  float64
}

// DefaultRule returns the usual exam scoring: +1 correct, -0.25
// incorrect, 0 for a blank answer.
func DefaultRule() Rule {
	return Rule{
		CorrectPoints:   1.0,
		IncorrectPoints: -0.25,
		NoAnswerPoints:  0.0,
	}
}

// Key holds the correct choice index per question, 0-based.
type Key []int

// Validate checks the key against the number of questions and choices.
func (k Key) Validate(questions, choices int) error {
	if len(k) != questions {
		return fmt.Errorf("answer key has %d entries, want %d", len(k), questions)
	}
	for i, c := range k {
		if c < 0 || c >= choices {
			return fmt.Errorf("answer key entry %d out of range: %d (have %d choices)", i+1, c, choices)
		}
	}
	return nil
}

// Answers scores one page's answer sets against the key. An ambiguous
// answer (more than one filled cell) scores zero and raises the
// ambiguous flag; it never fails the page.
func Answers(answers []answer.Set, key Key, rule Rule) (scores []float64, total float64, ambiguous bool) {
	scores = make([]float64, len(answers))
	for i, set := range answers {
		switch {
		case set.IsAmbiguous():
			scores[i] = 0
			ambiguous = true
		case set.IsBlank():
			scores[i] = rule.NoAnswerPoints
		default:
			choice, _ := set.Single()
			if choice == key[i] {
				scores[i] = rule.CorrectPoints
			} else {
				scores[i] = rule.IncorrectPoints
			}
		}
		total += scores[i]
	}
	return scores, total, ambiguous
}

// Summary holds run-wide score statistics.
type Summary struct {
	Pages  int
	Graded int // pages without extraction issues
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes statistics over the totals of successfully graded
// pages.
func Summarize(totals []float64) Summary {
	s := Summary{Graded: len(totals)}
	if len(totals) == 0 {
		return s
	}

	s.Mean = stat.Mean(totals, nil)
	if len(totals) > 1 {
		s.StdDev = stat.StdDev(totals, nil)
	}
	s.Min, s.Max = totals[0], totals[0]
	for _, t := range totals[1:] {
		if t < s.Min {
			s.Min = t
		}
		if t > s.Max {
			s.Max = t
		}
	}
	return s
}

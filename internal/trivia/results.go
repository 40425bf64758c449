package trivia

import (
	"fmt"
	"math"
	"strings"
)

// MaxPointsPerQuestion is the best score a single question can give.
const MaxPointsPerQuestion = 100

// Results summarise a finished daily game.
type Results struct {
	Date      string
	Questions []string
	Answers   []string
	Scores    []int
}

func (r Results) Total() int {
	total := 0
	for _, s := range r.Scores {
		total += s
	}
	return total
}

func (r Results) Max() int {
	return len(r.Scores) * MaxPointsPerQuestion
}

// Percentage is the rounded share of the maximum score, 0 for an empty game.
func (r Results) Percentage() int {
	if r.Max() == 0 {
		return 0
	}
	return int(math.Round(float64(r.Total()) / float64(r.Max()) * 100)) //nolint:mnd // percent
}

// Mark grades a single question score.
type Mark string

const (
	MarkGreen  Mark = "🟢"
	MarkYellow Mark = "🟡"
	MarkOrange Mark = "🟠"
	MarkRed    Mark = "🔴"
)

// MarkFor grades score: 80 and up is green, 50 and up yellow, anything above zero orange.
func MarkFor(score int) Mark {
	switch {
	case score >= 80: //nolint:mnd // grading thresholds
		return MarkGreen
	case score >= 50: //nolint:mnd // grading thresholds
		return MarkYellow
	case score > 0:
		return MarkOrange
	default:
		return MarkRed
	}
}

func (r Results) Marks() []Mark {
	marks := make([]Mark, 0, len(r.Scores))
	for _, s := range r.Scores {
		marks = append(marks, MarkFor(s))
	}
	return marks
}

// ShareText formats the spoiler-free summary players paste to others.
func (r Results) ShareText(site string) string {
	marks := make([]string, 0, len(r.Scores))
	for _, m := range r.Marks() {
		marks = append(marks, string(m))
	}
	return fmt.Sprintf("The Daily Take - %s\n\n%s\n\nScore: %d/%d (%d%%)\n\nPlay at: %s",
		r.Date, strings.Join(marks, " "), r.Total(), r.Max(), r.Percentage(), site)
}

// Message is the verdict shown with the final score.
func (r Results) Message() string {
	switch p := r.Percentage(); {
	case p >= 90: //nolint:mnd // verdict thresholds
		return "Outstanding! You're a trivia master!"
	case p >= 70: //nolint:mnd // verdict thresholds
		return "Great job! Solid performance!"
	case p >= 50: //nolint:mnd // verdict thresholds
		return "Not bad! Room to improve."
	case p >= 30: //nolint:mnd // verdict thresholds
		return "Keep practicing!"
	default:
		return "Tough day! Try again tomorrow."
	}
}

package trivia

import (
	"math"
	"strings"
)

// ScoreOpenAnswer returns the points of the first accepted answer equal to answer, ignoring case and surrounding
// whitespace. Unknown answers and questions that are not open score 0.
func ScoreOpenAnswer(q Question, answer string) int {
	open, ok := q.(OpenQuestion)
	if !ok {
		return 0
	}
	normalized := normalizeAnswer(answer)
	for _, a := range open.Answers {
		if strings.ToLower(a.Text) == normalized {
			return a.Points
		}
	}
	return 0
}

// ScoreRankedAnswer returns the share of items in their correct position, scaled to 0-100 and rounded.
//
// Only the prefix shared by order and the correct list is compared. Questions that are not ranked score 0.
func ScoreRankedAnswer(q Question, order []string) int {
	ranked, ok := q.(RankedQuestion)
	if !ok || len(ranked.RankedList) == 0 {
		return 0
	}
	matches := 0
	for i := range min(len(order), len(ranked.RankedList)) {
		if order[i] == ranked.RankedList[i] {
			matches++
		}
	}
	return int(math.Round(float64(matches) / float64(len(ranked.RankedList)) * 100)) //nolint:mnd // percent
}

// IsPermutation reports whether order arranges every item of a ranked question exactly once.
func IsPermutation(q Question, order []string) bool {
	ranked, ok := q.(RankedQuestion)
	if !ok || len(order) != len(ranked.RankedList) {
		return false
	}
	used := make(map[string]bool, len(ranked.RankedList))
	for _, item := range ranked.RankedList {
		used[item] = false
	}
	for _, item := range order {
		seen, known := used[item]
		if !known || seen {
			return false
		}
		used[item] = true
	}
	return true
}

// ValidAnswers returns the accepted answers of an open question in stored order.
func ValidAnswers(q Question) []string {
	switch q := q.(type) {
	case OpenQuestion:
		answers := make([]string, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, a.Text)
		}
		return answers
	case RankedQuestion:
		return []string{}
	}
	return []string{}
}

// SuggestAnswers returns up to limit accepted answers containing typed, ignoring case.
func SuggestAnswers(q Question, typed string, limit int) []string {
	needle := strings.ToLower(typed)
	if needle == "" || limit <= 0 {
		return []string{}
	}
	suggestions := []string{}
	for _, answer := range ValidAnswers(q) {
		if strings.Contains(strings.ToLower(answer), needle) {
			suggestions = append(suggestions, answer)
			if len(suggestions) == limit {
				break
			}
		}
	}
	return suggestions
}

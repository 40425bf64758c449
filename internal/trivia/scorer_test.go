package trivia_test

import (
	"github.com/myrjola/dailytake/internal/trivia"
	"github.com/stretchr/testify/require"
	"testing"
)

var (
	magnificentSeven = trivia.OpenQuestion{
		Details: trivia.Details{
			ID:       "daily-2025-01-09-1",
			Category: trivia.CategoryFinance,
			Text:     "Name a company in the 'Magnificent Seven' tech stocks",
		},
		Answers: []trivia.Answer{
			{Text: "Apple", Points: 15},
			{Text: "Microsoft", Points: 15},
			{Text: "Alphabet", Points: 20},
			{Text: "Meta", Points: 25},
			{Text: "Nvidia", Points: 15},
			{Text: "Tesla", Points: 25},
		},
	}
	nflWins = trivia.RankedQuestion{
		Details: trivia.Details{
			ID:       "daily-2025-01-09-4",
			Category: trivia.CategorySports,
			Text:     "Rank these NFL teams by 2024 regular season wins: Chiefs, Lions, Vikings, Eagles",
		},
		RankedList: []string{"Lions", "Chiefs", "Vikings", "Eagles"},
	}
)

func TestScoreOpenAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question trivia.Question
		answer   string
		want     int
	}{
		{name: "exact", question: magnificentSeven, answer: "Nvidia", want: 15},
		{name: "case and whitespace", question: magnificentSeven, answer: "nvidia ", want: 15},
		{name: "upper case", question: magnificentSeven, answer: "  TESLA", want: 25},
		{name: "ticker is not an alias", question: magnificentSeven, answer: "NVDA", want: 0},
		{name: "no partial match", question: magnificentSeven, answer: "Micro", want: 0},
		{name: "empty", question: magnificentSeven, answer: "   ", want: 0},
		{name: "ranked question", question: nflWins, answer: "Lions", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, trivia.ScoreOpenAnswer(tt.question, tt.answer))
		})
	}
}

func TestScoreOpenAnswer_firstMatchWins(t *testing.T) {
	// Catalog validation rejects this, but the scorer still picks the first stored answer.
	q := trivia.OpenQuestion{
		Details: trivia.Details{ID: "dup", Category: trivia.CategoryFinance, Text: "Dup"},
		Answers: []trivia.Answer{{Text: "Nvidia", Points: 15}, {Text: "NVIDIA", Points: 40}},
	}
	require.Equal(t, 15, trivia.ScoreOpenAnswer(q, "nvidia"))
}

func TestScoreRankedAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question trivia.Question
		order    []string
		want     int
	}{
		{name: "two swapped", question: nflWins, order: []string{"Lions", "Vikings", "Chiefs", "Eagles"}, want: 50},
		{name: "full match", question: nflWins, order: []string{"Lions", "Chiefs", "Vikings", "Eagles"}, want: 100},
		{name: "rotation", question: nflWins, order: []string{"Eagles", "Lions", "Chiefs", "Vikings"}, want: 0},
		{name: "one correct", question: nflWins, order: []string{"Lions", "Eagles", "Chiefs", "Vikings"}, want: 25},
		{name: "short prefix", question: nflWins, order: []string{"Lions", "Chiefs"}, want: 50},
		{name: "too long", question: nflWins, order: []string{"Lions", "Chiefs", "Vikings", "Eagles", "Bills"}, want: 100},
		{name: "empty", question: nflWins, order: nil, want: 0},
		{name: "open question", question: magnificentSeven, order: []string{"Apple"}, want: 0},
		{
			name: "rounds to nearest",
			question: trivia.RankedQuestion{
				Details:    trivia.Details{ID: "three", Category: trivia.CategoryGeneral, Text: "Three"},
				RankedList: []string{"a", "b", "c"},
			},
			order: []string{"a", "c", "b"},
			want:  33,
		},
		{
			name: "rounds half up",
			question: trivia.RankedQuestion{
				Details:    trivia.Details{ID: "eight", Category: trivia.CategoryGeneral, Text: "Eight"},
				RankedList: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
			},
			order: []string{"a", "c", "b", "e", "d", "g", "f", "i"},
			want:  13,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, trivia.ScoreRankedAnswer(tt.question, tt.order))
		})
	}
}

func TestIsPermutation(t *testing.T) {
	tests := []struct {
		name     string
		question trivia.Question
		order    []string
		want     bool
	}{
		{name: "correct order", question: nflWins, order: []string{"Lions", "Chiefs", "Vikings", "Eagles"}, want: true},
		{name: "shuffled", question: nflWins, order: []string{"Eagles", "Vikings", "Lions", "Chiefs"}, want: true},
		{name: "repeated item", question: nflWins, order: []string{"Lions", "Lions", "Lions", "Lions"}, want: false},
		{name: "unknown item", question: nflWins, order: []string{"Lions", "Chiefs", "Vikings", "Bears"}, want: false},
		{name: "too short", question: nflWins, order: []string{"Lions", "Chiefs", "Vikings"}, want: false},
		{
			name:     "extra item",
			question: nflWins,
			order:    []string{"Lions", "Chiefs", "Vikings", "Eagles", "Eagles"},
			want:     false,
		},
		{name: "open question", question: magnificentSeven, order: []string{"Apple"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, trivia.IsPermutation(tt.question, tt.order))
		})
	}
}

func TestValidAnswers(t *testing.T) {
	require.Equal(t, []string{"Apple", "Microsoft", "Alphabet", "Meta", "Nvidia", "Tesla"},
		trivia.ValidAnswers(magnificentSeven))
	require.Empty(t, trivia.ValidAnswers(nflWins))
}

func TestSuggestAnswers(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		limit int
		want  []string
	}{
		{name: "substring", typed: "a", limit: 5, want: []string{"Apple", "Alphabet", "Meta", "Nvidia", "Tesla"}},
		{name: "limit", typed: "a", limit: 2, want: []string{"Apple", "Alphabet"}},
		{name: "case insensitive", typed: "MICRO", limit: 5, want: []string{"Microsoft"}},
		{name: "empty input", typed: "", limit: 5, want: []string{}},
		{name: "no match", typed: "xyz", limit: 5, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, trivia.SuggestAnswers(magnificentSeven, tt.typed, tt.limit))
		})
	}
	require.Empty(t, trivia.SuggestAnswers(nflWins, "Li", 5))
}

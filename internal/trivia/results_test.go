package trivia_test

import (
	"github.com/myrjola/dailytake/internal/trivia"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestResults(t *testing.T) {
	results := trivia.Results{
		Date:      "2025-01-09",
		Questions: []string{"q1", "q2", "q3", "q4", "q5"},
		Answers:   []string{"Nvidia", "Bitcoin", "Lions,Vikings,Chiefs,Eagles", "Texas", "Taylor Swift"},
		Scores:    []int{15, 100, 50, 0, 85},
	}

	require.Equal(t, 250, results.Total())
	require.Equal(t, 500, results.Max())
	require.Equal(t, 50, results.Percentage())
	require.Equal(t, []trivia.Mark{
		trivia.MarkOrange, trivia.MarkGreen, trivia.MarkYellow, trivia.MarkRed, trivia.MarkGreen,
	}, results.Marks())

	want := "The Daily Take - 2025-01-09\n\n🟠 🟢 🟡 🔴 🟢\n\nScore: 250/500 (50%)\n\nPlay at: thedailytake.com"
	require.Equal(t, want, results.ShareText("thedailytake.com"))
	require.Equal(t, "Not bad! Room to improve.", results.Message())
}

func TestResults_empty(t *testing.T) {
	var results trivia.Results
	require.Equal(t, 0, results.Total())
	require.Equal(t, 0, results.Max())
	require.Equal(t, 0, results.Percentage())
	require.Equal(t, "Tough day! Try again tomorrow.", results.Message())
}

func TestMarkFor(t *testing.T) {
	tests := []struct {
		score int
		want  trivia.Mark
	}{
		{score: 100, want: trivia.MarkGreen},
		{score: 80, want: trivia.MarkGreen},
		{score: 79, want: trivia.MarkYellow},
		{score: 50, want: trivia.MarkYellow},
		{score: 49, want: trivia.MarkOrange},
		{score: 1, want: trivia.MarkOrange},
		{score: 0, want: trivia.MarkRed},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, trivia.MarkFor(tt.score), "score %d", tt.score)
	}
}

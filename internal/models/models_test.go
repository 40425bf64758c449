package models_test

import (
	"github.com/myrjola/dailytake/internal/models"
	"github.com/myrjola/dailytake/internal/trivia"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestGameState_Advance(t *testing.T) {
	state := models.NewGameState("2025-01-09")
	for i, score := range []int{15, 100, 50} {
		require.False(t, state.IsComplete)
		require.Equal(t, i, state.CurrentQuestionIndex)
		require.NoError(t, state.Advance("answer", score, 3))
	}
	require.True(t, state.IsComplete)
	require.Equal(t, 2, state.CurrentQuestionIndex)
	require.Equal(t, []int{15, 100, 50}, state.Scores)
	require.ErrorIs(t, state.Advance("late", 10, 3), models.ErrGameComplete)
	require.Len(t, state.Answers, 3)

	game := trivia.DailyGame{Date: "2025-01-09", Questions: []trivia.Question{
		trivia.OpenQuestion{Details: trivia.Details{ID: "a", Category: trivia.CategoryFinance, Text: "First"}},
		trivia.OpenQuestion{Details: trivia.Details{ID: "b", Category: trivia.CategorySports, Text: "Second"}},
		trivia.OpenQuestion{Details: trivia.Details{ID: "c", Category: trivia.CategoryGeneral, Text: "Third"}},
	}}
	results := state.Results(game)
	require.Equal(t, []string{"First", "Second", "Third"}, results.Questions)
	require.Equal(t, 165, results.Total())
}

func TestJSONList(t *testing.T) {
	list := models.JSONList[string]{"Lions, Chiefs", `quote "me"`}
	value, err := list.Value()
	require.NoError(t, err)
	require.Equal(t, `["Lions, Chiefs","quote \"me\""]`, value)

	var scanned models.JSONList[string]
	require.NoError(t, scanned.Scan(value))
	require.Equal(t, list, scanned)

	var scores models.JSONList[int]
	require.NoError(t, scores.Scan([]byte("[15,100]")))
	require.Equal(t, models.JSONList[int]{15, 100}, scores)
	require.Error(t, scores.Scan(42))

	var empty models.JSONList[int]
	value, err = empty.Value()
	require.NoError(t, err)
	require.Equal(t, "[]", value)
}

func TestSampleLeaderboard(t *testing.T) {
	entries := models.SampleLeaderboard()
	require.Len(t, entries, 10)
	for i := 1; i < len(entries); i++ {
		require.Equal(t, i+1, entries[i].Rank)
		require.Less(t, entries[i].Score, entries[i-1].Score)
	}
}

package trivia_test

import (
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/trivia"
	"github.com/stretchr/testify/require"
	"testing"
)

func fullCatalogQuestions() []trivia.Question {
	questions := make([]trivia.Question, 0, len(partitionSizes))
	for p := range partitionSizes {
		questions = append(questions, newTestQuestion(p, 0))
	}
	return questions
}

func TestNewCatalog(t *testing.T) {
	catalog := newTestCatalog(t)
	require.Equal(t, 18, catalog.Len())
	finance := trivia.Partition{Category: trivia.CategoryFinance, Kind: trivia.KindOpen}
	require.Len(t, catalog.Partition(finance), 3)
	require.Equal(t, "finance-open-0", catalog.Partition(finance)[0].Describe().ID)
}

func TestNewCatalog_emptyPartition(t *testing.T) {
	var questions []trivia.Question
	for _, q := range fullCatalogQuestions() {
		if trivia.PartitionOf(q).String() != "sports-ranked" {
			questions = append(questions, q)
		}
	}
	_, err := trivia.NewCatalog(questions)
	require.ErrorIs(t, err, trivia.ErrEmptyPartition)
}

func TestNewCatalog_duplicateID(t *testing.T) {
	questions := fullCatalogQuestions()
	questions = append(questions, questions[0])
	_, err := trivia.NewCatalog(questions)
	require.ErrorIs(t, err, trivia.ErrDuplicateID)
}

func TestNewCatalog_invalidQuestions(t *testing.T) {
	details := trivia.Details{ID: "bad", Category: trivia.CategoryFinance, Text: "Bad"}
	tests := []struct {
		name     string
		question trivia.Question
	}{
		{name: "no answers", question: trivia.OpenQuestion{Details: details}},
		{
			name: "case-folded duplicate answer",
			question: trivia.OpenQuestion{Details: details, Answers: []trivia.Answer{
				{Text: "Nvidia", Points: 15}, {Text: "NVIDIA", Points: 20},
			}},
		},
		{
			name:     "points out of range",
			question: trivia.OpenQuestion{Details: details, Answers: []trivia.Answer{{Text: "Apple", Points: 101}}},
		},
		{
			name:     "blank answer",
			question: trivia.OpenQuestion{Details: details, Answers: []trivia.Answer{{Text: "  ", Points: 10}}},
		},
		{
			name:     "single ranked item",
			question: trivia.RankedQuestion{Details: details, RankedList: []string{"Only"}},
		},
		{
			name:     "duplicate ranked item",
			question: trivia.RankedQuestion{Details: details, RankedList: []string{"A", "B", "A"}},
		},
		{
			name: "unknown category",
			question: trivia.RankedQuestion{
				Details:    trivia.Details{ID: "bad", Category: "weather", Text: "Bad"},
				RankedList: []string{"A", "B"},
			},
		},
		{
			name: "missing id",
			question: trivia.RankedQuestion{
				Details:    trivia.Details{Category: trivia.CategorySports, Text: "Bad"},
				RankedList: []string{"A", "B"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := trivia.NewCatalog(append(fullCatalogQuestions(), tt.question))
			require.ErrorIs(t, err, trivia.ErrInvalidQuestion)
		})
	}
}

func TestNewOverrides(t *testing.T) {
	overrides, err := trivia.NewOverrides(map[string][]trivia.Question{
		"2025-01-09": newCurated("2025-01-09", 5),
	})
	require.NoError(t, err)
	require.Equal(t, 1, overrides.Len())
	questions, ok := overrides.Lookup("2025-01-09")
	require.True(t, ok)
	require.Len(t, questions, 5)
	_, ok = overrides.Lookup("2025-01-10")
	require.False(t, ok)
}

func TestNewOverrides_invalid(t *testing.T) {
	_, err := trivia.NewOverrides(map[string][]trivia.Question{"09.01.2025": newCurated("x", 5)})
	require.ErrorIs(t, err, trivia.ErrInvalidDate)

	invalid := trivia.OpenQuestion{Details: trivia.Details{ID: "bad", Category: trivia.CategoryGeneral, Text: "Bad"}}
	_, err = trivia.NewOverrides(map[string][]trivia.Question{"2025-01-09": {invalid}})
	require.ErrorIs(t, err, trivia.ErrInvalidQuestion)
	require.True(t, errors.Is(err, trivia.ErrInvalidQuestion))
}

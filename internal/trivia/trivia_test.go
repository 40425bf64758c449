package trivia_test

import (
	"fmt"
	"github.com/myrjola/dailytake/internal/trivia"
	"github.com/stretchr/testify/require"
	"testing"
)

// partitionSizes gives every partition a different size so that the draw order matters.
var partitionSizes = map[trivia.Partition]int{
	{Category: trivia.CategoryFinance, Kind: trivia.KindRanked}: 3,
	{Category: trivia.CategorySports, Kind: trivia.KindRanked}:  2,
	{Category: trivia.CategoryGeneral, Kind: trivia.KindRanked}: 4,
	{Category: trivia.CategoryFinance, Kind: trivia.KindOpen}:   3,
	{Category: trivia.CategorySports, Kind: trivia.KindOpen}:    5,
	{Category: trivia.CategoryGeneral, Kind: trivia.KindOpen}:   1,
}

func newTestQuestion(p trivia.Partition, i int) trivia.Question {
	details := trivia.Details{
		ID:       fmt.Sprintf("%s-%d", p, i),
		Category: p.Category,
		Text:     fmt.Sprintf("Question %d about %s", i, p.Category),
	}
	if p.Kind == trivia.KindOpen {
		return trivia.OpenQuestion{Details: details, Answers: []trivia.Answer{{Text: "Answer", Points: 10}}}
	}
	return trivia.RankedQuestion{Details: details, RankedList: []string{"First", "Second", "Third"}}
}

func newTestCatalog(t *testing.T) *trivia.Catalog {
	t.Helper()
	var questions []trivia.Question
	for p, size := range partitionSizes {
		for i := range size {
			questions = append(questions, newTestQuestion(p, i))
		}
	}
	catalog, err := trivia.NewCatalog(questions)
	require.NoError(t, err)
	return catalog
}

func newCurated(date string, n int) []trivia.Question {
	questions := make([]trivia.Question, 0, n)
	for i := range n {
		questions = append(questions, trivia.OpenQuestion{
			Details: trivia.Details{ID: fmt.Sprintf("daily-%s-%d", date, i+1), Category: trivia.CategoryGeneral,
				Text: "Curated"},
			Answers: []trivia.Answer{{Text: "Yes", Points: 50}},
		})
	}
	return questions
}

func gameIDs(game trivia.DailyGame) []string {
	ids := make([]string, 0, len(game.Questions))
	for _, q := range game.Questions {
		ids = append(ids, q.Describe().ID)
	}
	return ids
}

func TestHashDate(t *testing.T) {
	tests := []struct {
		date string
		want int64
	}{
		{date: "", want: 0},
		{date: "a", want: 97},
		{date: "2025-01-09", want: 274162057},
		{date: "2025-01-11", want: 274162080},
		{date: "2025-03-01", want: 274221631},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			require.Equal(t, tt.want, trivia.HashDate(tt.date))
			require.Equal(t, trivia.HashDate(tt.date), trivia.HashDate(tt.date))
		})
	}
	require.NotEqual(t, trivia.HashDate("2025-01-09"), trivia.HashDate("2025-01-10"))
}

func TestHashDate_wrapsAround(t *testing.T) {
	// Long inputs overflow int32 many times. The seed must stay non-negative.
	for _, s := range []string{"2025-01-09 2025-01-09 2025-01-09", "zzzzzzzzzzzzzzzzzzzzzzzz", "päivä 🎉"} {
		require.GreaterOrEqual(t, trivia.HashDate(s), int64(0), s)
	}
}

func TestRand(t *testing.T) {
	r := trivia.NewRand(trivia.HashDate("2025-01-11"))
	require.InDelta(t, 0.4273530659265816, r.Next(), 1e-15)
	require.InDelta(t, 0.24747861828655005, r.Next(), 1e-15)
	require.InDelta(t, 0.09074950171634555, r.Next(), 1e-15)

	// The largest seed, |-2^31|, must not overflow.
	r = trivia.NewRand(1 << 31)
	require.InDelta(t, 12345.0/(1<<31), r.Next(), 1e-15)

	r = trivia.NewRand(42)
	for range 1000 {
		v := r.Next()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestShuffle(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	got := trivia.Shuffle(items, trivia.NewRand(trivia.HashDate("2025-01-11")))
	require.Equal(t, []string{"e", "b", "d", "a", "c"}, got)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, items, "input must not be modified")

	require.Empty(t, trivia.Shuffle([]string{}, trivia.NewRand(1)))
	require.Equal(t, []string{"only"}, trivia.Shuffle([]string{"only"}, trivia.NewRand(1)))
}

func TestSelector_Select(t *testing.T) {
	catalog := newTestCatalog(t)
	overrides, err := trivia.NewOverrides(map[string][]trivia.Question{
		"2025-01-09": newCurated("2025-01-09", 6),
		"2025-01-11": newCurated("2025-01-11", 4),
	})
	require.NoError(t, err)
	selector := trivia.NewSelector(catalog, overrides)
	withoutOverrides := trivia.NewSelector(catalog, trivia.Overrides{})

	tests := []struct {
		name string
		date string
		want []string
	}{
		{
			name: "curated override wins",
			date: "2025-01-09",
			want: []string{
				"daily-2025-01-09-1", "daily-2025-01-09-2", "daily-2025-01-09-3", "daily-2025-01-09-4",
				"daily-2025-01-09-5",
			},
		},
		{
			name: "short override is ignored",
			date: "2025-01-11",
			want: []string{"finance-open-1", "sports-open-2", "general-ranked-3", "finance-ranked-2", "general-open-0"},
		},
		{
			name: "algorithmic selection",
			date: "2025-03-01",
			want: []string{"finance-open-0", "sports-open-2", "general-ranked-3", "finance-ranked-0", "general-open-0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := selector.Select(tt.date)
			require.Equal(t, tt.date, game.Date)
			require.Equal(t, tt.want, gameIDs(game))
			require.Equal(t, game, selector.Select(tt.date), "selection must be deterministic")
		})
	}

	t.Run("short override matches no override", func(t *testing.T) {
		require.Equal(t, withoutOverrides.Select("2025-01-11"), selector.Select("2025-01-11"))
	})

	t.Run("slot shape", func(t *testing.T) {
		want := []trivia.Partition{
			{Category: trivia.CategoryFinance, Kind: trivia.KindOpen},
			{Category: trivia.CategorySports, Kind: trivia.KindOpen},
			{Category: trivia.CategoryGeneral, Kind: trivia.KindRanked},
			{Category: trivia.CategoryFinance, Kind: trivia.KindRanked},
			{Category: trivia.CategoryGeneral, Kind: trivia.KindOpen},
		}
		for _, date := range []string{"2024-12-31", "2025-06-15", "2026-10-15"} {
			game := withoutOverrides.Select(date)
			require.Len(t, game.Questions, trivia.QuestionsPerGame)
			for i, q := range game.Questions {
				require.Equal(t, want[i], trivia.PartitionOf(q), "date %s slot %d", date, i)
			}
		}
	})

	t.Run("zero catalog panics", func(t *testing.T) {
		require.Panics(t, func() {
			trivia.NewSelector(&trivia.Catalog{}, trivia.Overrides{}).Select("2025-01-11")
		})
	})
}

func TestDailyGame_Question(t *testing.T) {
	selector := trivia.NewSelector(newTestCatalog(t), trivia.Overrides{})
	game := selector.Select("2025-03-01")
	q, ok := game.Question("sports-open-2")
	require.True(t, ok)
	require.Equal(t, trivia.CategorySports, q.Describe().Category)
	_, ok = game.Question("sports-open-0")
	require.False(t, ok)
}

func TestDisplayOrder(t *testing.T) {
	q := trivia.RankedQuestion{
		Details:    trivia.Details{ID: "daily-2025-01-09-4", Category: trivia.CategorySports, Text: "Rank"},
		RankedList: []string{"Lions", "Chiefs", "Vikings", "Eagles"},
	}
	require.Equal(t, []string{"Chiefs", "Vikings", "Eagles", "Lions"}, trivia.DisplayOrder(q, "2025-01-09"))
	require.ElementsMatch(t, q.RankedList, trivia.DisplayOrder(q, "2025-01-10"))
}

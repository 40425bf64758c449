package trivia

import (
	"fmt"
)

// QuestionsPerGame is the number of questions in every daily game.
const QuestionsPerGame = 5

// DailyGame is the question set everyone plays on Date.
type DailyGame struct {
	Date      string
	Questions []Question
}

// Question returns the question with the given id.
func (g DailyGame) Question(id string) (Question, bool) {
	for _, q := range g.Questions {
		if q.Describe().ID == id {
			return q, true
		}
	}
	return nil, false
}

// Selector picks the daily game from an injected catalog and curated overrides.
type Selector struct {
	catalog   *Catalog
	overrides Overrides
}

func NewSelector(catalog *Catalog, overrides Overrides) *Selector {
	return &Selector{catalog: catalog, overrides: overrides}
}

// shuffleOrder is the order in which partitions draw from the shared generator.
var shuffleOrder = []Partition{
	{Category: CategoryFinance, Kind: KindRanked},
	{Category: CategorySports, Kind: KindRanked},
	{Category: CategoryGeneral, Kind: KindRanked},
	{Category: CategoryFinance, Kind: KindOpen},
	{Category: CategorySports, Kind: KindOpen},
	{Category: CategoryGeneral, Kind: KindOpen},
}

// slots lists the partition feeding each position of the game.
var slots = [QuestionsPerGame]Partition{
	{Category: CategoryFinance, Kind: KindOpen},
	{Category: CategorySports, Kind: KindOpen},
	{Category: CategoryGeneral, Kind: KindRanked},
	{Category: CategoryFinance, Kind: KindRanked},
	{Category: CategoryGeneral, Kind: KindOpen},
}

// Select returns the game for date, a YYYY-MM-DD string.
//
// Curated overrides with at least QuestionsPerGame questions win and their first five questions are returned in
// stored order. Shorter override lists are ignored. Otherwise every partition is shuffled with a generator seeded
// from the date and the first question of the slot partitions is taken.
func (s *Selector) Select(date string) DailyGame {
	if curated, ok := s.overrides.Lookup(date); ok && len(curated) >= QuestionsPerGame {
		return DailyGame{
			Date:      date,
			Questions: append([]Question(nil), curated[:QuestionsPerGame]...),
		}
	}

	r := NewRand(HashDate(date))
	shuffled := make(map[Partition][]Question, len(shuffleOrder))
	for _, p := range shuffleOrder {
		shuffled[p] = Shuffle(s.catalog.Partition(p), r)
	}

	questions := make([]Question, 0, QuestionsPerGame)
	for _, p := range slots {
		if len(shuffled[p]) == 0 {
			// NewCatalog refuses empty partitions, so only a zero Catalog gets here.
			panic(fmt.Sprintf("trivia: empty catalog partition %s", p))
		}
		questions = append(questions, shuffled[p][0])
	}
	return DailyGame{Date: date, Questions: questions}
}

// DisplayOrder returns the order in which the items of q are first shown to the player on date.
//
// The order is stable for a date and question so that reloading the page shows the same list.
func DisplayOrder(q RankedQuestion, date string) []string {
	return Shuffle(q.RankedList, NewRand(HashDate(date+"/"+q.ID)))
}

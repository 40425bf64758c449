package models

// LeaderboardEntry is a row on the leaderboard page.
type LeaderboardEntry struct {
	Rank   int
	Name   string
	Score  int
	Streak int
}

// SampleLeaderboard returns the placeholder standings shown until players can sign up.
func SampleLeaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{Rank: 1, Name: "FinanceWhiz", Score: 385, Streak: 12},
		{Rank: 2, Name: "TriviaKing", Score: 370, Streak: 8},
		{Rank: 3, Name: "MarketMaster", Score: 355, Streak: 15},
		{Rank: 4, Name: "QuizPro", Score: 340, Streak: 5},
		{Rank: 5, Name: "BrainStorm", Score: 325, Streak: 3},
		{Rank: 6, Name: "StockStar", Score: 310, Streak: 7},
		{Rank: 7, Name: "TriviaBuff", Score: 295, Streak: 2},
		{Rank: 8, Name: "QuizChamp", Score: 280, Streak: 4},
		{Rank: 9, Name: "FactFinder", Score: 265, Streak: 1},
		{Rank: 10, Name: "KnowledgeNinja", Score: 250, Streak: 6},
	}
}

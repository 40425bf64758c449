package models

import (
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/trivia"
	"log/slog"
)

var ErrGameComplete = errors.NewSentinel("game already complete")

// GameState tracks one player's progress through the daily game. It lives in the player's session.
type GameState struct {
	Date                 string
	CurrentQuestionIndex int
	Answers              []string
	Scores               []int
	IsComplete           bool
}

func NewGameState(date string) *GameState {
	return &GameState{
		Date:    date,
		Answers: []string{},
		Scores:  []int{},
	}
}

// Advance records the answer and score of the current question and moves on. The game completes after
// questionCount answers.
func (s *GameState) Advance(answer string, score int, questionCount int) error {
	if s.IsComplete {
		return errors.Wrap(ErrGameComplete, "advance game", slog.String("date", s.Date))
	}
	s.Answers = append(s.Answers, answer)
	s.Scores = append(s.Scores, score)
	if s.CurrentQuestionIndex+1 >= questionCount {
		s.IsComplete = true
		return nil
	}
	s.CurrentQuestionIndex++
	return nil
}

// Results summarises the state against the game it was played on.
func (s *GameState) Results(game trivia.DailyGame) trivia.Results {
	questions := make([]string, 0, len(game.Questions))
	for _, q := range game.Questions {
		questions = append(questions, q.Describe().Text)
	}
	return trivia.Results{
		Date:      s.Date,
		Questions: questions,
		Answers:   s.Answers,
		Scores:    s.Scores,
	}
}

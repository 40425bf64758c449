package main

import (
	"context"
	"encoding/json"
	"github.com/myrjola/dailytake/internal/contexthelpers"
	"github.com/myrjola/dailytake/internal/trivia"
	"net/http"
)

const maxScoreRequestBytes = 1 << 16

type apiQuestion struct {
	ID       string          `json:"id"`
	Type     trivia.Kind     `json:"type"`
	Category trivia.Category `json:"category"`
	Question string          `json:"question"`
	// Items are the ranked items in display order. Open questions have none.
	Items []string `json:"items,omitempty"`
}

type apiGame struct {
	Date      string        `json:"date"`
	Questions []apiQuestion `json:"questions"`
}

type scoreRequest struct {
	QuestionID string   `json:"questionId"`
	Answer     string   `json:"answer"`
	Order      []string `json:"order"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

// todaysGame lists the questions of the daily game without their answers.
func (app *application) todaysGame(w http.ResponseWriter, r *http.Request) {
	date := contexthelpers.GameDate(r.Context())
	game := app.selector.Select(date)

	out := apiGame{Date: game.Date, Questions: make([]apiQuestion, 0, len(game.Questions))}
	for _, q := range game.Questions {
		d := q.Describe()
		aq := apiQuestion{ID: d.ID, Type: q.Kind(), Category: d.Category, Question: d.Text, Items: nil}
		if ranked, ok := q.(trivia.RankedQuestion); ok {
			aq.Items = trivia.DisplayOrder(ranked, date)
		}
		out.Questions = append(out.Questions, aq)
	}

	app.writeJSON(w, r, http.StatusOK, out)
}

// answeredToday reports whether the player has already answered question id in today's game.
func (app *application) answeredToday(ctx context.Context, game trivia.DailyGame, id string) (bool, error) {
	_, played, err := app.todaysResult(ctx)
	if err != nil {
		return false, err
	}
	if played {
		return true, nil
	}
	state := app.gameState(ctx, game.Date)
	for _, q := range game.Questions[:min(state.CurrentQuestionIndex, len(game.Questions))] {
		if q.Describe().ID == id {
			return true, nil
		}
	}
	return false, nil
}

// score scores an alternative answer to a question the player has already answered, without recording it.
func (app *application) score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxScoreRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	game := app.selector.Select(contexthelpers.GameDate(ctx))
	q, ok := game.Question(req.QuestionID)
	if !ok {
		app.notFound(w, r)
		return
	}
	answered, err := app.answeredToday(ctx, game, req.QuestionID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if !answered {
		app.clientError(w, r, http.StatusForbidden)
		return
	}

	var points int
	switch q.Kind() {
	case trivia.KindOpen:
		points = trivia.ScoreOpenAnswer(q, req.Answer)
	case trivia.KindRanked:
		points = trivia.ScoreRankedAnswer(q, req.Order)
	}

	app.writeJSON(w, r, http.StatusOK, scoreResponse{Score: points})
}

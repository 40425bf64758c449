package main

import (
	"github.com/myrjola/dailytake/internal/contexthelpers"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/models"
	"github.com/myrjola/dailytake/internal/repositories"
	"github.com/myrjola/dailytake/internal/trivia"
	"log/slog"
	"net/http"
	"strings"
)

type playTemplateData struct {
	BaseTemplateData
	ID            string
	Kind          trivia.Kind
	Category      trivia.Category
	CategoryLabel string
	Text          string
	Number        int
	Total         int
	// Items are the ranked items in the order they are first shown.
	Items        []string
	Answered     bool
	CurrentScore int
}

var categoryLabels = map[trivia.Category]string{
	trivia.CategoryFinance: "Finance",
	trivia.CategorySports:  "Sports",
	trivia.CategoryGeneral: "General",
}

func currentQuestion(game trivia.DailyGame, state models.GameState) (trivia.Question, error) {
	if state.IsComplete || state.CurrentQuestionIndex >= len(game.Questions) {
		return nil, errors.Wrap(models.ErrGameComplete, "current question",
			slog.String("date", game.Date), slog.Int("index", state.CurrentQuestionIndex))
	}
	return game.Questions[state.CurrentQuestionIndex], nil
}

func (app *application) play(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date := contexthelpers.GameDate(ctx)

	_, played, err := app.todaysResult(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if played {
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	}

	game := app.selector.Select(date)
	state := app.gameState(ctx, date)
	var q trivia.Question
	if q, err = currentQuestion(game, state); err != nil {
		app.serverError(w, r, err)
		return
	}

	details := q.Describe()
	currentScore := 0
	for _, score := range state.Scores {
		currentScore += score
	}
	data := playTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		ID:               details.ID,
		Kind:             q.Kind(),
		Category:         details.Category,
		CategoryLabel:    categoryLabels[details.Category],
		Text:             details.Text,
		Number:           state.CurrentQuestionIndex + 1,
		Total:            len(game.Questions),
		Items:            nil,
		Answered:         len(state.Scores) > 0,
		CurrentScore:     currentScore,
	}
	switch q := q.(type) {
	case trivia.RankedQuestion:
		data.Items = trivia.DisplayOrder(q, date)
	case trivia.OpenQuestion:
	}

	app.render(w, r, http.StatusOK, "play", data)
}

// answer scores the submitted answer to the current question and moves the game forward. The finished game is
// stored as the player's result of the day.
func (app *application) answer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date := contexthelpers.GameDate(ctx)
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	_, played, err := app.todaysResult(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if played {
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	}

	game := app.selector.Select(date)
	state := app.gameState(ctx, date)
	var q trivia.Question
	if q, err = currentQuestion(game, state); err != nil {
		app.serverError(w, r, err)
		return
	}
	// A form from an earlier question, for example after a double submit, shows the current question again.
	if r.PostForm.Get("question_id") != q.Describe().ID {
		http.Redirect(w, r, "/play", http.StatusSeeOther)
		return
	}

	var (
		answer string
		score  int
	)
	switch q.(type) {
	case trivia.OpenQuestion:
		answer = strings.TrimSpace(r.PostForm.Get("answer"))
		score = trivia.ScoreOpenAnswer(q, answer)
	case trivia.RankedQuestion:
		order := r.PostForm["order"]
		if !trivia.IsPermutation(q, order) {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		answer = strings.Join(order, ", ")
		score = trivia.ScoreRankedAnswer(q, order)
	}
	if err = state.Advance(answer, score, len(game.Questions)); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.logger.LogAttrs(ctx, slog.LevelInfo, "answered question",
		slog.String("questionID", q.Describe().ID), slog.Int("score", score))

	if !state.IsComplete {
		app.sessionManager.Put(ctx, gameStateSessionKey, state)
		http.Redirect(w, r, "/play", http.StatusSeeOther)
		return
	}

	result := models.NewResult(contexthelpers.PlayerID(ctx), state.Results(game))
	if _, err = app.results.Save(ctx, result); err != nil && !errors.Is(err, repositories.ErrAlreadyPlayed) {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Remove(ctx, gameStateSessionKey)
	app.logger.LogAttrs(ctx, slog.LevelInfo, "finished game", slog.Int("total", result.Total))
	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

// suggestions responds to htmx requests with autocomplete options for the current open question.
func (app *application) suggestions(w http.ResponseWriter, r *http.Request) {
	h := app.htmx.NewHandler(w, r)
	if !h.Request().HxRequest {
		http.Redirect(w, r, "/play", http.StatusSeeOther)
		return
	}

	ctx := r.Context()
	date := contexthelpers.GameDate(ctx)
	q, err := currentQuestion(app.selector.Select(date), app.gameState(ctx, date))
	if err != nil {
		app.clientError(w, r, http.StatusConflict)
		return
	}

	suggestions := trivia.SuggestAnswers(q, r.URL.Query().Get("answer"), app.suggestionLimit)
	app.renderFragment(w, r, "play", "suggestions", suggestions)
}

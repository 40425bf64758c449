package main

import (
	"github.com/myrjola/dailytake/internal/trivia"
	"net/http"
	"time"
)

type homeTemplateData struct {
	BaseTemplateData
	DisplayDate   string
	QuestionCount int
	Played        bool
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	base := newBaseTemplateData(r)
	_, played, err := app.todaysResult(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	displayDate := base.GameDate
	if t, parseErr := time.Parse(time.DateOnly, base.GameDate); parseErr == nil {
		displayDate = t.Format("Monday, January 2, 2006")
	}

	data := homeTemplateData{
		BaseTemplateData: base,
		DisplayDate:      displayDate,
		QuestionCount:    trivia.QuestionsPerGame,
		Played:           played,
	}

	app.render(w, r, http.StatusOK, "home", data)
}

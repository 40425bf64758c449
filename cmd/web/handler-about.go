package main

import (
	"github.com/myrjola/dailytake/internal/trivia"
	"net/http"
)

type aboutTemplateData struct {
	BaseTemplateData
	QuestionCount int
	MaxPoints     int
	MaxScore      int
}

func (app *application) about(w http.ResponseWriter, r *http.Request) {
	data := aboutTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		QuestionCount:    trivia.QuestionsPerGame,
		MaxPoints:        trivia.MaxPointsPerQuestion,
		MaxScore:         trivia.QuestionsPerGame * trivia.MaxPointsPerQuestion,
	}

	app.render(w, r, http.StatusOK, "about", data)
}

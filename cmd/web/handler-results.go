package main

import (
	"github.com/myrjola/dailytake/internal/contexthelpers"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/models"
	"github.com/myrjola/dailytake/internal/repositories"
	"github.com/myrjola/dailytake/internal/trivia"
	"net/http"
)

type resultRow struct {
	Number   int
	Question string
	Answer   string
	Score    int
	Mark     trivia.Mark
	Tone     string
}

type resultsTemplateData struct {
	BaseTemplateData
	Found      bool
	Date       string
	Total      int
	Max        int
	Percentage int
	Message    string
	ShareText  string
	Rows       []resultRow
}

var markTones = map[trivia.Mark]string{
	trivia.MarkGreen:  "green",
	trivia.MarkYellow: "yellow",
	trivia.MarkOrange: "orange",
	trivia.MarkRed:    "red",
}

// showResults shows the latest finished game of the player.
func (app *application) showResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := resultsTemplateData{BaseTemplateData: newBaseTemplateData(r)} //nolint:exhaustruct // filled below

	result, err := app.results.Latest(ctx, contexthelpers.PlayerID(ctx))
	if errors.Is(err, repositories.ErrNotFound) {
		app.render(w, r, http.StatusOK, "results", data)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	summary := result.Results()
	data.Found = true
	data.Date = summary.Date
	data.Total = summary.Total()
	data.Max = summary.Max()
	data.Percentage = summary.Percentage()
	data.Message = summary.Message()
	data.ShareText = summary.ShareText(app.site)
	data.Rows = resultRows(result, summary.Marks())

	app.render(w, r, http.StatusOK, "results", data)
}

func resultRows(result models.Result, marks []trivia.Mark) []resultRow {
	rows := make([]resultRow, 0, len(result.Scores))
	for i, score := range result.Scores {
		row := resultRow{Number: i + 1, Score: score, Mark: marks[i], Tone: markTones[marks[i]]}
		if i < len(result.Questions) {
			row.Question = result.Questions[i]
		}
		if i < len(result.Answers) {
			row.Answer = result.Answers[i]
		}
		rows = append(rows, row)
	}
	return rows
}

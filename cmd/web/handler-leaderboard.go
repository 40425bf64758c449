package main

import (
	"github.com/myrjola/dailytake/internal/models"
	"net/http"
)

type leaderboardTemplateData struct {
	BaseTemplateData
	Entries     []models.LeaderboardEntry
	PlayerTotal int
}

// leaderboard shows the sample standings next to the player's own score of the day.
func (app *application) leaderboard(w http.ResponseWriter, r *http.Request) {
	result, _, err := app.todaysResult(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := leaderboardTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Entries:          models.SampleLeaderboard(),
		PlayerTotal:      result.Total,
	}

	app.render(w, r, http.StatusOK, "leaderboard", data)
}

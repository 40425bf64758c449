package main

import (
	"github.com/myrjola/dailytake/internal/contexthelpers"
	"github.com/myrjola/dailytake/internal/errors"
	"net/http"
)

type healthResponse struct {
	Status  string `json:"status"`
	Date    string `json:"date"`
	Results int    `json:"results"`
}

// healthy reports the game date being served and verifies the database answers queries.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	count, err := app.results.Count(ctx)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "count results"))
		return
	}
	app.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:  "ok",
		Date:    contexthelpers.GameDate(ctx),
		Results: count,
	})
}

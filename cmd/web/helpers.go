package main

import (
	"context"
	"encoding/json"
	"github.com/myrjola/dailytake/internal/contexthelpers"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/models"
	"github.com/myrjola/dailytake/internal/repositories"
	"log/slog"
	"net/http"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status),
		slog.String("method", method), slog.String("uri", uri), slog.Any("formdata", r.Form))
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal json"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// todaysResult returns the stored result of the requesting player for the game date, if any.
func (app *application) todaysResult(ctx context.Context) (models.Result, bool, error) {
	result, err := app.results.ForDate(ctx, contexthelpers.PlayerID(ctx), contexthelpers.GameDate(ctx))
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Result{}, false, nil
	}
	if err != nil {
		return models.Result{}, false, errors.Wrap(err, "find today's result")
	}
	return result, true, nil
}

// gameState returns the player's progress in the game of date. A state left over from another date starts over.
func (app *application) gameState(ctx context.Context, date string) models.GameState {
	state, ok := app.sessionManager.Get(ctx, gameStateSessionKey).(models.GameState)
	if !ok || state.Date != date {
		return *models.NewGameState(date)
	}
	return state
}

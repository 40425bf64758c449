package main

import (
	"github.com/donseba/go-htmx/middleware"
	"github.com/justinas/alice"
	"github.com/myrjola/dailytake/ui"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", cacheHeaders(http.FileServerFS(ui.Files)))

	dynamic := alice.New(app.sessionManager.LoadAndSave, app.identifyPlayer, app.noSurf, commonContext,
		middleware.MiddleWare)

	mux.Handle("GET /{$}", dynamic.ThenFunc(app.home))
	mux.Handle("GET /play", dynamic.ThenFunc(app.play))
	mux.Handle("POST /play/answer", dynamic.ThenFunc(app.answer))
	mux.Handle("GET /play/suggestions", dynamic.ThenFunc(app.suggestions))
	mux.Handle("GET /results", dynamic.ThenFunc(app.showResults))
	mux.Handle("GET /leaderboard", dynamic.ThenFunc(app.leaderboard))
	mux.Handle("GET /about", dynamic.ThenFunc(app.about))

	// The JSON API has no CSRF protection. Scoring needs the session to know what the player has answered.
	player := alice.New(app.sessionManager.LoadAndSave, app.identifyPlayer)

	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.HandleFunc("GET /api/game/today", app.todaysGame)
	mux.Handle("POST /api/score", player.ThenFunc(app.score))

	common := alice.New(app.recoverPanic, app.gameDate, app.logRequest, app.secureHeaders)
	return common.Then(mux)
}

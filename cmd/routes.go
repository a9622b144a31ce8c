package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.requestID, app.logRequest, secureHeaders, makeResponseJSON)
	searchMiddleware := standardMiddleware.Append(app.rateLimit)

	mux := pat.New()

	// Search
	mux.Get("/api/search/advanced", searchMiddleware.ThenFunc(app.searchHandler.AdvancedSearch))
	mux.Get("/api/search/suggestions", searchMiddleware.ThenFunc(app.searchHandler.Suggestions))
	mux.Get("/api/search", searchMiddleware.ThenFunc(app.searchHandler.Search))

	// Health
	mux.Get("/api/health", standardMiddleware.ThenFunc(app.searchHandler.Health))

	return mux
}

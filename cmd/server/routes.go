package main

import "net/http"

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", app.handleHealth)
	mux.HandleFunc("GET /ws", app.handleWebSocket)

	mux.HandleFunc("POST /games", app.handleCreateGame)
	mux.HandleFunc("POST /games/{id}/start", app.handleStartGame)
	mux.HandleFunc("POST /games/{id}/moves", app.handleMove)
	mux.HandleFunc("POST /games/{id}/end", app.handleEndGame)
	mux.HandleFunc("GET /games/{id}/board", app.handleGetBoard)

	return app.authenticate(mux)
}

package app

import (
	"github.com/vancomm/memory-server/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.registry, a.ws, a.config.Params(),
	)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /v1/game/{id}", game.Delete)
	a.router.HandleFunc("POST /v1/game/{id}/start", game.Start)
	a.router.HandleFunc("POST /v1/game/{id}/flip", game.Flip)
	a.router.HandleFunc("POST /v1/game/{id}/restart", game.Restart)
	a.router.HandleFunc("GET /v1/game/{id}/connect", game.ConnectWS)
}

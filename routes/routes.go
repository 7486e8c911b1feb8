package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tippliga/tournament-engine/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	standingsHandler *handlers.StandingsHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListTournamentsHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetTournamentHandler)
		r.Get("/{tournamentID}/matches", tournamentHandler.ListTournamentMatchesHandler)
		r.Get("/{tournamentID}/groups/{groupLabel}/standings", standingsHandler.GetGroupStandingsHandler)
		r.Get("/{tournamentID}/groups/{groupLabel}/position", standingsHandler.ResolveGroupPositionHandler)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetMatchHandler)
		r.Post("/{matchID}/result", matchHandler.SaveMatchResultHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}

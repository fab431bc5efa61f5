package routes

import (
	"github.com/fbessa/tournament-server/handlers"
	"github.com/fbessa/tournament-server/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires every handler onto the router. Reads are public;
// mutations require the organizer's bearer token.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	conquestHandler *handlers.ConquestHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/login", authHandler.LoginHandler)

	router.Get("/dashboard", dashboardHandler.StatsHandler)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/standings", matchHandler.StandingsHandler)
		r.Get("/{tournamentID}/map", conquestHandler.MapHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/", tournamentHandler.CreateHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)
			r.Post("/{tournamentID}/players", tournamentHandler.AddPlayerHandler)
			r.Post("/{tournamentID}/finish", tournamentHandler.FinishHandler)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogoHandler)
			r.Post("/{tournamentID}/territories/{territoryID}/flag", tournamentHandler.UploadTerritoryFlagHandler)

			r.Post("/{tournamentID}/matches", matchHandler.CreateHandler)
			r.Post("/{tournamentID}/matches/generate", matchHandler.GenerateScheduleHandler)
			r.Post("/{tournamentID}/matches/{matchID}/finalize", matchHandler.FinalizeHandler)

			r.Post("/{tournamentID}/attacks", conquestHandler.DeclareAttackHandler)
			r.Post("/{tournamentID}/attacks/{matchID}/resolve", conquestHandler.ResolveAttackHandler)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}

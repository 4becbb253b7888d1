package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/karimdoss-design/campustad/handlers"
	"github.com/karimdoss-design/campustad/middleware"
)

// SetupRoutes wires every endpoint. Reads are public; all writes go through
// the JWT authenticator plus a role guard, so there is exactly one
// server-verified mutation path.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	guard *middleware.Guard,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	rosterHandler *handlers.RosterHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	predictionHandler *handlers.PredictionHandler,
	newsHandler *handlers.NewsHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/ws/live", webSocketHandler.ServeLive)

	// Public reads: the whole tournament is visible without an account.
	router.Get("/teams", rosterHandler.ListTeams)
	router.Get("/teams/{teamID}/players", rosterHandler.ListTeamPlayers)
	router.Get("/groups", rosterHandler.ListGroups)
	router.Get("/players", rosterHandler.ListPlayers)
	router.Get("/matches", matchHandler.List)
	router.Get("/matches/{matchID}", matchHandler.Get)
	router.Get("/matches/{matchID}/goals", matchHandler.ListGoals)
	router.Get("/standings/groups", standingsHandler.GroupTables)
	router.Get("/standings/knockout", standingsHandler.KnockoutRounds)
	router.Get("/standings/scorers", standingsHandler.TopScorers)
	router.Get("/standings/assisters", standingsHandler.TopAssisters)
	router.Get("/predictions/leaderboard", predictionHandler.Leaderboard)
	router.Get("/news", newsHandler.List)

	// Any signed-in, non-disabled profile.
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(guard.RequireKnown())

		r.Get("/me", profileHandler.Me)
		r.Get("/news/unread", newsHandler.UnreadCount)
		r.Post("/news/seen", newsHandler.MarkSeen)
	})

	// Fans only: prediction submission.
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(guard.RequireFan())

		r.Post("/matches/{matchID}/predictions", predictionHandler.Submit)
		r.Get("/predictions/mine", predictionHandler.ListMine)
	})

	// Active admins only.
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(guard.RequireAdmin())

		r.Post("/admin/actions", adminHandler.Dispatch)

		r.Get("/profiles", profileHandler.List)
		r.Patch("/profiles/{profileID}/status", profileHandler.SetStatus)

		r.Post("/teams", rosterHandler.CreateTeam)
		r.Delete("/teams/{teamID}", rosterHandler.DeleteTeam)
		r.Patch("/teams/{teamID}/group", rosterHandler.AssignTeamGroup)
		r.Post("/teams/{teamID}/players/{playerID}", rosterHandler.AddTeamPlayer)
		r.Delete("/teams/{teamID}/players/{playerID}", rosterHandler.RemoveTeamPlayer)

		r.Post("/groups", rosterHandler.CreateGroup)
		r.Delete("/groups/{groupID}", rosterHandler.DeleteGroup)

		r.Post("/players", rosterHandler.CreatePlayer)
		r.Delete("/players/{playerID}", rosterHandler.DeletePlayer)
		r.Patch("/players/{playerID}/stats", rosterHandler.UpdatePlayerStats)

		r.Post("/matches", matchHandler.Create)
		r.Patch("/matches/{matchID}", matchHandler.Update)
		r.Delete("/matches/{matchID}", matchHandler.Delete)
		r.Post("/matches/{matchID}/goals", matchHandler.AddGoal)
		r.Delete("/matches/{matchID}/goals/{goalID}", matchHandler.DeleteGoal)

		r.Post("/news", newsHandler.Create)
		r.Delete("/news/{postID}", newsHandler.Delete)
	})
}

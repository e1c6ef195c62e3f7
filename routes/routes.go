package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/debatetab/tab-system/docs" // Swagger docs
	"github.com/debatetab/tab-system/handlers"
	"github.com/debatetab/tab-system/middleware"
	"github.com/debatetab/tab-system/services"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authService services.AuthService,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	roundHandler *handlers.RoundHandler,
	drawHandler *handlers.DrawHandler,
	scoreHandler *handlers.ScoreHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	requireAdmin := middleware.RequireAdmin(authService)

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(requireAdmin)
		r.Post("/users/{userID}/promote", authHandler.Promote)
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров
		r.Get("/", tournamentHandler.List)
		r.Get("/{id}", tournamentHandler.Get)
		r.Get("/{id}/teams", teamHandler.ListByTournament)
		r.Get("/{id}/rounds", roundHandler.ListByTournament)
		r.Get("/{id}/standings/teams", standingsHandler.Teams)
		r.Get("/{id}/standings/speakers", standingsHandler.Speakers)

		// Защищённые маршруты только для администраторов
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(requireAdmin)

			r.Post("/", tournamentHandler.Create)
			r.Put("/{id}", tournamentHandler.Update)
			r.Delete("/{id}", tournamentHandler.Delete)
			r.Post("/{id}/logo", tournamentHandler.UploadLogo)
			r.Post("/{id}/teams", teamHandler.Create)
			r.Post("/{id}/rounds", roundHandler.Create)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(requireAdmin)

			r.Put("/{teamID}", teamHandler.Update)
			r.Delete("/{teamID}", teamHandler.Delete)
			r.Post("/{teamID}/members", teamHandler.AddMember)
			r.Delete("/{teamID}/members/{memberID}", teamHandler.RemoveMember)
		})
	})

	router.Route("/rounds", func(r chi.Router) {
		r.Get("/{roundID}", roundHandler.Get)
		r.Get("/{roundID}/draw", drawHandler.Get)
		r.Get("/{roundID}/results", scoreHandler.ListRoundResults)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(requireAdmin)

			r.Patch("/{roundID}/motion", roundHandler.UpdateMotion)
			r.Patch("/{roundID}/completed", roundHandler.SetCompleted)
			r.Delete("/{roundID}", roundHandler.Delete)

			r.Post("/{roundID}/draw/preview", drawHandler.Preview)
			r.Post("/{roundID}/draw", drawHandler.Commit)
			r.Put("/{roundID}/draw", drawHandler.CommitProposal)
			r.Post("/{roundID}/draw/release", drawHandler.Release)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}/results", scoreHandler.ListResults)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(requireAdmin)

			r.Post("/{matchID}/resolve", scoreHandler.Resolve)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(requireAdmin)
		r.Post("/scores", scoreHandler.Submit)
	})

	router.Get("/ws/tournaments/{id}", webSocketHandler.ServeWs)
}

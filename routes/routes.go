package routes

import (
	"log/slog"
	"net/http"
	"time"

	_ "github.com/Dosada05/scrim-tournaments/docs"
	"github.com/Dosada05/scrim-tournaments/handlers"
	"github.com/Dosada05/scrim-tournaments/middleware"
	"github.com/Dosada05/scrim-tournaments/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	Logger         *slog.Logger
	Gatherer       prometheus.Gatherer
}

func SetupRoutes(
	router *chi.Mux,
	opts Options,
	authHandler *handlers.AuthHandler,
	submissionHandler *handlers.SubmissionHandler,
	tournamentHandler *handlers.TournamentHandler,
	dashboardHandler *handlers.DashboardHandler,
	commandHandler *handlers.CommandHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.Timeout(30 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", handlers.Healthz)
	router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Post("/auth/login", authHandler.Login)

	authenticate := middleware.Authenticate(opts.JWTSecret)

	// Шлюз чата и админ могут слать команды
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(services.RoleAdmin, services.RoleBot))
		r.Post("/commands", commandHandler.Handle)
	})

	// Админка
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(services.RoleAdmin))

		r.Get("/dashboard", dashboardHandler.Stats)

		r.Route("/submissions", func(r chi.Router) {
			r.Get("/", submissionHandler.List)
			r.Get("/{submissionID}", submissionHandler.Get)
			r.Post("/{submissionID}/approve", submissionHandler.Approve)
			r.Post("/{submissionID}/reject", submissionHandler.Reject)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListTemplates)
			r.Post("/", tournamentHandler.CreateTemplate)
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListTournaments)
			r.Get("/{tournamentID}", tournamentHandler.GetTournament)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatus)
			r.Get("/{tournamentID}/leaderboard", tournamentHandler.Leaderboard)
			r.Get("/{tournamentID}/teams", tournamentHandler.Teams)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("{\n\t\"error\": \"the requested resource could not be found\"\n}\n"))
	})
}

package http

import (
	"log/slog"

	"github.com/attendly/attendly-backend/internal/handler/http/middleware"
	"github.com/attendly/attendly-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	semesterHandler SemesterHandler,
	subjectHandler SubjectHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Get("/me", authHandler.Me)
			})
		})

		// EventSource cannot send headers, so the stream also takes ?jwt=
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Get("/events", eventsHandler.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/semesters", func(r chi.Router) {
				r.Get("/", semesterHandler.List)
				r.Post("/", semesterHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", semesterHandler.Get)
					r.Put("/", semesterHandler.Update)
					r.Delete("/", semesterHandler.Delete)
				})
			})

			r.Route("/subjects", func(r chi.Router) {
				r.Get("/", subjectHandler.List)
				r.Post("/", subjectHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", subjectHandler.Get)
					r.Put("/", subjectHandler.Update)
					r.Patch("/attendance", subjectHandler.MarkAttendance)
					r.Delete("/", subjectHandler.Delete)
				})
			})
		})
	})
	return r
}

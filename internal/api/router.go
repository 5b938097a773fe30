package api

import (
	"net/http"
	"time"

	"career_path/internal/api/handler"
	"career_path/internal/api/middleware"
	"career_path/internal/app/service"
	"career_path/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	progressService *service.ProgressService,
	sessionService *service.SessionService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token if present and puts claims in context.
	// Protected groups add the Authenticator below on top of this.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService, sessionService)
		v1.Route("/auth", func(auth chi.Router) {
			authHandler.RegisterRoutes(auth)

			auth.Group(func(protected chi.Router) {
				protected.Use(middleware.Authenticator(authService, sessionService))
				authHandler.RegisterProtectedRoutes(protected)
			})
		})

		// Dashboard + progress (authenticated)
		dashboardHandler := handler.NewDashboardHandler(progressService)
		v1.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticator(authService, sessionService))
			dashboardHandler.RegisterRoutes(protected)
		})
	})

	return r
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fitness-fanatics/fitness-api/internal/activity"
	"github.com/fitness-fanatics/fitness-api/internal/auth"
	"github.com/fitness-fanatics/fitness-api/internal/city"
	"github.com/fitness-fanatics/fitness-api/internal/config"
	"github.com/fitness-fanatics/fitness-api/internal/httputil"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
	"github.com/fitness-fanatics/fitness-api/internal/photo"
	"github.com/fitness-fanatics/fitness-api/internal/plan"
	"github.com/fitness-fanatics/fitness-api/internal/user"
)

// Handlers bundles the per-domain HTTP handlers for router wiring.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Activity *activity.Handler
	Photo    *photo.Handler
	Plan     *plan.Handler
	City     *city.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, authMiddleware *auth.Middleware, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	r.Use(middleware.Compress(5))        // Compress responses

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/api", func(r chi.Router) {
		// Credential lifecycle (public)
		r.Post("/users", h.Auth.Register)
		r.Post("/users/activation", h.Auth.Activate)
		r.Post("/login", h.Auth.Login)
		r.Post("/password", h.Auth.ForgotPassword)
		r.Put("/password-reset/{id}/{token}", h.Auth.ResetPassword)

		// City lookup (public)
		r.Get("/cities", h.City.List)

		// Everything else requires a session token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Get("/users/{id}", h.User.GetProfile)
			r.Put("/users/{id}", h.User.UpdateProfile)

			r.Post("/activities", h.Activity.Create)
			r.Get("/activities/{userID}", h.Activity.List)
			r.Put("/activities/{id}", h.Activity.Update)
			r.Delete("/activities/{id}", h.Activity.Delete)

			r.Get("/photos/{userID}", h.Photo.Get)
			r.Put("/photos/{userID}", h.Photo.Upload)
			r.Delete("/photos/{userID}", h.Photo.Delete)

			r.Get("/plans", h.Plan.List)
			r.Post("/plans", h.Plan.Upload)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}

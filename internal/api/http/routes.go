package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/emotrack/emotrack-go/internal/assessment"
	auth "github.com/emotrack/emotrack-go/internal/auth/middleware"
	"github.com/emotrack/emotrack-go/internal/rbac"
	"github.com/emotrack/emotrack-go/internal/user"
)

// NewRouter assembles the full API surface. Shared by the server binary
// and the handler tests.
func NewRouter(users user.Store, svc *assessment.Service, authSvc *auth.AuthService, corsOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/signup", SignupHandler(users))
		ar.Post("/login", LoginHandler(users, authSvc))

		// Bearer-authenticated surface (JWT -> role in context -> RBAC)
		ar.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(authSvc))

			pr.With(rbac.Require("assessment:create")).
				Post("/stress-assessment", SaveAssessmentHandler(svc))

			pr.With(rbac.RequireOwnerOr("reports:view-all", IsPathUserOwner)).
				Get("/stress-reports/{userID}", ReportsHandler(svc))

			pr.With(rbac.RequireOwnerOr("analytics:view-all", IsPathUserOwner)).
				Get("/stress-analytics/{userID}", AnalyticsHandler(svc))

			pr.With(rbac.Require("users:list")).
				Get("/users", ListUsersHandler(users))

			pr.With(rbac.Require("users:delete")).
				Delete("/users/{userID}", DeleteUserHandler(users))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	return r
}

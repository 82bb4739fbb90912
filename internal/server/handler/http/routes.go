// Package http provides HTTP routing and middleware configuration
// for the authgate service.
package http

import (
	"net/http"

	"github.com/authgate/authgate/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the authgate
// API and frontend. It applies request logging globally, JSON content-type
// enforcement on the auth endpoints, and the session gate on protected
// resources. Unmatched paths fall through to the static handler.
//
// Parameters:
//
//	authHandler   - handler for signup, login, logout and /me
//	staticHandler - handler for frontend pages and assets
//	sessions      - session resolver consulted by the gate
//	logger        - structured logger for request logging middleware
//
// Routes:
//
//	POST /signup              → authHandler.Signup
//	POST /login               → authHandler.Login
//	POST /logout              → authHandler.Logout
//	GET  /me                  → authHandler.Me
//	GET  /api/protected-data  → ProtectedData   (protected)
//	GET  /dashboard           → staticHandler.Dashboard (protected)
//	GET  /homepage            → staticHandler.Homepage
//	*                         → staticHandler (static files, SPA fallback)
func NewRouter(
	authHandler *AuthHandler,
	staticHandler *StaticHandler,
	sessions middleware.SessionResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Auth endpoints: only allow JSON request bodies
	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// Protected group: requires a session bound to a user
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))

		r.Get("/api/protected-data", ProtectedData)
		r.Get("/dashboard", staticHandler.Dashboard)
	})

	// Public pages and assets
	r.Get("/homepage", staticHandler.Homepage)
	r.NotFound(staticHandler.ServeHTTP)

	return r
}

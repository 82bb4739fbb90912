// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/authgate/authgate/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionCookie is the name of the cookie carrying the session identifier.
const SessionCookie = "authgate_sid"

// LoginPage is where browser requests without a valid session are sent.
const LoginPage = "/login.html"

// SessionResolver looks up the live session for a transport identifier.
type SessionResolver interface {
	// Resolve returns the session for the id, or nil if the id is empty,
	// unknown, or expired.
	Resolve(ctx context.Context, id string) *models.Session
}

// SessionAuth is a middleware that gates access to protected resources.
//
// It resolves the session cookie against the session table. If the session is
// bound to a user, the request proceeds with the identity stored in the
// request context. Otherwise the response depends on what the client can
// accept: browsers asking for HTML are redirected to the login page, API
// clients get a 401 JSON payload. The decision is driven by the Accept
// header, not by the resource path.
func SessionAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess := resolveCookie(r, sessions); sess != nil && sess.State == models.StateBound && sess.User != nil {
				ctx := context.WithValue(r.Context(), userKey, *sess.User)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if acceptsHTML(r) {
				http.Redirect(w, r, LoginPage, http.StatusFound)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
		})
	}
}

// resolveCookie returns the live session named by the request's session
// cookie, or nil if the cookie is missing or stale.
func resolveCookie(r *http.Request, sessions SessionResolver) *models.Session {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	return sessions.Resolve(r.Context(), cookie.Value)
}

// acceptsHTML reports whether the client negotiated an interactive page
// response.
func acceptsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

// GetUserFromContext extracts the authenticated identity placed in the
// request context by SessionAuth. ok is false if the request did not pass
// through the middleware.
func GetUserFromContext(ctx context.Context) (models.PublicUser, bool) {
	val, ok := ctx.Value(userKey).(models.PublicUser)
	return val, ok
}

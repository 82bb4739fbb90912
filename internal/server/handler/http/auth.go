// Package http provides HTTP handlers for user authentication: signup,
// login, logout, and current-user lookup.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/authgate/authgate/internal/middleware"
	"github.com/authgate/authgate/internal/models"
	"github.com/authgate/authgate/internal/shared"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Signup registers a new user and binds it to the given session.
	Signup(ctx context.Context, sessionID, username, password string) (models.PublicUser, error)
	// Login verifies credentials and binds the user to the given session.
	Login(ctx context.Context, sessionID, username, password string) (models.PublicUser, error)
	// Logout destroys the given session. Idempotent.
	Logout(ctx context.Context, sessionID string) error
	// CurrentUser returns the identity bound to the resolved session.
	CurrentUser(sess *models.Session) (models.PublicUser, bool)
}

// SessionProvider resolves and allocates session records for requests.
type SessionProvider interface {
	// Resolve returns the live session for the id, or nil.
	Resolve(ctx context.Context, id string) *models.Session
	// CreateOrReuse returns a live session for the id or a fresh Unbound one,
	// along with the identifier to hand back to the client.
	CreateOrReuse(ctx context.Context, id string) (*models.Session, string, error)
}

// AuthHandler handles HTTP requests for signup, login, logout and /me.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Sessions allocates and resolves session records.
	Sessions SessionProvider
	// CookieTTL is the lifetime stamped on the session cookie. It matches
	// the server-side session TTL.
	CookieTTL time.Duration
}

// credentialsRequest represents the JSON payload for signup and login.
type credentialsRequest struct {
	// Username is the login name.
	Username string `json:"username"`
	// Password is the plaintext password. Never logged or stored.
	Password string `json:"password"`
}

// userResponse is the success payload carrying the public identity view.
type userResponse struct {
	OK   bool              `json:"ok"`
	User models.PublicUser `json:"user"`
}

// Signup handles user registration requests.
// It expects a JSON body with non-empty "username" and "password" fields.
// On success it binds the request's session to the new identity, sets the
// session cookie, and returns the public identity view.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.credentialedRequest(w, r, h.AuthService.Signup)
}

// Login handles credential verification requests. Unknown usernames and
// wrong passwords produce the same response, so callers cannot probe which
// usernames exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.credentialedRequest(w, r, h.AuthService.Login)
}

// credentialedRequest decodes a credentials body, attaches a session to the
// request, and runs op against it. Signup and Login differ only in the op.
func (h *AuthHandler) credentialedRequest(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, sessionID, username, password string) (models.PublicUser, error),
) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}

	sess, sid, err := h.Sessions.CreateOrReuse(r.Context(), cookieValue(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := op(r.Context(), sess.ID, req.Username, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	h.setSessionCookie(w, sid)
	writeJSON(w, http.StatusOK, userResponse{OK: true, User: user})
}

// Logout destroys the request's session and clears the client's cookie.
// Logging out without a session still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), cookieValue(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the identity bound to the request's session, so the frontend
// can check login state.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Resolve(r.Context(), cookieValue(r))
	user, ok := h.AuthService.CurrentUser(sess)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	writeJSON(w, http.StatusOK, map[string]models.PublicUser{"user": user})
}

// writeAuthError maps service sentinels to their HTTP status codes. Internal
// details never reach the response body.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		writeError(w, http.StatusBadRequest, "username and password required")
	case errors.Is(err, shared.ErrConflict):
		writeError(w, http.StatusConflict, "username already exists")
	case errors.Is(err, shared.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// cookieValue returns the session cookie value, or "" if absent.
func cookieValue(r *http.Request) string {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie hands the session identifier back to the client as an
// HTTP-only cookie with a fixed lifetime.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.CookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie instructs the client to drop its session cookie.
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error payload.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

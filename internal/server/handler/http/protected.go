package http

import (
	"fmt"
	"net/http"

	"github.com/authgate/authgate/internal/middleware"
)

// ProtectedData is the exemplar protected resource. It runs behind the
// session gate, so the authenticated identity is always on the context.
func ProtectedData(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret": fmt.Sprintf("Hello %s!", user.Username),
	})
}

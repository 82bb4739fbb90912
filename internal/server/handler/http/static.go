package http

import (
	"net/http"
	"os"
	"path/filepath"
)

// StaticHandler serves frontend assets from a directory, falling back to
// index.html for unmatched paths so the SPA router can take over.
type StaticHandler struct {
	// Dir is the root of the static asset tree.
	Dir string

	fs http.Handler
}

// NewStaticHandler creates a StaticHandler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{Dir: dir, fs: http.FileServer(http.Dir(dir))}
}

// ServeHTTP serves the requested file if it exists, otherwise index.html.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(h.Dir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		h.fs.ServeHTTP(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.Dir, "index.html"))
}

// Homepage serves the public landing page.
func (h *StaticHandler) Homepage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.Dir, "index.html"))
}

// Dashboard serves the protected dashboard page. It runs behind the session
// gate.
func (h *StaticHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.Dir, "pages", "dashboard.html"))
}

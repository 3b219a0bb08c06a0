package handlers

import (
	"io/fs"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/auth"
)

// viewPaths are the SPA routes the shell serves directly. Everything else
// redirects to the hub or the login view depending on authentication.
var viewPaths = map[string]bool{
	"/login":         true,
	"/hub":           true,
	"/mymindop":      true,
	"/data":          true,
	"/notifications": true,
}

// ShellHandler serves the single-page UI shell and performs the view-level
// redirects the client router expects.
type ShellHandler struct {
	distFS         fs.FS
	fileServer     http.Handler
	authMiddleware *auth.Middleware
	logger         *zap.Logger
}

// NewShellHandler creates a shell handler over a filesystem containing the
// built UI under dist/.
func NewShellHandler(uiFS fs.FS, authMiddleware *auth.Middleware, logger *zap.Logger) (*ShellHandler, error) {
	distFS, err := fs.Sub(uiFS, "dist")
	if err != nil {
		return nil, err
	}
	return &ShellHandler{
		distFS:         distFS,
		fileServer:     http.FileServer(http.FS(distFS)),
		authMiddleware: authMiddleware,
		logger:         logger,
	}, nil
}

// RegisterRoutes registers the shell as the fallback route on the given mux.
func (h *ShellHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/", h)
}

// ServeHTTP serves static assets directly and routes everything else through
// the view redirect rules:
//   - unauthenticated requests land on /login
//   - authenticated requests to /login or unknown paths land on /hub
//   - known view paths get the SPA shell
func (h *ShellHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// Built assets (anything that exists in dist other than the shell itself)
	// bypass the view router.
	if path != "/" && h.staticFileExists(path) {
		h.fileServer.ServeHTTP(w, r)
		return
	}

	authenticated := h.authMiddleware.IsAuthenticated(r)

	if !authenticated {
		if path == "/login" {
			h.serveShell(w, r)
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if path == "/login" || !viewPaths[path] {
		http.Redirect(w, r, "/hub", http.StatusFound)
		return
	}

	h.serveShell(w, r)
}

// serveShell writes index.html for the SPA router to take over.
func (h *ShellHandler) serveShell(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.distFS, "index.html")
	if err != nil {
		h.logger.Error("Failed to read UI shell", zap.Error(err))
		http.Error(w, "UI not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

// staticFileExists reports whether the path maps to a real file in dist.
func (h *ShellHandler) staticFileExists(path string) bool {
	name := strings.TrimPrefix(path, "/")
	if name == "" || name == "index.html" {
		return false
	}
	info, err := fs.Stat(h.distFS, name)
	return err == nil && !info.IsDir()
}

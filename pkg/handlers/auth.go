package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/auth"
)

// SignOutResponse represents the response for sign-out.
type SignOutResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirect_url"`
}

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(logger *zap.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// RegisterRoutes registers the auth handler's routes on the given mux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/signout", h.SignOut)
}

// SignOut handles POST /api/auth/signout
// Clears the JWT cookie and the browser session, then points the client at
// the login view. Sign-out always succeeds from the client's perspective.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	// Clear the JWT cookie by setting MaxAge to -1
	http.SetCookie(w, &http.Cookie{
		Name:     auth.JWTCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1, // Delete immediately
		Path:     "/",
	})

	// A session store failure must not block sign-out
	if err := auth.ClearSession(r, w); err != nil {
		h.logger.Error("Failed to clear session on sign-out", zap.Error(err))
	}

	h.logger.Info("User signed out")

	if err := WriteJSON(w, http.StatusOK, SignOutResponse{
		Success:     true,
		RedirectURL: "/login",
	}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/authz"
)

// Authenticator выпускает токены сессии администратора
type Authenticator interface {
	Login(email, password string) (token string, expires time.Time, err error)
}

// AuthHandler: вход, выход и состояние сессии.
type AuthHandler struct {
	auth         Authenticator
	cookieSecure bool
	logger       *slog.Logger
}

func NewAuthHandler(auth Authenticator, cookieSecure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login обрабатывает POST /api/auth/login; токен возвращается в теле и в HttpOnly cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithDomainError(w, err, "Not found", h.logger, "endpoint", "Login")
		return
	}

	token, expires, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Warn("failed login attempt", "ip", ClientContextFromRequest(r).IPAddress)
		respondWithDomainError(w, err, "Not found", h.logger, "endpoint", "Login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authz.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token":     token,
		"expiresAt": expires.UTC(),
	}, h.logger)
}

// Logout обрабатывает POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authz.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, h.logger)
}

// Session обрабатывает GET /api/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	p, ok := authz.FromContext(r.Context())
	if !ok {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false}, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"principal":     p,
	}, h.logger)
}

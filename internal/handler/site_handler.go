package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/theme"
	"github.com/GoArmGo/StyleInspo/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// SiteHandler: тема, настройки сайта, страницы и форма обратной связи.
type SiteHandler struct {
	themeUseCase usecase.ThemeUseCase
	siteUseCase  usecase.SiteUseCase
	logger       *slog.Logger
}

func NewSiteHandler(themeUC usecase.ThemeUseCase, siteUC usecase.SiteUseCase, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{
		themeUseCase: themeUC,
		siteUseCase:  siteUC,
		logger:       logger,
	}
}

// GetTheme обрабатывает GET /api/theme
func (h *SiteHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.themeUseCase.GetActiveTheme(r.Context())
	if err != nil {
		respondWithDomainError(w, err, "Theme not found", h.logger, "endpoint", "GetTheme")
		return
	}
	respondWithJSON(w, http.StatusOK, t, h.logger)
}

// ThemeCSS обрабатывает GET /api/theme/css, переменные --theme-* активной темы
func (h *SiteHandler) ThemeCSS(w http.ResponseWriter, r *http.Request) {
	t, err := h.themeUseCase.GetActiveTheme(r.Context())
	if err != nil {
		respondWithDomainError(w, err, "Theme not found", h.logger, "endpoint", "ThemeCSS")
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write([]byte(theme.StyleSheet(*t))); err != nil {
		h.logger.Error("failed to write HTTP response", "error", err)
	}
}

// SaveTheme обрабатывает POST /api/theme, частичный документ сливается с активной темой
func (h *SiteHandler) SaveTheme(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		respondWithDomainError(w, err, "Theme not found", h.logger, "endpoint", "SaveTheme")
		return
	}
	t, err := h.themeUseCase.SaveTheme(r.Context(), domain.ThemePatch(raw))
	if err != nil {
		respondWithDomainError(w, err, "Theme not found", h.logger, "endpoint", "SaveTheme")
		return
	}
	respondWithJSON(w, http.StatusOK, t, h.logger)
}

// ResetTheme обрабатывает PUT /api/theme, сброс к теме по умолчанию
func (h *SiteHandler) ResetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.themeUseCase.ResetTheme(r.Context())
	if err != nil {
		respondWithDomainError(w, err, "Theme not found", h.logger, "endpoint", "ResetTheme")
		return
	}
	respondWithJSON(w, http.StatusOK, t, h.logger)
}

type settingsResponse struct {
	*domain.SiteSettings
	SocialLinks []domain.SocialLink `json:"social_links"`
}

// GetSettings обрабатывает GET /api/settings; social_links содержит только заполненные ссылки
func (h *SiteHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.siteUseCase.GetSettings(r.Context())
	if err != nil {
		respondWithDomainError(w, err, "Settings not found", h.logger, "endpoint", "GetSettings")
		return
	}
	respondWithJSON(w, http.StatusOK, settingsResponse{SiteSettings: s, SocialLinks: s.VisibleSocialLinks()}, h.logger)
}

// UpdateSettings обрабатывает PUT /api/settings
func (h *SiteHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s domain.SiteSettings
	if err := decodeJSON(w, r, &s); err != nil {
		respondWithDomainError(w, err, "Settings not found", h.logger, "endpoint", "UpdateSettings")
		return
	}
	saved, err := h.siteUseCase.UpdateSettings(r.Context(), s)
	if err != nil {
		respondWithDomainError(w, err, "Settings not found", h.logger, "endpoint", "UpdateSettings")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": saved}, h.logger)
}

// ListPages обрабатывает GET /api/pages
func (h *SiteHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.siteUseCase.ListPages(r.Context())
	if err != nil {
		respondWithDomainError(w, err, "Page not found", h.logger, "endpoint", "ListPages")
		return
	}
	respondWithJSON(w, http.StatusOK, pages, h.logger)
}

// GetPage обрабатывает GET /api/pages/{id}
func (h *SiteHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page, err := h.siteUseCase.GetPage(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, "Page not found", h.logger, "endpoint", "GetPage", "page_id", id)
		return
	}
	respondWithJSON(w, http.StatusOK, page, h.logger)
}

// UpdatePage обрабатывает PUT /api/pages/{id}
func (h *SiteHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var update domain.PageUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		respondWithDomainError(w, err, "Page not found", h.logger, "endpoint", "UpdatePage")
		return
	}
	page, err := h.siteUseCase.UpdatePage(r.Context(), id, update)
	if err != nil {
		respondWithDomainError(w, err, "Page not found", h.logger, "endpoint", "UpdatePage", "page_id", id)
		return
	}
	respondWithJSON(w, http.StatusOK, page, h.logger)
}

// Contact обрабатывает POST /api/contact
func (h *SiteHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := decodeJSON(w, r, &msg); err != nil {
		respondWithDomainError(w, err, "Not found", h.logger, "endpoint", "Contact")
		return
	}
	if err := h.siteUseCase.SendContact(r.Context(), msg); err != nil {
		respondWithDomainError(w, err, "Not found", h.logger, "endpoint", "Contact")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Message sent successfully"}, h.logger)
}

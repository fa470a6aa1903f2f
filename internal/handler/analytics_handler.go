package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// AnalyticsHandler: приём событий и сводка для админки.
type AnalyticsHandler struct {
	analyticsUseCase usecase.AnalyticsUseCase
	logger           *slog.Logger
}

func NewAnalyticsHandler(uc usecase.AnalyticsUseCase, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUseCase: uc, logger: logger}
}

type pageViewRequest struct {
	PagePath string `json:"pagePath"`
	LookID   string `json:"lookId"`
}

// PageView обрабатывает POST /api/analytics/page-view. Запись идёт в фоне, ответ не ждёт базу.
func (h *AnalyticsHandler) PageView(w http.ResponseWriter, r *http.Request) {
	var req pageViewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithDomainError(w, err, "Not found", h.logger, "endpoint", "PageView")
		return
	}
	if strings.TrimSpace(req.PagePath) == "" {
		respondWithDomainError(w, domain.NewValidationError("Missing required field: pagePath"), "Not found", h.logger, "endpoint", "PageView")
		return
	}

	h.analyticsUseCase.RecordPageView(r.Context(), req.PagePath, req.LookID, ClientContextFromRequest(r))
	respondWithJSON(w, http.StatusAccepted, map[string]bool{"success": true}, h.logger)
}

// AffiliateClick обрабатывает POST /api/analytics/affiliate-click
func (h *AnalyticsHandler) AffiliateClick(w http.ResponseWriter, r *http.Request) {
	var req usecase.AffiliateClickInput
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithDomainError(w, err, "Not found", h.logger, "endpoint", "AffiliateClick")
		return
	}
	if req.LookID == "" || req.ItemID == "" || req.AffiliateURL == "" {
		respondWithDomainError(w, domain.NewValidationError("Missing required fields: lookId, itemId, affiliateUrl"), "Not found", h.logger, "endpoint", "AffiliateClick")
		return
	}

	h.analyticsUseCase.RecordAffiliateClick(r.Context(), req, ClientContextFromRequest(r))
	respondWithJSON(w, http.StatusAccepted, map[string]bool{"success": true}, h.logger)
}

// Summary обрабатывает GET /api/analytics/summary (только администратор)
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsUseCase.GetSummary(r.Context())
	if err != nil {
		respondWithDomainError(w, err, "Not found", h.logger, "endpoint", "Summary")
		return
	}
	respondWithJSON(w, http.StatusOK, summary, h.logger)
}

// Redirect обрабатывает GET /go/{lookId}/{itemId}: записывает переход и перенаправляет в магазин
func (h *AnalyticsHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	lookID, itemID := chi.URLParam(r, "lookId"), chi.URLParam(r, "itemId")
	link, err := h.analyticsUseCase.ResolveAffiliateLink(r.Context(), lookID, itemID, ClientContextFromRequest(r))
	if err != nil {
		respondWithDomainError(w, err, "Item not found", h.logger, "endpoint", "Redirect", "look_id", lookID, "item_id", itemID)
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}

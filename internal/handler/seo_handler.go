package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// SEOHandler: генерация SEO-пакета синхронно и через очередь.
type SEOHandler struct {
	seoUseCase usecase.SEOUseCase
	logger     *slog.Logger
}

func NewSEOHandler(uc usecase.SEOUseCase, logger *slog.Logger) *SEOHandler {
	return &SEOHandler{seoUseCase: uc, logger: logger}
}

// Generate обрабатывает POST /api/seo-generate. Ответ всегда в форме {success, seoData?, aiAnalysis?, error?}.
func (h *SEOHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.SEOGenerationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondFailure(w, err)
		return
	}

	resp, err := h.seoUseCase.Generate(r.Context(), req)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	if !resp.Success {
		h.logger.Error("SEO generation failed", "look_id", req.LookID, "error", resp.Error)
		respondWithJSON(w, http.StatusInternalServerError, resp, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, resp, h.logger)
}

// GenerateForLook обрабатывает POST /api/looks/{id}/seo, результат сохраняется в образе
func (h *SEOHandler) GenerateForLook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	resp, err := h.seoUseCase.GenerateForLook(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "GenerateForLook", "look_id", id)
		return
	}
	if !resp.Success {
		respondWithJSON(w, http.StatusInternalServerError, resp, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, resp, h.logger)
}

// EnqueueForLook обрабатывает POST /api/looks/{id}/seo/async, 202 после постановки в очередь
func (h *SEOHandler) EnqueueForLook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.seoUseCase.EnqueueForLook(r.Context(), id); err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "EnqueueForLook", "look_id", id)
		return
	}
	h.logger.Info("SEO generation queued", "look_id", id)
	respondWithJSON(w, http.StatusAccepted, map[string]interface{}{"success": true, "queued": true}, h.logger)
}

func (h *SEOHandler) respondFailure(w http.ResponseWriter, err error) {
	code, msg := statusForError(err, "Not found")
	if code >= http.StatusInternalServerError {
		h.logger.Error("SEO generation request failed", "error", err)
	}
	respondWithJSON(w, code, domain.SEOGenerationResponse{Success: false, Error: msg}, h.logger)
}

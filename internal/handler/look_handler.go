package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/usecase"
	"github.com/go-chi/chi/v5"
)

const lookNotFound = "Look not found"

// LookHandler: обработчик HTTP-запросов для работы с образами.
type LookHandler struct {
	lookUseCase    usecase.LookUseCase
	uploadMaxBytes int64
	logger         *slog.Logger
}

// NewLookHandler создаёт новый экземпляр LookHandler.
func NewLookHandler(uc usecase.LookUseCase, uploadMaxBytes int64, logger *slog.Logger) *LookHandler {
	return &LookHandler{
		lookUseCase:    uc,
		uploadMaxBytes: uploadMaxBytes,
		logger:         logger,
	}
}

// ListLooks обрабатывает GET /api/looks?q=...
func (h *LookHandler) ListLooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	looks, err := h.lookUseCase.ListLooks(r.Context(), query)
	if err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "ListLooks")
		return
	}
	respondWithJSON(w, http.StatusOK, looks, h.logger)
}

// CreateLook обрабатывает POST /api/looks. Повторный id возвращает сохранённую запись со статусом 200.
func (h *LookHandler) CreateLook(w http.ResponseWriter, r *http.Request) {
	var look domain.Look
	if err := decodeJSON(w, r, &look); err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "CreateLook")
		return
	}

	stored, created, err := h.lookUseCase.CreateLook(r.Context(), &look)
	if err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "CreateLook", "look_id", look.ID)
		return
	}

	status := http.StatusCreated
	if !created {
		h.logger.Info("look already exists", "look_id", stored.ID)
		status = http.StatusOK
	}
	respondWithJSON(w, status, stored, h.logger)
}

// GetLook обрабатывает GET /api/looks/{id}
func (h *LookHandler) GetLook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	look, err := h.lookUseCase.GetLook(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "GetLook", "look_id", id)
		return
	}
	respondWithJSON(w, http.StatusOK, look, h.logger)
}

// UpdateLook обрабатывает PUT /api/looks/{id}, частичное обновление
func (h *LookHandler) UpdateLook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch domain.LookPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "UpdateLook")
		return
	}

	look, err := h.lookUseCase.UpdateLook(r.Context(), id, patch)
	if err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "UpdateLook", "look_id", id)
		return
	}
	respondWithJSON(w, http.StatusOK, look, h.logger)
}

// DeleteLook обрабатывает DELETE /api/looks/{id}
func (h *LookHandler) DeleteLook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.lookUseCase.DeleteLook(r.Context(), id); err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "DeleteLook", "look_id", id)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, h.logger)
}

// AddItem обрабатывает POST /api/looks/{id}/items
func (h *LookHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var item domain.Item
	if err := decodeJSON(w, r, &item); err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "AddItem")
		return
	}

	look, err := h.lookUseCase.AddItem(r.Context(), id, item)
	if err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "AddItem", "look_id", id)
		return
	}
	respondWithJSON(w, http.StatusCreated, look, h.logger)
}

// UpdateItem обрабатывает PUT /api/looks/{id}/items/{itemId}
func (h *LookHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemId")
	var patch domain.ItemPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithDomainError(w, err, lookNotFound, h.logger, "endpoint", "UpdateItem")
		return
	}

	look, err := h.lookUseCase.UpdateItem(r.Context(), id, itemID, patch)
	if err != nil {
		respondWithDomainError(w, err, "Look or item not found", h.logger, "endpoint", "UpdateItem", "look_id", id, "item_id", itemID)
		return
	}
	respondWithJSON(w, http.StatusOK, look, h.logger)
}

// RemoveItem обрабатывает DELETE /api/looks/{id}/items/{itemId}
func (h *LookHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemId")
	look, err := h.lookUseCase.RemoveItem(r.Context(), id, itemID)
	if err != nil {
		respondWithDomainError(w, err, "Look or item not found", h.logger, "endpoint", "RemoveItem", "look_id", id, "item_id", itemID)
		return
	}
	respondWithJSON(w, http.StatusOK, look, h.logger)
}

// Upload обрабатывает POST /api/upload, multipart-поле file
func (h *LookHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// тело не читается, пока не проверены права
	if err := authz.RequireAdmin(r.Context()); err != nil {
		respondWithDomainError(w, err, "Not found", h.logger, "endpoint", "Upload")
		return
	}

	// запас на служебные части multipart
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes+64<<10)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondWithError(w, http.StatusRequestEntityTooLarge, "File is too large", h.logger)
		case errors.Is(err, http.ErrMissingFile):
			respondWithError(w, http.StatusBadRequest, "No file provided", h.logger)
		default:
			h.logger.Warn("invalid multipart upload", "error", err)
			respondWithError(w, http.StatusBadRequest, "Invalid upload form", h.logger)
		}
		return
	}
	defer file.Close()

	url, err := h.lookUseCase.UploadImage(r.Context(), usecase.UploadFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondWithDomainError(w, err, "Not found", h.logger, "endpoint", "Upload", "filename", header.Filename)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"url": url}, h.logger)
}

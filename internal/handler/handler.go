// Package handler содержит HTTP-обработчики JSON API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

// maxJSONBody ограничивает размер JSON-тела запроса
const maxJSONBody = 1 << 20

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// statusForError сопоставляет доменную ошибку с HTTP-статусом и безопасным сообщением.
// notFound задаёт текст 404 для конкретного ресурса.
func statusForError(err error, notFound string) (int, string) {
	var vErr *domain.ValidationError
	var upErr *domain.UpstreamError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Message
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, notFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.As(err, &upErr):
		// 503, если сервис не настроен; 502, если он ответил ошибкой
		if upErr.Err == nil {
			return http.StatusServiceUnavailable, upErr.Message
		}
		return http.StatusBadGateway, upErr.Message
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondWithDomainError логирует ошибку и отправляет нормализованный ответ {"error": "..."}
func respondWithDomainError(w http.ResponseWriter, err error, notFound string, logger *slog.Logger, attrs ...any) {
	code, msg := statusForError(err, notFound)
	attrs = append(attrs, "status", code, "error", err)
	switch {
	case code >= http.StatusInternalServerError:
		logger.Error("request failed", attrs...)
	case code == http.StatusNotFound:
		logger.Debug("resource not found", attrs...)
	default:
		logger.Warn("request rejected", attrs...)
	}
	respondWithError(w, code, msg, logger)
}

// decodeJSON читает тело запроса; ошибка разбора возвращается как ValidationError
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("request body is empty")
		}
		return domain.NewValidationError("invalid JSON body: " + err.Error())
	}
	return nil
}

// ClientContextFromRequest извлекает IP, user agent и referrer.
// IP берётся из первой записи X-Forwarded-For, иначе X-Real-IP.
func ClientContextFromRequest(r *http.Request) domain.ClientContext {
	ip := ""
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if ip == "" {
		ip = strings.TrimSpace(r.Header.Get("X-Real-IP"))
	}
	return domain.ClientContext{
		UserAgent: r.UserAgent(),
		IPAddress: ip,
		Referrer:  r.Referer(),
	}
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger: зависимость, доступность которой проверяет /health
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health обрабатывает GET /health; 503, если база недоступна
func Health(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Error("health check failed", "error", err)
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"}, logger)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "up"}, logger)
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/config"
	"github.com/GoArmGo/StyleInspo/internal/handler"
	"github.com/GoArmGo/StyleInspo/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 30 * time.Second

// Handlers: HTTP-обработчики, из которых собирается роутер
type Handlers struct {
	Looks     *handler.LookHandler
	SEO       *handler.SEOHandler
	Site      *handler.SiteHandler
	Analytics *handler.AnalyticsHandler
	Auth      *handler.AuthHandler
	Health    http.HandlerFunc
}

// NewRouter регистрирует все маршруты API
func NewRouter(cfg *config.Config, h Handlers, sessions handler.TokenParser, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metrics.Middleware)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(handler.Authenticate(sessions, logger))

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/go/{lookId}/{itemId}", h.Analytics.Redirect)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))

		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)
		r.Get("/auth/session", h.Auth.Session)

		r.Route("/looks", func(r chi.Router) {
			r.Get("/", h.Looks.ListLooks)
			r.Post("/", h.Looks.CreateLook)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Looks.GetLook)
				r.Put("/", h.Looks.UpdateLook)
				r.Patch("/", h.Looks.UpdateLook)
				r.Delete("/", h.Looks.DeleteLook)

				r.Post("/items", h.Looks.AddItem)
				r.Put("/items/{itemId}", h.Looks.UpdateItem)
				r.Delete("/items/{itemId}", h.Looks.RemoveItem)

				r.Post("/seo", h.SEO.GenerateForLook)
				r.Post("/seo/async", h.SEO.EnqueueForLook)
			})
		})
		r.Post("/seo-generate", h.SEO.Generate)
		r.Post("/upload", h.Looks.Upload)

		r.Get("/theme", h.Site.GetTheme)
		r.Post("/theme", h.Site.SaveTheme)
		r.Put("/theme", h.Site.ResetTheme)
		r.Get("/theme/css", h.Site.ThemeCSS)

		r.Get("/settings", h.Site.GetSettings)
		r.Put("/settings", h.Site.UpdateSettings)

		r.Get("/pages", h.Site.ListPages)
		r.Get("/pages/{id}", h.Site.GetPage)
		r.Put("/pages/{id}", h.Site.UpdatePage)

		r.Post("/contact", h.Site.Contact)

		r.Post("/analytics/page-view", h.Analytics.PageView)
		r.Post("/analytics/affiliate-click", h.Analytics.AffiliateClick)
		r.Get("/analytics/summary", h.Analytics.Summary)
	})

	return r
}

// runServer запускает HTTP сервер и блокируется до отмены ctx
func runServer(ctx context.Context, cfg *config.Config, router http.Handler, logger *slog.Logger) error {
	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping HTTP server")
	ctxServer, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}

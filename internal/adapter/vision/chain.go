// Package vision: провайдеры анализа изображения образа и цепочка отката между ними.
package vision

import (
	"context"
	"log/slog"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/metrics"
)

// Provider: один сервис анализа изображения
type Provider interface {
	Name() string
	Configured() bool
	Analyze(ctx context.Context, imageURL string) (*domain.VisionAnalysis, error)
}

// Chain опрашивает провайдеров по порядку до первого успеха
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// Analyze возвращает nil без ошибки, если ни один провайдер не ответил:
// генерация SEO продолжается без результатов анализа.
func (c *Chain) Analyze(ctx context.Context, imageURL string) *domain.VisionAnalysis {
	for _, p := range c.providers {
		if !p.Configured() {
			metrics.VisionRequests.WithLabelValues(p.Name(), "skipped").Inc()
			continue
		}
		if ctx.Err() != nil {
			return nil
		}

		start := time.Now()
		res, err := p.Analyze(ctx, imageURL)
		if err != nil || res == nil {
			metrics.VisionRequests.WithLabelValues(p.Name(), "error").Inc()
			c.logger.Warn("vision provider failed",
				"provider", p.Name(),
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			continue
		}

		metrics.VisionRequests.WithLabelValues(p.Name(), "success").Inc()
		c.logger.Info("vision analysis completed",
			"provider", p.Name(),
			"detected_items", len(res.DetectedItems),
			"duration_ms", time.Since(start).Milliseconds())
		return res
	}

	c.logger.Warn("all vision providers unavailable, continuing without analysis")
	return nil
}

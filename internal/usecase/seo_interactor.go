package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/core/ports"
	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/messaging/payloads"
	"github.com/GoArmGo/StyleInspo/internal/metrics"
	"github.com/GoArmGo/StyleInspo/internal/seo"
)

// seoUseCase implements SEOUseCase
type seoUseCase struct {
	looks     ports.LookStorage
	vision    VisionAnalyzer
	generator *seo.Generator
	// publisher равен nil, если RabbitMQ не настроен
	publisher ports.SEOJobPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewSEOUseCase создает новый экземпляр SEOUseCase
func NewSEOUseCase(
	looks ports.LookStorage,
	vision VisionAnalyzer,
	generator *seo.Generator,
	publisher ports.SEOJobPublisher,
	logger *slog.Logger,
) SEOUseCase {
	return &seoUseCase{
		looks:     looks,
		vision:    vision,
		generator: generator,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *seoUseCase) Generate(ctx context.Context, req domain.SEOGenerationRequest) (domain.SEOGenerationResponse, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return domain.SEOGenerationResponse{}, err
	}
	if strings.TrimSpace(req.MainImage) == "" {
		return domain.SEOGenerationResponse{}, domain.NewValidationError("Main image is required")
	}
	return uc.generate(ctx, req), nil
}

// generate: анализ изображения (необязательный) и детерминированный синтез.
// Любая ошибка синтеза или сериализации превращается в {success: false, error}.
func (uc *seoUseCase) generate(ctx context.Context, req domain.SEOGenerationRequest) (resp domain.SEOGenerationResponse) {
	start := time.Now()

	var vision *domain.VisionAnalysis
	if req.MainImage != "" {
		vision = uc.vision.Analyze(ctx, req.MainImage)
	}

	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("SEO synthesis panicked", "look_id", req.LookID, "panic", r)
			metrics.SEOGenerations.WithLabelValues("failed").Inc()
			resp = failed(fmt.Errorf("SEO synthesis failed: %v", r))
		}
	}()

	data, analysis := uc.generator.Synthesize(seo.Input{
		MainImage:    req.MainImage,
		Items:        req.Items,
		UserOccasion: req.UserOccasion,
		UserSeason:   req.UserSeason,
		Vision:       vision,
	})

	if _, err := json.Marshal(data); err != nil {
		metrics.SEOGenerations.WithLabelValues("failed").Inc()
		return failed(fmt.Errorf("%w: %v", domain.ErrSerialization, err))
	}
	if _, err := json.Marshal(analysis); err != nil {
		metrics.SEOGenerations.WithLabelValues("failed").Inc()
		return failed(fmt.Errorf("%w: %v", domain.ErrSerialization, err))
	}

	outcome := "with_vision"
	if vision == nil {
		outcome = "degraded"
	}
	metrics.SEOGenerations.WithLabelValues(outcome).Inc()
	uc.logger.Info("SEO bundle generated",
		"look_id", req.LookID,
		"vision", vision != nil,
		"confidence", analysis.Confidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return domain.SEOGenerationResponse{Success: true, SEOData: data, AIAnalysis: analysis}
}

// GenerateForLook генерирует пакет для сохранённого образа. При неудаче
// сохранённый пакет не трогается.
func (uc *seoUseCase) GenerateForLook(ctx context.Context, lookID string) (domain.SEOGenerationResponse, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return domain.SEOGenerationResponse{}, err
	}

	look, err := uc.looks.GetLook(ctx, lookID)
	if err != nil {
		return domain.SEOGenerationResponse{}, fmt.Errorf("usecase: ошибка при получении образа %s: %w", lookID, err)
	}
	if look == nil {
		return domain.SEOGenerationResponse{}, domain.ErrNotFound
	}

	resp := uc.generate(ctx, domain.SEOGenerationRequest{
		LookID:       look.ID,
		MainImage:    look.MainImage,
		Title:        look.Title,
		Tags:         look.Tags,
		Items:        look.Items,
		UserOccasion: string(look.Occasion),
		UserSeason:   string(look.Season),
	})
	if !resp.Success {
		uc.logger.Warn("SEO generation failed, keeping previous bundle", "look_id", lookID, "error", resp.Error)
		return resp, nil
	}

	now := uc.now()
	updated, err := uc.looks.UpdateLook(ctx, lookID, domain.LookPatch{
		SEO:            resp.SEOData,
		AIAnalysis:     resp.AIAnalysis,
		SEOLastUpdated: &now,
	})
	if err != nil {
		return domain.SEOGenerationResponse{}, fmt.Errorf("usecase: ошибка при сохранении SEO образа %s: %w", lookID, err)
	}
	if updated == nil {
		return domain.SEOGenerationResponse{}, domain.ErrNotFound
	}
	return resp, nil
}

// EnqueueForLook ставит генерацию в очередь; без RabbitMQ возвращает UpstreamUnavailable
func (uc *seoUseCase) EnqueueForLook(ctx context.Context, lookID string) error {
	if err := authz.RequireAdmin(ctx); err != nil {
		return err
	}
	if uc.publisher == nil {
		return domain.NewUpstreamError("Background SEO generation is not configured", nil)
	}

	look, err := uc.looks.GetLook(ctx, lookID)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при получении образа %s: %w", lookID, err)
	}
	if look == nil {
		return domain.ErrNotFound
	}

	err = uc.publisher.PublishSEOGenerationRequest(ctx, payloads.SEOGenerationPayload{
		LookID:      lookID,
		RequestedAt: uc.now(),
	})
	if err != nil {
		return domain.NewUpstreamError("Failed to queue SEO generation", err)
	}
	return nil
}

// ProcessJob: обработчик задачи воркера. Удалённый образ и неудачная генерация
// не повторяются; ошибки хранилища возвращаются, чтобы задача вернулась в очередь.
func (uc *seoUseCase) ProcessJob(ctx context.Context, job payloads.SEOGenerationPayload) error {
	resp, err := uc.GenerateForLook(ctx, job.LookID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("SEO job for missing look dropped", "look_id", job.LookID)
		return nil
	case err != nil:
		return err
	case !resp.Success:
		uc.logger.Error("SEO job produced no bundle", "look_id", job.LookID, "error", resp.Error)
		return nil
	}
	uc.logger.Info("SEO job completed",
		"look_id", job.LookID,
		"queued_for_ms", uc.now().Sub(job.RequestedAt).Milliseconds(),
	)
	return nil
}

func failed(err error) domain.SEOGenerationResponse {
	return domain.SEOGenerationResponse{Success: false, Error: err.Error()}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/core/ports"
	"github.com/GoArmGo/StyleInspo/internal/messaging/payloads"
	"github.com/GoArmGo/StyleInspo/internal/usecase"
)

// runWorker запускает потребителя RabbitMQ и обрабатывает задачи генерации SEO
func runWorker(
	ctx context.Context,
	seoUseCase usecase.SEOUseCase,
	consumer ports.SEOJobConsumer,
	logger *slog.Logger,
) error {
	if consumer == nil {
		return errors.New("worker mode requires RABBITMQ_URL")
	}

	logger.Info("worker started, waiting for SEO generation jobs")

	// задачи выполняются от имени системы: проверки прав в use case проходят
	messageHandler := func(ctx context.Context, payload payloads.SEOGenerationPayload) error {
		return seoUseCase.ProcessJob(authz.System(ctx), payload)
	}

	if err := consumer.StartConsumingSEOGenerationRequests(ctx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	logger.Info("worker stopped")
	return nil
}

package ports

import (
	"context"

	"github.com/GoArmGo/StyleInspo/internal/messaging/payloads"
)

// SEOJobPublisher публикует задачи на генерацию SEO.
// Используется use case'ом при асинхронном запуске генерации.
type SEOJobPublisher interface {
	PublishSEOGenerationRequest(ctx context.Context, payload payloads.SEOGenerationPayload) error
}

// SEOJobConsumer потребляет задачи на генерацию SEO, используется воркером
type SEOJobConsumer interface {
	// StartConsumingSEOGenerationRequests начинает прослушивание очереди;
	// handler вызывается для каждого полученного сообщения
	StartConsumingSEOGenerationRequests(ctx context.Context, handler func(context.Context, payloads.SEOGenerationPayload) error) error
}

package di

import (
	"context"
	"fmt"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/adapter/email"
	"github.com/GoArmGo/StyleInspo/internal/adapter/storage/minio"
	"github.com/GoArmGo/StyleInspo/internal/adapter/vision"
	"github.com/GoArmGo/StyleInspo/internal/app"
	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/config"
	"github.com/GoArmGo/StyleInspo/internal/core/ports"
	"github.com/GoArmGo/StyleInspo/internal/database/client"
	"github.com/GoArmGo/StyleInspo/internal/database/postgres"
	"github.com/GoArmGo/StyleInspo/internal/database/storage"
	"github.com/GoArmGo/StyleInspo/internal/handler"
	"github.com/GoArmGo/StyleInspo/internal/logger"
	"github.com/GoArmGo/StyleInspo/internal/rabbitmq"
	"github.com/GoArmGo/StyleInspo/internal/seo"
	"github.com/GoArmGo/StyleInspo/internal/usecase"
)

const initTimeout = 30 * time.Second

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	// 2. Схема и PostgreSQL клиент
	if err := client.EnsureSchema(cfg.DatabaseURL, slogger); err != nil {
		return nil, err
	}
	dbClient, err := client.NewClient(ctx, cfg, slogger)
	if err != nil {
		return nil, err
	}
	closers := []func() error{dbClient.Close}
	gormDB := dbClient.Gorm

	// 3. Инициализация хранилищ
	lookStorage := storage.NewLookStorage(dbClient.DB, slogger)
	analyticsStorage := storage.NewAnalyticsStorage(dbClient.DB, slogger)
	themeStorage := postgres.NewThemeStorage(gormDB, slogger)
	settingsStorage := postgres.NewSettingsStorage(gormDB, slogger)
	pageStorage := postgres.NewPageStorage(gormDB, slogger)

	// 4. Инициализация клиентов внешних сервисов
	media, err := minio.NewMinioClient(ctx, cfg, slogger) // S3 / MinIO адаптер
	if err != nil {
		return nil, err
	}

	replicateClient, err := vision.NewReplicateClient(cfg.Vision.ReplicateAPIToken, cfg.Vision.ReplicateModelVersion, cfg.Vision.Timeout)
	if err != nil {
		return nil, err
	}
	visionChain := vision.NewChain(slogger,
		replicateClient,
		vision.NewGeminiClient(cfg.Vision.GeminiAPIKey, cfg.Vision.GeminiModel, cfg.Vision.Timeout),
	)
	if cfg.Vision.ReplicateAPIToken == "" && cfg.Vision.GeminiAPIKey == "" {
		slogger.Warn("no vision provider configured, SEO generation runs in degraded mode")
	}

	mailer := email.NewSendGridMailer(cfg.Mail.SendGridAPIKey, cfg.Mail.FromAddress, cfg.Mail.FromName, slogger)
	if !mailer.Configured() {
		slogger.Warn("SENDGRID_API_KEY is not set, contact form is disabled")
	}

	// 5. RabbitMQ необязателен: без него асинхронная генерация SEO недоступна
	var (
		seoPublisher ports.SEOJobPublisher
		seoConsumer  ports.SEOJobConsumer
	)
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
		seoPublisher, seoConsumer = rabbitMQClient, rabbitMQClient
		closers = append(closers, func() error {
			rabbitMQClient.Close()
			return nil
		})
	} else {
		slogger.Warn("RABBITMQ_URL is not set, background SEO generation is disabled")
	}

	sessions, err := authz.NewSessionManager(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, cfg.Admin.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации сессий: %w", err)
	}

	// 6. Инициализация бизнес-логики (usecases)
	lookUseCase := usecase.NewLookUseCase(lookStorage, media, usecase.LookOptions{
		UploadFolder:   cfg.Media.UploadFolder,
		UploadMaxBytes: cfg.Media.UploadMaxBytes,
		DeleteTimeout:  cfg.Media.DeleteTimeout,
	}, slogger)
	seoUseCase := usecase.NewSEOUseCase(lookStorage, visionChain, seo.NewGenerator(cfg.BrandName, nil), seoPublisher, slogger)
	themeUseCase := usecase.NewThemeUseCase(themeStorage, slogger)
	siteUseCase := usecase.NewSiteUseCase(settingsStorage, pageStorage, mailer, slogger)
	analyticsUseCase := usecase.NewAnalyticsUseCase(analyticsStorage, lookStorage, cfg.AnalyticsWriteTimeout, slogger)

	// 7. HTTP-слой
	router := app.NewRouter(cfg, app.Handlers{
		Looks:     handler.NewLookHandler(lookUseCase, cfg.Media.UploadMaxBytes, slogger),
		SEO:       handler.NewSEOHandler(seoUseCase, slogger),
		Site:      handler.NewSiteHandler(themeUseCase, siteUseCase, slogger),
		Analytics: handler.NewAnalyticsHandler(analyticsUseCase, slogger),
		Auth:      handler.NewAuthHandler(sessions, cfg.Admin.CookieSecure, slogger),
		Health:    handler.Health(dbClient, slogger),
	}, sessions, slogger)

	// 8. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		router,
		seoUseCase,
		analyticsUseCase,
		seoConsumer,
		closers...,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}

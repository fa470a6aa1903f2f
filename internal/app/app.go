package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/StyleInspo/internal/config"
	"github.com/GoArmGo/StyleInspo/internal/core/ports"
	"github.com/GoArmGo/StyleInspo/internal/usecase"
)

type App struct {
	Config           *config.Config
	logger           *slog.Logger
	router           http.Handler
	seoUseCase       usecase.SEOUseCase
	analyticsUseCase usecase.AnalyticsUseCase
	seoJobConsumer   ports.SEOJobConsumer
	closers          []func() error
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	router http.Handler,
	seoUseCase usecase.SEOUseCase,
	analyticsUseCase usecase.AnalyticsUseCase,
	seoJobConsumer ports.SEOJobConsumer,
	closers ...func() error,
) *App {
	return &App{
		Config:           cfg,
		logger:           logger,
		router:           router,
		seoUseCase:       seoUseCase,
		analyticsUseCase: analyticsUseCase,
		seoJobConsumer:   seoJobConsumer,
		closers:          closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case "server":
		err = runServer(ctx, a.Config, a.router, a.logger)
	case "worker":
		err = runWorker(ctx, a.seoUseCase, a.seoJobConsumer, a.logger)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown finished with errors", "error", closeErr)
	}
	return err
}

// Shutdown дожидается фоновых записей аналитики и закрывает ресурсы в обратном порядке
func (a *App) Shutdown() error {
	if a.analyticsUseCase != nil {
		a.analyticsUseCase.Wait()
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/core/ports"
	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/metrics"
)

// analyticsUseCase implements AnalyticsUseCase
type analyticsUseCase struct {
	events       ports.AnalyticsStorage
	looks        ports.LookStorage
	writeTimeout time.Duration
	logger       *slog.Logger
	wg           sync.WaitGroup
}

// NewAnalyticsUseCase создает новый экземпляр AnalyticsUseCase
func NewAnalyticsUseCase(events ports.AnalyticsStorage, looks ports.LookStorage, writeTimeout time.Duration, logger *slog.Logger) AnalyticsUseCase {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &analyticsUseCase{
		events:       events,
		looks:        looks,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// RecordPageView записывает просмотр в фоне; ошибки только логируются
func (uc *analyticsUseCase) RecordPageView(ctx context.Context, pagePath, lookID string, client domain.ClientContext) {
	view := &domain.PageView{
		PagePath:  pagePath,
		LookID:    domain.OptionalString(lookID),
		UserAgent: domain.OptionalString(client.UserAgent),
		IPAddress: domain.OptionalString(client.IPAddress),
		Referrer:  domain.OptionalString(client.Referrer),
	}
	uc.detached(ctx, "page_view", func(ctx context.Context) error {
		if err := uc.events.SavePageView(ctx, view); err != nil {
			return err
		}
		metrics.PageViews.Inc()
		return nil
	})
}

func (uc *analyticsUseCase) RecordAffiliateClick(ctx context.Context, click AffiliateClickInput, client domain.ClientContext) {
	event := &domain.AffiliateClick{
		LookID:       click.LookID,
		ItemID:       click.ItemID,
		ItemName:     domain.OptionalString(click.ItemName),
		AffiliateURL: click.AffiliateURL,
		UserAgent:    domain.OptionalString(client.UserAgent),
		IPAddress:    domain.OptionalString(client.IPAddress),
	}
	uc.detached(ctx, "affiliate_click", func(ctx context.Context) error {
		if err := uc.events.SaveAffiliateClick(ctx, event); err != nil {
			return err
		}
		metrics.AffiliateClicks.Inc()
		return nil
	})
}

// ResolveAffiliateLink возвращает партнёрскую ссылку вещи и записывает переход
func (uc *analyticsUseCase) ResolveAffiliateLink(ctx context.Context, lookID, itemID string, client domain.ClientContext) (string, error) {
	look, err := uc.looks.GetLook(ctx, lookID)
	if err != nil {
		return "", fmt.Errorf("usecase: ошибка при получении образа %s: %w", lookID, err)
	}
	if look == nil {
		return "", domain.ErrNotFound
	}
	item, ok := look.Items.Find(itemID)
	if !ok || item.AffiliateLink == "" {
		return "", domain.ErrNotFound
	}

	uc.RecordAffiliateClick(ctx, AffiliateClickInput{
		LookID:       lookID,
		ItemID:       itemID,
		ItemName:     item.Name,
		AffiliateURL: item.AffiliateLink,
	}, client)
	return item.AffiliateLink, nil
}

func (uc *analyticsUseCase) GetSummary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	summary, err := uc.events.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении аналитики: %w", err)
	}
	return summary, nil
}

func (uc *analyticsUseCase) Wait() {
	uc.wg.Wait()
}

// detached выполняет запись независимо от отмены контекста запроса
func (uc *analyticsUseCase) detached(ctx context.Context, kind string, write func(context.Context) error) {
	bg := context.WithoutCancel(ctx)
	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		writeCtx, cancel := context.WithTimeout(bg, uc.writeTimeout)
		defer cancel()

		if err := write(writeCtx); err != nil {
			metrics.AnalyticsWriteFailures.WithLabelValues(kind).Inc()
			uc.logger.Error("failed to record analytics event", "kind", kind, "error", err)
		}
	}()
}

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	topLooksLimit    = 10
	recentViewsLimit = 50
)

// AnalyticsStorage пишет события в page_views и affiliate_clicks и строит сводку
type AnalyticsStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewAnalyticsStorage(db *sqlx.DB, logger *slog.Logger) *AnalyticsStorage {
	return &AnalyticsStorage{db: db, logger: logger}
}

// SavePageView добавляет просмотр страницы
func (s *AnalyticsStorage) SavePageView(ctx context.Context, view *domain.PageView) error {
	if view.ID == "" {
		view.ID = uuid.NewString()
	}
	if view.CreatedAt.IsZero() {
		view.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO page_views (id, page_path, look_id, user_agent, ip_address, referrer, created_at)
	VALUES (:id, :page_path, :look_id, :user_agent, :ip_address, :referrer, :created_at)
	`
	if _, err := s.db.NamedExecContext(ctx, query, view); err != nil {
		return fmt.Errorf("ошибка при сохранении просмотра страницы: %w", err)
	}
	return nil
}

// SaveAffiliateClick добавляет переход по партнёрской ссылке
func (s *AnalyticsStorage) SaveAffiliateClick(ctx context.Context, click *domain.AffiliateClick) error {
	if click.ID == "" {
		click.ID = uuid.NewString()
	}
	if click.CreatedAt.IsZero() {
		click.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO affiliate_clicks (id, look_id, item_id, item_name, affiliate_url, user_agent, ip_address, created_at)
	VALUES (:id, :look_id, :item_id, :item_name, :affiliate_url, :user_agent, :ip_address, :created_at)
	`
	if _, err := s.db.NamedExecContext(ctx, query, click); err != nil {
		return fmt.Errorf("ошибка при сохранении перехода по ссылке: %w", err)
	}
	return nil
}

// GetSummary собирает сводку: топ образов по просмотрам (включая образы без просмотров),
// последние просмотры, переходы за 30 дней и просмотры по дням за неделю.
func (s *AnalyticsStorage) GetSummary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	start := time.Now()

	summary := &domain.AnalyticsSummary{
		TopLooks:        []domain.LookViews{},
		RecentViews:     []domain.PageView{},
		AffiliateClicks: []domain.LookClicks{},
		DailyViews:      []domain.DailyViews{},
	}

	topLooks := `
	SELECT fl.id AS look_id, fl.title, COUNT(pv.id) AS views
	FROM fashion_looks fl
	LEFT JOIN page_views pv ON pv.look_id = fl.id
	GROUP BY fl.id, fl.title
	ORDER BY views DESC, fl.title ASC
	LIMIT $1
	`
	if err := s.db.SelectContext(ctx, &summary.TopLooks, topLooks, topLooksLimit); err != nil {
		s.logger.Error("failed to query top looks", "error", err)
		return nil, fmt.Errorf("ошибка при получении популярных образов: %w", err)
	}

	recent := `
	SELECT id, page_path, look_id, user_agent, ip_address, referrer, created_at
	FROM page_views
	ORDER BY created_at DESC
	LIMIT $1
	`
	if err := s.db.SelectContext(ctx, &summary.RecentViews, recent, recentViewsLimit); err != nil {
		s.logger.Error("failed to query recent views", "error", err)
		return nil, fmt.Errorf("ошибка при получении последних просмотров: %w", err)
	}

	clicks := `
	SELECT look_id, COUNT(*) AS clicks
	FROM affiliate_clicks
	WHERE created_at >= NOW() - INTERVAL '30 days'
	GROUP BY look_id
	ORDER BY clicks DESC
	`
	if err := s.db.SelectContext(ctx, &summary.AffiliateClicks, clicks); err != nil {
		s.logger.Error("failed to query affiliate clicks", "error", err)
		return nil, fmt.Errorf("ошибка при получении переходов по ссылкам: %w", err)
	}

	daily := `
	SELECT DATE(created_at) AS date, COUNT(*) AS views
	FROM page_views
	WHERE created_at >= NOW() - INTERVAL '7 days'
	GROUP BY DATE(created_at)
	ORDER BY date DESC
	`
	if err := s.db.SelectContext(ctx, &summary.DailyViews, daily); err != nil {
		s.logger.Error("failed to query daily views", "error", err)
		return nil, fmt.Errorf("ошибка при получении просмотров по дням: %w", err)
	}

	s.logger.Info("analytics summary built",
		"top_looks", len(summary.TopLooks),
		"recent_views", len(summary.RecentViews),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}

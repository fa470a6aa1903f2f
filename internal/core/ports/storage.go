package ports

import (
	"context"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

// LookStorage определяет методы для работы с образами.
// Get возвращает nil, nil, если образа нет.
type LookStorage interface {
	// CreateLook вставляет образ; при существующем id возвращает сохранённую запись и created=false
	CreateLook(ctx context.Context, look *domain.Look) (stored *domain.Look, created bool, err error)
	GetLook(ctx context.Context, id string) (*domain.Look, error)
	ListLooks(ctx context.Context) ([]domain.Look, error)
	// UpdateLook меняет только переданные поля; nil, nil если образа нет
	UpdateLook(ctx context.Context, id string, patch domain.LookPatch) (*domain.Look, error)
	// DeleteLook идемпотентен: удаление отсутствующего образа не ошибка
	DeleteLook(ctx context.Context, id string) (deleted bool, err error)
}

// AnalyticsStorage: запись событий и агрегирующие запросы
type AnalyticsStorage interface {
	SavePageView(ctx context.Context, view *domain.PageView) error
	SaveAffiliateClick(ctx context.Context, click *domain.AffiliateClick) error
	GetSummary(ctx context.Context) (*domain.AnalyticsSummary, error)
}

// ThemeStorage: хранилище тем; активной может быть только одна
type ThemeStorage interface {
	GetActiveTheme(ctx context.Context) (*domain.ThemeSettings, error)
	// SaveActiveTheme атомарно снимает активность с остальных тем и сохраняет эту как активную
	SaveActiveTheme(ctx context.Context, theme *domain.ThemeSettings) (*domain.ThemeSettings, error)
	CountActiveThemes(ctx context.Context) (int64, error)
}

// SettingsStorage: единственная запись настроек сайта
type SettingsStorage interface {
	GetOrCreateSettings(ctx context.Context) (*domain.SiteSettings, error)
	SaveSettings(ctx context.Context, settings *domain.SiteSettings) (*domain.SiteSettings, error)
}

// PageStorage: редактируемые страницы; Get/Update возвращают nil, nil для неизвестного id
type PageStorage interface {
	ListPages(ctx context.Context) ([]domain.Page, error)
	GetPage(ctx context.Context, id string) (*domain.Page, error)
	UpdatePage(ctx context.Context, id string, update domain.PageUpdate) (*domain.Page, error)
}

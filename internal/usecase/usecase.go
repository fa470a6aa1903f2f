package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/messaging/payloads"
)

// MediaGateway определяет интерфейс объектного хранилища изображений (MinIO, S3)
type MediaGateway interface {
	// Upload загружает файл и возвращает его публичный URL
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	// Delete удаляет объект; false, если объекта уже не было
	Delete(ctx context.Context, key string) (bool, error)
	// PublicIDFromURL извлекает ключ объекта из URL; ok == false для чужих URL
	PublicIDFromURL(rawURL string) (key string, ok bool)
}

// VisionAnalyzer анализирует главное фото образа.
// nil означает, что ни один провайдер не ответил.
type VisionAnalyzer interface {
	Analyze(ctx context.Context, imageURL string) *domain.VisionAnalysis
}

// Mailer отправляет письма формы обратной связи
type Mailer interface {
	Configured() bool
	Send(ctx context.Context, msg domain.OutgoingEmail) error
}

// UploadFile: загружаемое администратором изображение
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// LookUseCase определяет бизнес-логику жизненного цикла образа
type LookUseCase interface {
	// CreateLook идемпотентен по id: для существующего id возвращает сохранённую запись и created=false
	CreateLook(ctx context.Context, look *domain.Look) (*domain.Look, bool, error)
	GetLook(ctx context.Context, id string) (*domain.Look, error)
	// ListLooks возвращает образы, новые первыми; непустой query фильтрует галерею
	ListLooks(ctx context.Context, query string) ([]domain.Look, error)
	UpdateLook(ctx context.Context, id string, patch domain.LookPatch) (*domain.Look, error)
	AddItem(ctx context.Context, lookID string, item domain.Item) (*domain.Look, error)
	UpdateItem(ctx context.Context, lookID, itemID string, patch domain.ItemPatch) (*domain.Look, error)
	RemoveItem(ctx context.Context, lookID, itemID string) (*domain.Look, error)
	// DeleteLook удаляет изображения образа из хранилища, затем саму запись
	DeleteLook(ctx context.Context, id string) error
	UploadImage(ctx context.Context, file UploadFile) (string, error)
}

// SEOUseCase определяет генерацию SEO-пакета
type SEOUseCase interface {
	// Generate возвращает ошибку при отсутствии прав или главного фото; неудача генерации выражается Success == false
	Generate(ctx context.Context, req domain.SEOGenerationRequest) (domain.SEOGenerationResponse, error)
	// GenerateForLook сохраняет результат только при успехе
	GenerateForLook(ctx context.Context, lookID string) (domain.SEOGenerationResponse, error)
	EnqueueForLook(ctx context.Context, lookID string) error
	// ProcessJob обрабатывает задачу из очереди; ошибка означает, что задачу надо повторить
	ProcessJob(ctx context.Context, job payloads.SEOGenerationPayload) error
}

// ThemeUseCase определяет работу с активной темой
type ThemeUseCase interface {
	GetActiveTheme(ctx context.Context) (*domain.ThemeSettings, error)
	SaveTheme(ctx context.Context, patch domain.ThemePatch) (*domain.ThemeSettings, error)
	ResetTheme(ctx context.Context) (*domain.ThemeSettings, error)
}

// SiteUseCase: настройки сайта, редактируемые страницы и форма обратной связи
type SiteUseCase interface {
	GetSettings(ctx context.Context) (*domain.SiteSettings, error)
	UpdateSettings(ctx context.Context, settings domain.SiteSettings) (*domain.SiteSettings, error)
	ListPages(ctx context.Context) ([]domain.Page, error)
	GetPage(ctx context.Context, id string) (*domain.Page, error)
	UpdatePage(ctx context.Context, id string, update domain.PageUpdate) (*domain.Page, error)
	SendContact(ctx context.Context, msg domain.ContactMessage) error
}

// AnalyticsUseCase: запись событий без ожидания и сводка для админки
type AnalyticsUseCase interface {
	RecordPageView(ctx context.Context, pagePath, lookID string, client domain.ClientContext)
	RecordAffiliateClick(ctx context.Context, click AffiliateClickInput, client domain.ClientContext)
	// ResolveAffiliateLink находит ссылку вещи и записывает переход
	ResolveAffiliateLink(ctx context.Context, lookID, itemID string, client domain.ClientContext) (string, error)
	GetSummary(ctx context.Context) (*domain.AnalyticsSummary, error)
	// Wait дожидается незавершённых записей при остановке сервиса
	Wait()
}

// AffiliateClickInput: данные перехода из тела запроса
type AffiliateClickInput struct {
	LookID       string `json:"lookId"`
	ItemID       string `json:"itemId"`
	ItemName     string `json:"itemName"`
	AffiliateURL string `json:"affiliateUrl"`
}

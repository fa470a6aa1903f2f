package usecase

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/core/ports"
	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/gallery"
	"github.com/GoArmGo/StyleInspo/internal/metrics"
	"github.com/GoArmGo/StyleInspo/internal/seo"
	"github.com/google/uuid"
)

// LookOptions: параметры загрузки и удаления изображений
type LookOptions struct {
	UploadFolder   string
	UploadMaxBytes int64
	// DeleteTimeout ограничивает каждое отдельное удаление из хранилища
	DeleteTimeout time.Duration
}

// lookUseCase implements LookUseCase
type lookUseCase struct {
	looks  ports.LookStorage
	media  MediaGateway
	opts   LookOptions
	logger *slog.Logger
	now    func() time.Time
}

// NewLookUseCase создает новый экземпляр LookUseCase
func NewLookUseCase(looks ports.LookStorage, media MediaGateway, opts LookOptions, logger *slog.Logger) LookUseCase {
	if opts.DeleteTimeout <= 0 {
		opts.DeleteTimeout = 10 * time.Second
	}
	return &lookUseCase{
		looks:  looks,
		media:  media,
		opts:   opts,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *lookUseCase) CreateLook(ctx context.Context, look *domain.Look) (*domain.Look, bool, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, false, err
	}
	if err := look.Validate(); err != nil {
		return nil, false, err
	}

	for i := range look.Items {
		if look.Items[i].ID == "" {
			look.Items[i].ID = uuid.NewString()
		}
	}
	if look.CreatedAt.IsZero() {
		look.CreatedAt = uc.now()
	}

	stored, created, err := uc.looks.CreateLook(ctx, look)
	if err != nil {
		return nil, false, fmt.Errorf("usecase: ошибка при создании образа %s: %w", look.ID, err)
	}
	return stored, created, nil
}

func (uc *lookUseCase) GetLook(ctx context.Context, id string) (*domain.Look, error) {
	look, err := uc.looks.GetLook(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении образа %s: %w", id, err)
	}
	if look == nil {
		return nil, domain.ErrNotFound
	}
	return look, nil
}

func (uc *lookUseCase) ListLooks(ctx context.Context, query string) ([]domain.Look, error) {
	looks, err := uc.looks.ListLooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка образов: %w", err)
	}
	return gallery.Filter(looks, query), nil
}

// UpdateLook применяет частичное обновление. Сохраняемый SEO-пакет
// всегда содержит тексты ровно для текущего набора вещей.
func (uc *lookUseCase) UpdateLook(ctx context.Context, id string, patch domain.LookPatch) (*domain.Look, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	current, err := uc.GetLook(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return current, nil
	}

	items := current.Items
	if patch.Items != nil {
		items = *patch.Items
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = uuid.NewString()
			}
		}
		if patch.SEO == nil {
			patch.SEO = current.SEO
		}
	}
	// пакет из запроса тоже приводится к набору id вещей
	if patch.SEO != nil {
		analysis := current.AIAnalysis
		if patch.AIAnalysis != nil {
			analysis = patch.AIAnalysis
		}
		seo.Reconcile(patch.SEO, items, seo.ContextFromAnalysis(analysis))
	}

	return uc.save(ctx, id, patch)
}

func (uc *lookUseCase) AddItem(ctx context.Context, lookID string, item domain.Item) (*domain.Look, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	look, err := uc.GetLook(ctx, lookID)
	if err != nil {
		return nil, err
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if _, exists := look.Items.Find(item.ID); exists {
		return nil, domain.NewValidationError("item " + item.ID + " already exists in look")
	}

	items := append(append(domain.Items{}, look.Items...), item)
	patch := domain.LookPatch{Items: &items}
	if look.SEO != nil {
		seo.Reconcile(look.SEO, items, seo.ContextFromAnalysis(look.AIAnalysis))
		patch.SEO = look.SEO
	}
	return uc.save(ctx, lookID, patch)
}

// UpdateItem меняет вещь и, если переданы, ручные правки её SEO-описания и alt-текста
func (uc *lookUseCase) UpdateItem(ctx context.Context, lookID, itemID string, patch domain.ItemPatch) (*domain.Look, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	look, err := uc.GetLook(ctx, lookID)
	if err != nil {
		return nil, err
	}

	items := append(domain.Items{}, look.Items...)
	idx := -1
	for i := range items {
		if items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	items[idx] = patch.ApplyTo(items[idx])
	if err := items[idx].Validate(); err != nil {
		return nil, err
	}

	lookPatch := domain.LookPatch{Items: &items}
	if patch.SEODescription != nil || patch.AltText != nil {
		if look.SEO == nil {
			return nil, domain.NewValidationError("generate SEO for the look before editing item copy")
		}
		seo.Reconcile(look.SEO, items, seo.ContextFromAnalysis(look.AIAnalysis))
		if patch.SEODescription != nil {
			look.SEO.ItemDescriptions[itemID] = *patch.SEODescription
		}
		if patch.AltText != nil {
			look.SEO.ItemAltTexts[itemID] = *patch.AltText
		}
		lookPatch.SEO = look.SEO
	}
	return uc.save(ctx, lookID, lookPatch)
}

// RemoveItem убирает вещь и её тексты. Ошибка удаления изображения вещи только логируется.
func (uc *lookUseCase) RemoveItem(ctx context.Context, lookID, itemID string) (*domain.Look, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	look, err := uc.GetLook(ctx, lookID)
	if err != nil {
		return nil, err
	}
	removed, ok := look.Items.Find(itemID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	items := make(domain.Items, 0, len(look.Items)-1)
	for _, it := range look.Items {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	patch := domain.LookPatch{Items: &items}
	if look.SEO != nil {
		seo.Reconcile(look.SEO, items, seo.ContextFromAnalysis(look.AIAnalysis))
		patch.SEO = look.SEO
	}

	updated, err := uc.save(ctx, lookID, patch)
	if err != nil {
		return nil, err
	}

	// изображение может использоваться главным фото или другой вещью
	if _, shared := imageSet(updated)[removed.Image]; removed.Image != "" && !shared {
		uc.deleteImages(ctx, lookID, []string{removed.Image})
	}
	return updated, nil
}

// DeleteLook собирает все изображения образа, удаляет их параллельно,
// дожидается всех удалений и только потом удаляет запись.
// Ошибки удаления изображений логируются и не прерывают операцию.
func (uc *lookUseCase) DeleteLook(ctx context.Context, id string) error {
	if err := authz.RequireAdmin(ctx); err != nil {
		return err
	}
	look, err := uc.GetLook(ctx, id)
	if err != nil {
		return err
	}

	uc.deleteImages(ctx, id, look.ImageURLs())

	if _, err := uc.looks.DeleteLook(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении образа %s: %w", id, err)
	}
	uc.logger.Info("look deleted", "look_id", id, "images", len(look.ImageURLs()))
	return nil
}

func (uc *lookUseCase) deleteImages(ctx context.Context, lookID string, urls []string) {
	var wg sync.WaitGroup
	for _, u := range urls {
		key, ok := uc.media.PublicIDFromURL(u)
		if !ok {
			uc.logger.Debug("skipping external image", "look_id", lookID, "url", u)
			metrics.MediaDeletions.WithLabelValues("skipped").Inc()
			continue
		}

		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			delCtx, cancel := context.WithTimeout(ctx, uc.opts.DeleteTimeout)
			defer cancel()

			deleted, err := uc.media.Delete(delCtx, key)
			switch {
			case err != nil:
				metrics.MediaDeletions.WithLabelValues("error").Inc()
				uc.logger.Error("failed to delete image", "look_id", lookID, "key", key, "error", err)
			case deleted:
				metrics.MediaDeletions.WithLabelValues("deleted").Inc()
			default:
				metrics.MediaDeletions.WithLabelValues("absent").Inc()
			}
		}(key)
	}
	wg.Wait()
}

func (uc *lookUseCase) UploadImage(ctx context.Context, file UploadFile) (string, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return "", err
	}
	if file.Body == nil {
		return "", domain.NewValidationError("No file provided")
	}
	if file.Size > uc.opts.UploadMaxBytes {
		return "", domain.NewValidationError(fmt.Sprintf("file is too large: %d bytes, limit %d", file.Size, uc.opts.UploadMaxBytes))
	}

	br := bufio.NewReaderSize(file.Body, 512)
	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		head, _ := br.Peek(512)
		contentType = http.DetectContentType(head)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.NewValidationError("only image uploads are allowed")
	}

	key := path.Join(uc.opts.UploadFolder, uuid.NewString()+strings.ToLower(path.Ext(file.Filename)))
	url, err := uc.media.Upload(ctx, key, br, contentType)
	if err != nil {
		return "", domain.NewUpstreamError("Failed to upload image", err)
	}

	uc.logger.Info("image uploaded", "key", key, "size", file.Size)
	return url, nil
}

func (uc *lookUseCase) save(ctx context.Context, id string, patch domain.LookPatch) (*domain.Look, error) {
	updated, err := uc.looks.UpdateLook(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении образа %s: %w", id, err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

func imageSet(look *domain.Look) map[string]struct{} {
	set := make(map[string]struct{}, len(look.Items)+1)
	for _, u := range look.ImageURLs() {
		set[u] = struct{}{}
	}
	return set
}

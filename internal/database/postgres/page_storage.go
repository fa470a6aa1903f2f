package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"gorm.io/gorm"
)

type pageModel struct {
	ID        string `gorm:"primaryKey"`
	Title     string
	Content   string
	UpdatedAt time.Time
}

func (pageModel) TableName() string { return "pages" }

func (m pageModel) toDomain() domain.Page {
	return domain.Page{ID: m.ID, Title: m.Title, Content: m.Content, UpdatedAt: m.UpdatedAt}
}

// PageStorage реализует ports.PageStorage
type PageStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPageStorage(db *gorm.DB, logger *slog.Logger) *PageStorage {
	return &PageStorage{db: db, logger: logger}
}

func (s *PageStorage) ListPages(ctx context.Context) ([]domain.Page, error) {
	var models []pageModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("ошибка при получении списка страниц: %w", err)
	}
	pages := make([]domain.Page, 0, len(models))
	for _, m := range models {
		pages = append(pages, m.toDomain())
	}
	return pages, nil
}

// GetPage возвращает страницу по id или nil, nil
func (s *PageStorage) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	var m pageModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении страницы: %w", err)
	}
	p := m.toDomain()
	return &p, nil
}

// UpdatePage меняет заголовок и текст существующей страницы; nil, nil для неизвестного id
func (s *PageStorage) UpdatePage(ctx context.Context, id string, update domain.PageUpdate) (*domain.Page, error) {
	start := time.Now()

	res := s.db.WithContext(ctx).Model(&pageModel{ID: id}).Updates(map[string]any{
		"title":      update.Title,
		"content":    update.Content,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		s.logger.Error("failed to update page", "page_id", id, "error", res.Error)
		return nil, fmt.Errorf("ошибка при обновлении страницы: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		s.logger.Warn("page not found for update", "page_id", id)
		return nil, nil
	}

	s.logger.Info("page updated", "page_id", id, "duration_ms", time.Since(start).Milliseconds())
	return s.GetPage(ctx, id)
}

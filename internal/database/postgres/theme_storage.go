package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// themeLockKey: ключ advisory lock, сериализующего сохранение темы
const themeLockKey = 7_340_001

type themeModel struct {
	ID         string                                        `gorm:"primaryKey"`
	Name       string                                        `gorm:"not null"`
	Logo       datatypes.JSONType[domain.LogoSettings]       `gorm:"type:jsonb;not null"`
	Colors     datatypes.JSONType[domain.ColorSettings]      `gorm:"type:jsonb;not null"`
	Typography datatypes.JSONType[domain.TypographySettings] `gorm:"type:jsonb;not null"`
	Layout     datatypes.JSONType[domain.LayoutSettings]     `gorm:"type:jsonb;not null"`
	IsActive   bool                                          `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (themeModel) TableName() string { return "themes" }

func themeToModel(t *domain.ThemeSettings) themeModel {
	return themeModel{
		ID:         t.ID,
		Name:       t.Name,
		Logo:       datatypes.NewJSONType(t.Logo),
		Colors:     datatypes.NewJSONType(t.Colors),
		Typography: datatypes.NewJSONType(t.Typography),
		Layout:     datatypes.NewJSONType(t.Layout),
		IsActive:   t.IsActive,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (m themeModel) toDomain() *domain.ThemeSettings {
	return &domain.ThemeSettings{
		ID:         m.ID,
		Name:       m.Name,
		Logo:       m.Logo.Data(),
		Colors:     m.Colors.Data(),
		Typography: m.Typography.Data(),
		Layout:     m.Layout.Data(),
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ThemeStorage реализует ports.ThemeStorage с использованием GORM
type ThemeStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewThemeStorage(db *gorm.DB, logger *slog.Logger) *ThemeStorage {
	return &ThemeStorage{db: db, logger: logger}
}

// GetActiveTheme возвращает активную тему или nil, nil
func (s *ThemeStorage) GetActiveTheme(ctx context.Context) (*domain.ThemeSettings, error) {
	var m themeModel
	err := s.db.WithContext(ctx).Where("is_active = ?", true).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("no active theme stored")
			return nil, nil
		}
		s.logger.Error("failed to load active theme", "error", err)
		return nil, fmt.Errorf("ошибка при получении активной темы: %w", err)
	}
	return m.toDomain(), nil
}

// SaveActiveTheme в одной транзакции берёт advisory lock, снимает активность
// с остальных тем и сохраняет переданную тему как активную (upsert по id).
func (s *ThemeStorage) SaveActiveTheme(ctx context.Context, theme *domain.ThemeSettings) (*domain.ThemeSettings, error) {
	start := time.Now()

	m := themeToModel(theme)
	m.IsActive = true
	m.UpdatedAt = time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = m.UpdatedAt
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", themeLockKey).Error; err != nil {
			return fmt.Errorf("ошибка получения блокировки темы: %w", err)
		}
		if err := tx.Model(&themeModel{}).
			Where("is_active = ? AND id <> ?", true, m.ID).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("ошибка деактивации тем: %w", err)
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&m).Error
	})
	if err != nil {
		s.logger.Error("failed to save active theme", "theme_id", theme.ID, "error", err)
		return nil, fmt.Errorf("ошибка при сохранении темы: %w", err)
	}

	s.logger.Info("active theme saved",
		"theme_id", m.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return m.toDomain(), nil
}

// CountActiveThemes нужен для проверки инварианта единственной активной темы
func (s *ThemeStorage) CountActiveThemes(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&themeModel{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("ошибка подсчёта активных тем: %w", err)
	}
	return n, nil
}

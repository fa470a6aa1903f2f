package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsModel struct {
	ID              string `gorm:"primaryKey"`
	FooterLogoURL   *string
	FooterLogoSize  int
	FooterTextColor string
	SocialFacebook  string
	SocialTwitter   string
	SocialPinterest string
	SocialInstagram string
	SocialTiktok    string
	AdminEmail      string
	UpdatedAt       time.Time
}

func (settingsModel) TableName() string { return "site_settings" }

func settingsToModel(s *domain.SiteSettings) settingsModel {
	return settingsModel{
		ID:              s.ID,
		FooterLogoURL:   s.FooterLogoURL,
		FooterLogoSize:  s.FooterLogoSize,
		FooterTextColor: s.FooterTextColor,
		SocialFacebook:  s.SocialFacebook,
		SocialTwitter:   s.SocialTwitter,
		SocialPinterest: s.SocialPinterest,
		SocialInstagram: s.SocialInstagram,
		SocialTiktok:    s.SocialTiktok,
		AdminEmail:      s.AdminEmail,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m settingsModel) toDomain() *domain.SiteSettings {
	return &domain.SiteSettings{
		ID:              m.ID,
		FooterLogoURL:   m.FooterLogoURL,
		FooterLogoSize:  m.FooterLogoSize,
		FooterTextColor: m.FooterTextColor,
		SocialFacebook:  m.SocialFacebook,
		SocialTwitter:   m.SocialTwitter,
		SocialPinterest: m.SocialPinterest,
		SocialInstagram: m.SocialInstagram,
		SocialTiktok:    m.SocialTiktok,
		AdminEmail:      m.AdminEmail,
		UpdatedAt:       m.UpdatedAt,
	}
}

// SettingsStorage реализует ports.SettingsStorage
type SettingsStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewSettingsStorage(db *gorm.DB, logger *slog.Logger) *SettingsStorage {
	return &SettingsStorage{db: db, logger: logger}
}

// GetOrCreateSettings возвращает единственную запись, создавая её со значениями по умолчанию
func (s *SettingsStorage) GetOrCreateSettings(ctx context.Context) (*domain.SiteSettings, error) {
	def := domain.DefaultSiteSettings()
	m := settingsToModel(&def)
	m.UpdatedAt = time.Now().UTC()

	db := s.db.WithContext(ctx)
	// конкурентные вызовы не должны падать на уникальности id
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
		s.logger.Error("failed to create default site settings", "error", err)
		return nil, fmt.Errorf("ошибка при создании настроек сайта: %w", err)
	}

	var stored settingsModel
	if err := db.First(&stored, "id = ?", domain.SiteSettingsID).Error; err != nil {
		s.logger.Error("failed to load site settings", "error", err)
		return nil, fmt.Errorf("ошибка при получении настроек сайта: %w", err)
	}
	return stored.toDomain(), nil
}

// SaveSettings перезаписывает запись настроек
func (s *SettingsStorage) SaveSettings(ctx context.Context, settings *domain.SiteSettings) (*domain.SiteSettings, error) {
	start := time.Now()

	m := settingsToModel(settings)
	m.ID = domain.SiteSettingsID
	m.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		s.logger.Error("failed to save site settings", "error", err)
		return nil, fmt.Errorf("ошибка при сохранении настроек сайта: %w", err)
	}

	s.logger.Info("site settings saved", "duration_ms", time.Since(start).Milliseconds())
	return m.toDomain(), nil
}

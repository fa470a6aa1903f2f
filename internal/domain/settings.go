package domain

import (
	"strings"
	"time"
)

// SiteSettingsID: фиксированный id единственной записи настроек
const SiteSettingsID = "default"

// SiteSettings: настройки подвала, соцсети и адрес для формы обратной связи,
// соответствует таблице site_settings в бд
type SiteSettings struct {
	ID              string    `json:"id"`
	FooterLogoURL   *string   `json:"footer_logo_url"`
	FooterLogoSize  int       `json:"footer_logo_size"`
	FooterTextColor string    `json:"footer_text_color"`
	SocialFacebook  string    `json:"social_facebook"`
	SocialTwitter   string    `json:"social_twitter"`
	SocialPinterest string    `json:"social_pinterest"`
	SocialInstagram string    `json:"social_instagram"`
	SocialTiktok    string    `json:"social_tiktok"`
	AdminEmail      string    `json:"admin_email"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultSiteSettings возвращает значения по умолчанию
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:              SiteSettingsID,
		FooterLogoSize:  150,
		FooterTextColor: "#9ca3af",
	}
}

// Normalize подставляет значения по умолчанию вместо пустых, как это делает форма настроек
func (s *SiteSettings) Normalize() {
	s.ID = SiteSettingsID
	if s.FooterLogoURL != nil && strings.TrimSpace(*s.FooterLogoURL) == "" {
		s.FooterLogoURL = nil
	}
	if s.FooterLogoSize <= 0 {
		s.FooterLogoSize = 150
	}
	if s.FooterTextColor == "" {
		s.FooterTextColor = "#9ca3af"
	}
	s.SocialFacebook = strings.TrimSpace(s.SocialFacebook)
	s.SocialTwitter = strings.TrimSpace(s.SocialTwitter)
	s.SocialPinterest = strings.TrimSpace(s.SocialPinterest)
	s.SocialInstagram = strings.TrimSpace(s.SocialInstagram)
	s.SocialTiktok = strings.TrimSpace(s.SocialTiktok)
	s.AdminEmail = strings.TrimSpace(s.AdminEmail)
}

// SocialLink: ссылка на соцсеть, которую нужно показать
type SocialLink struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

// VisibleSocialLinks возвращает только заполненные ссылки: наличие значения управляет видимостью
func (s *SiteSettings) VisibleSocialLinks() []SocialLink {
	all := []SocialLink{
		{Network: "facebook", URL: s.SocialFacebook},
		{Network: "twitter", URL: s.SocialTwitter},
		{Network: "pinterest", URL: s.SocialPinterest},
		{Network: "instagram", URL: s.SocialInstagram},
		{Network: "tiktok", URL: s.SocialTiktok},
	}
	links := make([]SocialLink, 0, len(all))
	for _, l := range all {
		if strings.TrimSpace(l.URL) != "" {
			links = append(links, l)
		}
	}
	return links
}

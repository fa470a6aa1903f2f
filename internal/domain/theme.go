package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultThemeID: id темы, которую создаёт сброс к настройкам по умолчанию
const DefaultThemeID = "default"

type LogoSettings struct {
	URL           *string `json:"url"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Position      string  `json:"position"`
	ShowWithTitle bool    `json:"showWithTitle"`
}

// ColorSettings: фиксированная палитра именованных цветов
type ColorSettings struct {
	Primary             string `json:"primary"`
	Secondary           string `json:"secondary"`
	Accent              string `json:"accent"`
	Background          string `json:"background"`
	BackgroundSecondary string `json:"backgroundSecondary"`
	Text                string `json:"text"`
	TextMuted           string `json:"textMuted"`
	Button              string `json:"button"`
	ButtonHover         string `json:"buttonHover"`
	TagBackground       string `json:"tagBackground"`
	TagText             string `json:"tagText"`
	CardBackground      string `json:"cardBackground"`
	CardOverlay         string `json:"cardOverlay"`
	HeaderBackground    string `json:"headerBackground"`
	HeaderBorder        string `json:"headerBorder"`
}

type TypographySettings struct {
	FontFamily  string `json:"fontFamily"`
	HeadingSize string `json:"headingSize"`
	BodySize    string `json:"bodySize"`
	FontWeight  string `json:"fontWeight"`
}

type LayoutSettings struct {
	ContainerWidth string `json:"containerWidth"`
	Spacing        string `json:"spacing"`
	BorderRadius   string `json:"borderRadius"`
}

// ThemeSettings: конфигурация оформления сайта. Активной может быть только одна тема.
type ThemeSettings struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Logo       LogoSettings       `json:"logo"`
	Colors     ColorSettings      `json:"colors"`
	Typography TypographySettings `json:"typography"`
	Layout     LayoutSettings     `json:"layout"`
	IsActive   bool               `json:"isActive"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// DefaultTheme возвращает жёстко заданную тему по умолчанию
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		ID:   DefaultThemeID,
		Name: "Default Theme",
		Logo: LogoSettings{
			URL:           nil,
			Width:         120,
			Height:        40,
			Position:      "center",
			ShowWithTitle: true,
		},
		Colors: ColorSettings{
			Primary:             "#ec4899",
			Secondary:           "#9333ea",
			Accent:              "#f59e0b",
			Background:          "#fafafa",
			BackgroundSecondary: "#f5f5f5",
			Text:                "#171717",
			TextMuted:           "#737373",
			Button:              "#ec4899",
			ButtonHover:         "#be185d",
			TagBackground:       "#ec4899",
			TagText:             "#ffffff",
			CardBackground:      "#ffffff",
			CardOverlay:         "rgba(0, 0, 0, 0.6)",
			HeaderBackground:    "#ffffff",
			HeaderBorder:        "#e5e7eb",
		},
		Typography: TypographySettings{
			FontFamily:  "Geist Sans",
			HeadingSize: "large",
			BodySize:    "medium",
			FontWeight:  "normal",
		},
		Layout: LayoutSettings{
			ContainerWidth: "normal",
			Spacing:        "normal",
			BorderRadius:   "medium",
		},
		IsActive: true,
	}
}

var themeTiers = map[string][]string{
	"logo.position":          {"left", "center", "right"},
	"typography.headingSize": {"small", "medium", "large", "xl"},
	"typography.bodySize":    {"small", "medium", "large"},
	"typography.fontWeight":  {"light", "normal", "medium", "bold"},
	"layout.containerWidth":  {"narrow", "normal", "wide", "full"},
	"layout.spacing":         {"tight", "normal", "relaxed"},
	"layout.borderRadius":    {"none", "small", "medium", "large"},
}

// Validate проверяет значения перечислений и размеры логотипа
func (t *ThemeSettings) Validate() error {
	values := map[string]string{
		"logo.position":          t.Logo.Position,
		"typography.headingSize": t.Typography.HeadingSize,
		"typography.bodySize":    t.Typography.BodySize,
		"typography.fontWeight":  t.Typography.FontWeight,
		"layout.containerWidth":  t.Layout.ContainerWidth,
		"layout.spacing":         t.Layout.Spacing,
		"layout.borderRadius":    t.Layout.BorderRadius,
	}
	for field, v := range values {
		if !contains(themeTiers[field], v) {
			return NewValidationError(fmt.Sprintf("invalid %s: %q", field, v))
		}
	}
	if t.Logo.Width <= 0 || t.Logo.Height <= 0 {
		return NewValidationError("logo width and height must be positive")
	}
	if t.ID == "" {
		return NewValidationError("theme id must not be empty")
	}
	return nil
}

// ThemePatch: частичный JSON-документ темы; вложенные объекты сливаются по полям
type ThemePatch json.RawMessage

// ApplyTo накладывает патч поверх текущей темы и возвращает новую
func (p ThemePatch) ApplyTo(current ThemeSettings) (ThemeSettings, error) {
	merged := current
	if current.Logo.URL != nil {
		u := *current.Logo.URL
		merged.Logo.URL = &u
	}
	if len(p) == 0 {
		return merged, nil
	}
	if err := json.Unmarshal(p, &merged); err != nil {
		return ThemeSettings{}, NewValidationError("invalid theme document: " + err.Error())
	}
	// служебные поля не меняются через патч
	merged.IsActive = true
	merged.CreatedAt = current.CreatedAt
	merged.UpdatedAt = current.UpdatedAt
	return merged, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

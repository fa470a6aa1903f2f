// Package theme проецирует активную тему в плоское пространство CSS-переменных --theme-*.
// Вся оформленная вёрстка читает только эти переменные.
package theme

import (
	"strconv"
	"strings"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

// Variable: одна CSS-переменная
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var (
	headingSizes = map[string]string{
		"small":  "1.875rem",
		"medium": "2.25rem",
		"large":  "3rem",
		"xl":     "3.75rem",
	}
	bodySizes = map[string]string{
		"small":  "0.875rem",
		"medium": "1rem",
		"large":  "1.125rem",
	}
	fontWeights = map[string]string{
		"light":  "300",
		"normal": "400",
		"medium": "500",
		"bold":   "700",
	}
	containerWidths = map[string]string{
		"narrow": "768px",
		"normal": "1024px",
		"wide":   "1280px",
		"full":   "100%",
	}
	spacings = map[string]string{
		"tight":   "0.75rem",
		"normal":  "1rem",
		"relaxed": "1.5rem",
	}
	borderRadii = map[string]string{
		"none":   "0px",
		"small":  "0.25rem",
		"medium": "0.5rem",
		"large":  "1rem",
	}
)

// Variables возвращает переменные в стабильном порядке.
// Неизвестный уровень разрешается в значение темы по умолчанию.
func Variables(t domain.ThemeSettings) []Variable {
	def := domain.DefaultTheme()
	c := t.Colors

	vars := []Variable{
		{"--theme-primary", c.Primary},
		{"--theme-secondary", c.Secondary},
		{"--theme-accent", c.Accent},
		{"--theme-background", c.Background},
		{"--theme-background-secondary", c.BackgroundSecondary},
		{"--theme-text", c.Text},
		{"--theme-text-muted", c.TextMuted},
		{"--theme-button", c.Button},
		{"--theme-button-hover", c.ButtonHover},
		{"--theme-tag-background", c.TagBackground},
		{"--theme-tag-text", c.TagText},
		{"--theme-card-background", c.CardBackground},
		{"--theme-card-overlay", c.CardOverlay},
		{"--theme-header-background", c.HeaderBackground},
		{"--theme-header-border", c.HeaderBorder},
		{"--theme-font-family", t.Typography.FontFamily},
		{"--theme-heading-size", lookup(headingSizes, t.Typography.HeadingSize, def.Typography.HeadingSize)},
		{"--theme-body-size", lookup(bodySizes, t.Typography.BodySize, def.Typography.BodySize)},
		{"--theme-font-weight", lookup(fontWeights, t.Typography.FontWeight, def.Typography.FontWeight)},
		{"--theme-container-width", lookup(containerWidths, t.Layout.ContainerWidth, def.Layout.ContainerWidth)},
		{"--theme-spacing", lookup(spacings, t.Layout.Spacing, def.Layout.Spacing)},
		{"--theme-border-radius", lookup(borderRadii, t.Layout.BorderRadius, def.Layout.BorderRadius)},
		{"--theme-logo-width", strconv.Itoa(t.Logo.Width) + "px"},
		{"--theme-logo-height", strconv.Itoa(t.Logo.Height) + "px"},
	}
	for i := range vars {
		vars[i].Value = sanitize(vars[i].Value)
	}
	return vars
}

// StyleSheet рендерит переменные блоком :root{...}
func StyleSheet(t domain.ThemeSettings) string {
	var b strings.Builder
	b.WriteString(":root{\n")
	for _, v := range Variables(t) {
		b.WriteString("  ")
		b.WriteString(v.Name)
		b.WriteString(": ")
		b.WriteString(v.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func lookup(table map[string]string, tier, fallback string) string {
	if v, ok := table[tier]; ok {
		return v
	}
	return table[fallback]
}

// sanitize не даёт значению выйти за пределы объявления
func sanitize(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(v))
}

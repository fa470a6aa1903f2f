package seo

import (
	"fmt"
	"strings"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

// CopyContext: общий контекст образа для текстов отдельных вещей
type CopyContext struct {
	Color    string
	Style    string
	Occasion string
}

// ContextFromAnalysis берёт цвет, стиль и повод из сохранённого анализа,
// подставляя значения по умолчанию для отсутствующих полей
func ContextFromAnalysis(a *domain.AIAnalysis) CopyContext {
	c := CopyContext{Color: defaultColor, Style: defaultStyle, Occasion: defaultOccasion}
	if a == nil {
		return c
	}
	if len(a.Colors) > 0 && a.Colors[0] != "" {
		c.Color = a.Colors[0]
	}
	if a.StyleAesthetic != "" {
		c.Style = a.StyleAesthetic
	}
	if a.Occasion != "" {
		c.Occasion = a.Occasion
	}
	return c
}

// ItemCopy строит SEO-описание и alt-текст вещи
func ItemCopy(item domain.Item, c CopyContext) (description, altText string) {
	name := item.Name
	if strings.TrimSpace(name) == "" {
		name = "piece"
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Color, item.Category, name} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	optimized := strings.Join(parts, " ")

	description = fmt.Sprintf("This %s features %s styling perfect for %s occasions.",
		strings.ToLower(optimized), c.Style, c.Occasion)
	if strings.TrimSpace(item.Price) != "" {
		description += fmt.Sprintf(" Available for %s.", item.Price)
	}
	altText = fmt.Sprintf("%s - %s style for %s", optimized, c.Style, c.Occasion)
	return description, altText
}

// Reconcile приводит карты ItemDescriptions/ItemAltTexts к текущему набору вещей:
// записи удалённых вещей удаляются, для новых создаются тексты по шаблону.
// Существующие (в том числе отредактированные вручную) записи не меняются.
func Reconcile(data *domain.SEOData, items domain.Items, c CopyContext) {
	if data == nil {
		return
	}
	if data.ItemDescriptions == nil {
		data.ItemDescriptions = make(map[string]string, len(items))
	}
	if data.ItemAltTexts == nil {
		data.ItemAltTexts = make(map[string]string, len(items))
	}

	ids := items.IDs()
	for id := range data.ItemDescriptions {
		if _, ok := ids[id]; !ok {
			delete(data.ItemDescriptions, id)
		}
	}
	for id := range data.ItemAltTexts {
		if _, ok := ids[id]; !ok {
			delete(data.ItemAltTexts, id)
		}
	}

	for _, it := range items {
		_, hasDesc := data.ItemDescriptions[it.ID]
		_, hasAlt := data.ItemAltTexts[it.ID]
		if hasDesc && hasAlt {
			continue
		}
		desc, alt := ItemCopy(it, c)
		if !hasDesc {
			data.ItemDescriptions[it.ID] = desc
		}
		if !hasAlt {
			data.ItemAltTexts[it.ID] = alt
		}
	}
}

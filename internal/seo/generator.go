// Package seo детерминированно собирает SEO-пакет образа из шаблонов.
// Внешних вызовов здесь нет: только форматирование уже известных значений.
package seo

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

const (
	defaultColor    = "Stylish"
	defaultStyle    = "modern fashion"
	defaultOccasion = "casual"
	defaultSeason   = "versatile"

	confidenceWithVision    = 0.85
	confidenceWithoutVision = 0.70
)

// Input: всё, что известно об образе к моменту синтеза
type Input struct {
	MainImage    string
	Items        domain.Items
	UserOccasion string
	UserSeason   string
	// Vision равен nil, если оба провайдера недоступны
	Vision *domain.VisionAnalysis
}

// Generator собирает SEO-пакет. Pick выбирает шаблон meta description.
type Generator struct {
	brand string
	pick  func(n int) int
}

// NewGenerator создаёт генератор; pick == nil означает случайный выбор
func NewGenerator(brand string, pick func(n int) int) *Generator {
	if pick == nil {
		pick = rand.IntN
	}
	if brand == "" {
		brand = "Fashion Affiliate"
	}
	return &Generator{brand: brand, pick: pick}
}

// Synthesize строит SEOData и AIAnalysis
func (g *Generator) Synthesize(in Input) (*domain.SEOData, *domain.AIAnalysis) {
	v := in.Vision

	colors := []string{strings.ToLower(defaultColor)}
	style := defaultStyle
	var detected []string
	if v != nil {
		if len(v.Colors) > 0 {
			colors = v.Colors
		}
		if strings.TrimSpace(v.StyleAesthetic) != "" {
			style = v.StyleAesthetic
		}
		detected = v.DetectedItems
	}
	if len(detected) == 0 {
		for _, it := range in.Items {
			if it.Name != "" {
				detected = append(detected, it.Name)
			}
		}
	}

	occasion := firstNonEmpty(in.UserOccasion, visionField(v, func(a *domain.VisionAnalysis) string { return a.Occasion }), defaultOccasion)
	season := firstNonEmpty(in.UserSeason, visionField(v, func(a *domain.VisionAnalysis) string { return a.Season }), defaultSeason)

	color := firstNonEmpty(colors[0], defaultColor)
	titleColor := Capitalize(color)
	itemCount := len(in.Items)

	prices := make([]string, 0, itemCount)
	for _, it := range in.Items {
		prices = append(prices, it.Price)
	}
	pr := ComputePriceRange(prices)

	title := Truncate(fmt.Sprintf("%s %s Outfit - %d Piece Look", titleColor, Capitalize(occasion), itemCount), maxTitleLen)

	confidence := confidenceWithoutVision
	if v != nil {
		confidence = confidenceWithVision
	}

	analysis := &domain.AIAnalysis{
		DetectedItems:       nonNil(detected),
		Colors:              colors,
		StyleAesthetic:      style,
		Occasion:            occasion,
		Season:              season,
		PriceRange:          pr.String(),
		BodyTypeSuitability: bodyTypeSuitability(style, occasion),
		Confidence:          confidence,
	}

	templates := metaDescriptionTemplates(color, occasion, itemCount, style)
	meta := Truncate(templates[g.pick(len(templates))], maxDescriptionLen)

	data := &domain.SEOData{
		PageTitle:         title,
		MetaDescription:   meta,
		URLSlug:           Slugify(title),
		H1:                fmt.Sprintf("%s %s Outfit Inspiration", titleColor, Capitalize(occasion)),
		H2s:               append([]string(nil), h2s...),
		OutfitDescription: outfitDescription(color, occasion, season, itemCount, style, detected),
		StylingTips:       stylingTips(color, occasion, season),
		OccasionGuide:     occasionGuide(occasion),
		ItemDescriptions:  map[string]string{},
		Keywords:          keywords(color, occasion, season, style, itemCount),
		ImageAltText: fmt.Sprintf("%s %s outfit featuring %d coordinated pieces in %s style",
			color, occasion, itemCount, style),
		ItemAltTexts:    map[string]string{},
		SchemaMarkup:    g.schemaMarkup(title, color, occasion, season, style, itemCount, in.MainImage, pr),
		InternalLinks:   internalLinks(titleColor, occasion, season),
		ContentSections: contentSections(color, occasion, season, style, itemCount),
	}

	c := CopyContext{Color: color, Style: style, Occasion: occasion}
	for _, it := range in.Items {
		if it.Name == "" {
			continue
		}
		desc, alt := ItemCopy(it, c)
		data.ItemDescriptions[it.ID] = desc
		data.ItemAltTexts[it.ID] = alt
	}

	return data, analysis
}

func (g *Generator) schemaMarkup(title, color, occasion, season, style string, itemCount int, image string, pr PriceRange) domain.SchemaMarkup {
	return domain.SchemaMarkup{
		Context: "https://schema.org/",
		Type:    "Product",
		Name:    title,
		Description: fmt.Sprintf("%s %s outfit with %d pieces in %s style. Perfect for %s styling and %s occasions.",
			color, occasion, itemCount, style, season, occasion),
		Image:    image,
		Category: occasion + " fashion outfit",
		Color:    color,
		Style:    style,
		Offers: domain.SchemaOffer{
			Type:          "AggregateOffer",
			PriceCurrency: "USD",
			LowPrice:      pr.LowString(),
			HighPrice:     pr.HighString(),
			Availability:  "https://schema.org/InStock",
			OfferCount:    itemCount,
		},
		Brand: domain.SchemaBrand{Type: "Brand", Name: g.brand},
		AdditionalProperty: []domain.SchemaProperty{
			{Type: "PropertyValue", Name: "Occasion", Value: occasion},
			{Type: "PropertyValue", Name: "Season", Value: season},
			{Type: "PropertyValue", Name: "Style", Value: style},
			{Type: "PropertyValue", Name: "Pieces", Value: strconv.Itoa(itemCount)},
		},
		Keywords: strings.Join([]string{color, occasion, style, season, "fashion", "outfit", "style"}, ", "),
	}
}

func visionField(v *domain.VisionAnalysis, get func(*domain.VisionAnalysis) string) string {
	if v == nil {
		return ""
	}
	return get(v)
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

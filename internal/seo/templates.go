package seo

import (
	"fmt"
	"strings"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

var h2s = []string{"How to Style This Look", "When to Wear", "Shop the Items", "Complete the Look"}

var occasionTips = map[string][]string{
	"professional": {"Keep makeup subtle", "Choose structured handbag", "Add blazer layer"},
	"casual":       {"Mix and match pieces", "Add sneakers or flats", "Layer with cardigan"},
	"formal":       {"Add statement jewelry", "Choose elegant heels", "Include evening clutch"},
	"date-night":   {"Add bold lipstick", "Choose romantic accessories", "Include strappy heels"},
	"street-style": {"Add trendy sneakers", "Layer multiple pieces", "Include bold accessories"},
}

var occasionGuides = map[string]string{
	"professional": "Perfect for office meetings, presentations, business events.",
	"casual":       "Ideal for weekend outings, coffee dates, social gatherings.",
	"formal":       "Great for special events, dinner parties, upscale occasions.",
	"date-night":   "Perfect for romantic dinners, cocktail bars, evening events.",
	"street-style": "Ideal for urban adventures, festivals, creative events.",
}

func metaDescriptionTemplates(color, occasion string, itemCount int, style string) []string {
	return []string{
		fmt.Sprintf("%s %s outfit - %d %s pieces. Shop the complete look now.", color, occasion, itemCount, style),
		fmt.Sprintf("%d-piece %s %s ensemble. Perfect %s styling inspiration.", itemCount, color, occasion, style),
		fmt.Sprintf("Shop %s %s look: %d %s pieces for any season.", color, occasion, itemCount, style),
	}
}

func outfitDescription(color, occasion, season string, itemCount int, style string, items []string) string {
	itemList := "coordinated pieces"
	if len(items) > 0 {
		itemList = strings.Join(items[:min(3, len(items))], ", ")
	}
	seasonText := season
	if season == "current" {
		seasonText = "year-round"
	}
	return fmt.Sprintf("%s %s outfit featuring %d %s pieces. Includes %s. Perfect for %s styling. "+
		"Versatile, high-quality items that transition seamlessly from day to night. "+
		"Complete your %s wardrobe with this coordinated %s ensemble.",
		color, occasion, itemCount, style, itemList, seasonText, style, occasion)
}

// stylingTips: три общих совета и два под повод
func stylingTips(color, occasion, season string) []string {
	specific, ok := occasionTips[occasion]
	if !ok {
		specific = occasionTips["casual"]
	}
	return append([]string{
		fmt.Sprintf("Add %s accessories", strings.ToLower(color)),
		fmt.Sprintf("Layer for %s weather", season),
		"Mix textures and patterns",
	}, specific[:2]...)
}

func occasionGuide(occasion string) string {
	if g, ok := occasionGuides[occasion]; ok {
		return g
	}
	return occasionGuides["casual"]
}

func keywords(color, occasion, season, style string, itemCount int) domain.Keywords {
	lc := strings.ToLower(color)
	return domain.Keywords{
		Primary: []string{
			fmt.Sprintf("%s %s outfit", lc, occasion),
			fmt.Sprintf("%s %s look", style, occasion),
			fmt.Sprintf("%s fashion outfit", season),
		},
		Secondary: []string{
			fmt.Sprintf("%d piece outfit", itemCount),
			fmt.Sprintf("%s %s style", lc, style),
			fmt.Sprintf("%s outfit inspiration", occasion),
			fmt.Sprintf("%s wardrobe essentials", season),
		},
		LongTail: []string{
			fmt.Sprintf("how to style %s %s outfit", lc, occasion),
			fmt.Sprintf("%s %s fashion inspiration", season, occasion),
			fmt.Sprintf("%s outfit ideas for %s", style, occasion),
			fmt.Sprintf("%s %s look styling tips", lc, occasion),
		},
	}
}

func contentSections(color, occasion, season, style string, itemCount int) []domain.ContentSection {
	return []domain.ContentSection{
		{
			Heading: fmt.Sprintf("Shop This %s Look", Capitalize(occasion)),
			Content: fmt.Sprintf("%s %s outfit with %d %s pieces. Perfect for %s styling and everyday wear.",
				color, occasion, itemCount, style, season),
		},
		{
			Heading: "Complete the Look",
			Content: fmt.Sprintf("Add accessories, shoes, and layers to personalize this %s %s ensemble for any occasion.",
				style, occasion),
		},
	}
}

func internalLinks(color, occasion, season string) []domain.InternalLink {
	return []domain.InternalLink{
		{Text: fmt.Sprintf("Similar %s Outfits", Capitalize(occasion)), URL: "/" + Slugify(occasion) + "-outfits"},
		{Text: fmt.Sprintf("More %s Looks", season), URL: "/" + Slugify(season) + "-outfits"},
		{Text: fmt.Sprintf("%s Fashion Inspiration", color), URL: "/" + Slugify(color) + "-outfits"},
	}
}

// bodyTypeSuitability: простые правила по стилю и поводу, не больше четырёх значений
func bodyTypeSuitability(style, occasion string) []string {
	s := strings.ToLower(style)
	out := []string{"all body types"}
	if strings.Contains(s, "structured") || strings.Contains(s, "tailored") {
		out = append(out, "straight body type", "apple body type")
	}
	if strings.Contains(s, "flowy") || strings.Contains(s, "loose") {
		out = append(out, "pear body type", "hourglass body type")
	}
	if occasion == string(domain.OccasionProfessional) {
		out = append(out, "petite", "tall")
	}
	return out[:min(4, len(out))]
}

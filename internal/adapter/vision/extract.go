package vision

import (
	"regexp"
	"strings"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

const (
	maxItems  = 5
	maxColors = 4

	defaultStyle    = "modern fashion"
	defaultOccasion = "casual"
	defaultSeason   = "current"
)

var (
	itemsPattern  = regexp.MustCompile(`(?i)(?:clothing items?|garments?|pieces?)[^:]*:?\s*([^.]*)`)
	colorsPattern = regexp.MustCompile(`(?i)colors?[^:]*:?\s*([^.]*)`)
	stylePattern  = regexp.MustCompile(`(?i)(?:style|aesthetic)[^:]*:?\s*([^.]*)`)
	listSplit     = regexp.MustCompile(`[,;]`)
)

type keywordRule struct {
	value    string
	keywords []string
}

// порядок правил важен: первое совпадение выигрывает
var occasionRules = []keywordRule{
	{"professional", []string{"professional", "office", "business"}},
	{"formal", []string{"formal", "evening", "gala"}},
	{"date-night", []string{"date", "night out"}},
	{"street-style", []string{"street", "trendy", "urban"}},
}

var seasonRules = []keywordRule{
	{"winter", []string{"winter", "cold"}},
	{"summer", []string{"summer", "hot"}},
	{"spring", []string{"spring"}},
	{"fall", []string{"fall", "autumn"}},
}

// ParseFreeText извлекает поля из свободного текста модели.
// Каждое поле ищется независимо и имеет значение по умолчанию.
func ParseFreeText(text string) *domain.VisionAnalysis {
	return &domain.VisionAnalysis{
		DetectedItems:     extractList(itemsPattern, strings.ToLower(text), maxItems),
		Colors:            extractList(colorsPattern, strings.ToLower(text), maxColors),
		StyleAesthetic:    extractStyle(text),
		Occasion:          classify(text, occasionRules, defaultOccasion),
		Season:            classify(text, seasonRules, defaultSeason),
		VisualDescription: text,
	}
}

func extractList(re *regexp.Regexp, text string, limit int) []string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return []string{}
	}
	out := make([]string, 0, limit)
	for _, part := range listSplit.Split(m[1], -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func extractStyle(text string) string {
	m := stylePattern.FindStringSubmatch(text)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return defaultStyle
	}
	return strings.TrimSpace(m[1])
}

func classify(text string, rules []keywordRule, fallback string) string {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.value
			}
		}
	}
	return fallback
}

// Package gallery фильтрует ленту образов по поисковой строке.
package gallery

import (
	"strings"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

// Filter оставляет образы, в тегах, заголовке или категориях вещей которых
// встречается каждое слово запроса (логика AND, без учёта регистра).
// Пустой запрос возвращает все образы.
func Filter(looks []domain.Look, query string) []domain.Look {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return looks
	}

	out := make([]domain.Look, 0, len(looks))
	for _, l := range looks {
		if matchesAll(searchContent(l), terms) {
			out = append(out, l)
		}
	}
	return out
}

func searchContent(l domain.Look) string {
	categories := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		categories = append(categories, it.Category)
	}
	return strings.ToLower(strings.Join(l.Tags, " ") + " " + l.Title + " " + strings.Join(categories, " "))
}

func matchesAll(content string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(content, term) {
			return false
		}
	}
	return true
}

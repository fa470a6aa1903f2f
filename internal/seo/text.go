package seo

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxTitleLen       = 60
	maxDescriptionLen = 160
)

// Slugify приводит строку к нижнему регистру, заменяет любые последовательности
// не [a-z0-9] одним дефисом и обрезает дефисы по краям.
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Truncate обрезает строку длиннее limit рун до limit-3 рун и добавляет "..."
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// Capitalize делает заглавной первую букву
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

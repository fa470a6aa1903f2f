package domain

import (
	"strings"
	"time"
)

// Page: редактируемая статическая страница (about, privacy, terms, ...),
// соответствует таблице pages в бд
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageUpdate: новое содержимое страницы
type PageUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (u PageUpdate) Validate() error {
	if strings.TrimSpace(u.Title) == "" || strings.TrimSpace(u.Content) == "" {
		return NewValidationError("title and content are required")
	}
	return nil
}

package domain

import (
	"net/mail"
	"strings"
)

// ContactMessage: сообщение из формы обратной связи
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (m ContactMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" ||
		strings.TrimSpace(m.Subject) == "" || strings.TrimSpace(m.Message) == "" {
		return NewValidationError("All fields are required")
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return NewValidationError("invalid email address")
	}
	return nil
}

// OutgoingEmail: письмо, которое отправляет почтовый адаптер
type OutgoingEmail struct {
	To          string
	ReplyTo     string
	ReplyToName string
	Subject     string
	HTML        string
	Text        string
}

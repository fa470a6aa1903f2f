package domain

import "errors"

var (
	// ErrNotFound: запрошенный образ, страница или тема не существует
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized: операция требует прав администратора
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUpstreamUnavailable: внешний сервис (хранилище, почта, очередь, модель) недоступен или не настроен
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrSerialization: сгенерированный SEO-пакет не сериализуется
	ErrSerialization = errors.New("serialization failed")
)

// ValidationError: некорректные или отсутствующие входные поля
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// UpstreamError несёт сообщение для пользователя и оборачивает ErrUpstreamUnavailable
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUpstreamUnavailable, e.Err}
	}
	return []error{ErrUpstreamUnavailable}
}

func NewUpstreamError(msg string, err error) error {
	return &UpstreamError{Message: msg, Err: err}
}

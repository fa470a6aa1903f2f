package minio

import (
	"fmt"
	"net/url"
	"strings"
)

// URLResolver строит публичные URL объектов и извлекает из них ключи.
// «Своими» считаются только URL под публичным адресом бакета.
type URLResolver struct {
	base *url.URL
}

// NewURLResolver принимает публичный адрес бакета, например http://localhost:9000/looks
func NewURLResolver(publicBaseURL string) (*URLResolver, error) {
	u, err := url.Parse(strings.TrimRight(publicBaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("некорректный публичный адрес хранилища: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("публичный адрес хранилища без хоста: %q", publicBaseURL)
	}
	return &URLResolver{base: u}, nil
}

// PublicURL возвращает адрес объекта по ключу
func (r *URLResolver) PublicURL(key string) string {
	return r.base.String() + "/" + strings.TrimLeft(key, "/")
}

// PublicIDFromURL возвращает ключ объекта для URL, размещённого в хранилище.
// Для внешних URL ok=false, и удалять такой объект не нужно.
func (r *URLResolver) PublicIDFromURL(raw string) (key string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}
	if !strings.EqualFold(u.Host, r.base.Host) {
		return "", false
	}
	prefix := r.base.Path + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	key = strings.TrimPrefix(u.Path, prefix)
	if key == "" || strings.HasSuffix(key, "/") {
		return "", false
	}
	return key, true
}

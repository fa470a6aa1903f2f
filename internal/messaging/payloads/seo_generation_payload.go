package payloads

import "time"

// SEOGenerationPayload: задача на генерацию SEO для образа,
// передаётся через RabbitMQ от сервера к воркеру.
type SEOGenerationPayload struct {
	LookID      string    `json:"look_id"`
	RequestedAt time.Time `json:"requested_at"`
}

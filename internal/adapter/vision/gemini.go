package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

const (
	maxImageBytes = 10 << 20

	structuredPrompt = `Analyze this fashion outfit image. Respond with a single JSON object with exactly these fields:
{"detectedItems": [string], "colors": [string], "styleAesthetic": string,
 "occasion": one of "professional", "casual", "formal", "date-night", "street-style",
 "season": one of "spring", "summer", "fall", "winter",
 "visualDescription": string}`
)

// GeminiClient: запасной провайдер: структурированный JSON-ответ Gemini
type GeminiClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiClient создаёт клиент; пустой ключ означает, что провайдер не настроен
func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) Configured() bool { return c.apiKey != "" }

// Analyze скачивает изображение и отправляет его в модель вместе с промптом
func (c *GeminiClient) Analyze(ctx context.Context, imageURL string) (*domain.VisionAnalysis, error) {
	format, data, err := fetchImage(ctx, c.httpClient, imageURL)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.3)

	resp, err := model.GenerateContent(ctx, genai.Text(structuredPrompt), genai.ImageData(format, data))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	var text strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return DecodeStructured([]byte(text.String()))
}

// DecodeStructured строго разбирает JSON-ответ: лишние поля и пустой ответ считаются ошибкой
func DecodeStructured(raw []byte) (*domain.VisionAnalysis, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrEmptyOutput
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var a domain.VisionAnalysis
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("invalid structured vision response: %w", err)
	}
	if len(a.DetectedItems) == 0 && len(a.Colors) == 0 && a.StyleAesthetic == "" {
		return nil, errors.New("structured vision response has no usable fields")
	}
	return &a, nil
}

// fetchImage возвращает формат для genai.ImageData ("jpeg", "png", ...) и байты
func fetchImage(ctx context.Context, client *http.Client, url string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("ошибка создания HTTP-запроса: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read image: %w", err)
	}

	mime := http.DetectContentType(data)
	format, ok := strings.CutPrefix(mime, "image/")
	if !ok {
		return "", nil, fmt.Errorf("url does not point to an image: %s", mime)
	}
	return format, data, nil
}

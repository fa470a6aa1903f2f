package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/replicate/replicate-go"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

const (
	minOutputLen = 10

	analysisPrompt = `Analyze this fashion outfit image and provide a detailed analysis. Focus on:
1. Clothing items visible (specific garments)
2. Colors and color palette
3. Style aesthetic (minimalist, bold, vintage, etc.)
4. Suggested occasion (professional, casual, formal, date-night, street-style)
5. Seasonal appropriateness (spring, summer, fall, winter)
6. Overall visual description

Provide your analysis in a structured format covering each point above.`
)

// ErrEmptyOutput: модель вернула пустой или слишком короткий ответ
var ErrEmptyOutput = errors.New("empty or invalid response from vision model")

// ReplicateClient: основной провайдер: vision-language модель на Replicate,
// отвечает свободным текстом, поля из которого извлекаются ParseFreeText.
type ReplicateClient struct {
	api          *replicate.Client
	version      string
	timeout      time.Duration
	pollInterval time.Duration
}

// NewReplicateClient создаёт клиент; пустой токен означает, что провайдер не настроен
func NewReplicateClient(apiToken, modelVersion string, timeout time.Duration, opts ...replicate.ClientOption) (*ReplicateClient, error) {
	c := &ReplicateClient{
		version:      modelVersion,
		timeout:      timeout,
		pollInterval: time.Second,
	}
	if apiToken == "" {
		return c, nil
	}

	api, err := replicate.NewClient(append([]replicate.ClientOption{replicate.WithToken(apiToken)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента Replicate: %w", err)
	}
	c.api = api
	return c, nil
}

func (c *ReplicateClient) Name() string { return "replicate" }

func (c *ReplicateClient) Configured() bool { return c.api != nil }

// Analyze запускает предсказание, дожидается финального статуса и разбирает текст
func (c *ReplicateClient) Analyze(ctx context.Context, imageURL string) (*domain.VisionAnalysis, error) {
	if c.api == nil {
		return nil, errors.New("replicate API token is not set")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	pred, err := c.api.CreatePrediction(ctx, c.version, replicate.PredictionInput{
		"image":             imageURL,
		"prompt":            analysisPrompt,
		"temperature":       0.3,
		"max_length_tokens": 1000,
	}, nil, false)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания предсказания Replicate: %w", err)
	}

	if !isTerminal(pred.Status) {
		if err := c.api.Wait(ctx, pred, replicate.WithPollingInterval(c.pollInterval)); err != nil {
			return nil, fmt.Errorf("ошибка ожидания предсказания Replicate %s: %w", pred.ID, err)
		}
	}

	if pred.Status != replicate.Succeeded {
		return nil, fmt.Errorf("replicate prediction %s finished with status %s: %v", pred.ID, pred.Status, pred.Error)
	}

	text, err := outputText(pred.Output)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(text)) < minOutputLen {
		return nil, ErrEmptyOutput
	}
	return ParseFreeText(text), nil
}

func isTerminal(status replicate.Status) bool {
	switch status {
	case replicate.Succeeded, replicate.Failed, replicate.Canceled:
		return true
	}
	return false
}

// outputText склеивает потоковый вывод (массив строк) или берёт строку целиком
func outputText(out any) (string, error) {
	switch v := out.(type) {
	case nil:
		return "", ErrEmptyOutput
	case string:
		return v, nil
	case []any:
		var b strings.Builder
		for _, part := range v {
			if s, ok := part.(string); ok {
				b.WriteString(s)
			}
		}
		return b.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/ports/service"
)

const systemPrompt = "Ты профессиональный таролог. Дай подробный и понятный совет по значению карты, " +
	"в контексте повседневной жизни. Прогнозирование по знак зодиака и позициям планет. " +
	"Можно в тоне Подружки и Стиля ТароМаро. Больше смайлов."

var ErrEmptyAdvice = errors.New("advisor returned empty advice")

// Client AI-советник поверх OpenAI-совместимого API (по умолчанию Langdock)
type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
	log       *slog.Logger
}

var _ service.IAdvisor = (*Client)(nil)

func NewClient(cfg *Config, log *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: cfg.MaxTokens,
		log:       log,
	}
}

// Advise один запрос chat completion, без ретраев: при ошибке вызывающий отдаёт обычный совет
func (c *Client) Advise(ctx context.Context, req domain.AdviceRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req)},
		},
	})
	if err != nil {
		c.log.Warn("advisor request failed", "card", req.CardName, "error", err)
		return "", fmt.Errorf("advisor request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyAdvice
	}
	advice := strings.TrimSpace(resp.Choices[0].Message.Content)
	if advice == "" {
		return "", ErrEmptyAdvice
	}

	c.log.Debug("advice generated",
		"card", req.CardName,
		"model", c.model,
		"total_tokens", resp.Usage.TotalTokens)
	return advice, nil
}

func userPrompt(req domain.AdviceRequest) string {
	sign := req.ZodiacSign
	if sign == "" {
		sign = domain.UnknownZodiac
	}
	return fmt.Sprintf("Карта: %s (%s)\nЗначение: %s\nЗнак зодиака: %s",
		req.CardName,
		req.Orientation.Label(),
		req.Description,
		sign)
}

package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyResponse Модель вернула ответ без текста
var ErrEmptyResponse = errors.New("empty response from model")

type Options struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// Client Обертка над Gemini, отдает голый текст ответа
type Client struct {
	client *genai.Client
	opts   Options
}

func NewClient(ctx context.Context, apiKey string, opts Options) (*Client, error) {
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: c, opts: opts}, nil
}

// Generate Один запрос без истории
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.opts.Model)
	if c.opts.Temperature > 0 {
		model.SetTemperature(c.opts.Temperature)
	}
	if c.opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(c.opts.MaxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(getText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// WithOptions Клиент с другими параметрами генерации поверх того же соединения.
// Закрывать нужно только исходный клиент
func (c *Client) WithOptions(opts Options) *Client {
	return &Client{client: c.client, opts: opts}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func getText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
	}
	return b.String()
}

package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"pitch_backend/internal/model"
	"time"
)

// ErrUnavailable Сервис генерации текста недоступен
var ErrUnavailable = errors.New("text generator unavailable")

// TextGenerator Внешний сервис, который по промпту возвращает текст
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generator Генерирует питчи и реакции. Никогда не возвращает ошибку:
// при любом сбое отдает детерминированную заглушку
type Generator struct {
	ideas   TextGenerator
	results TextGenerator
	timeout time.Duration
	log     *slog.Logger
}

type Option func(*Generator)

// WithResultText Отдельный генератор для реакций на исход раунда
func WithResultText(text TextGenerator) Option {
	return func(g *Generator) {
		g.results = text
	}
}

func New(text TextGenerator, timeout time.Duration, logger *slog.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Generator{ideas: text, results: text, timeout: timeout, log: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateIdea Питч персонажа: заголовок и описание
func (g *Generator) GenerateIdea(ctx context.Context, ch model.Character) model.Idea {
	text, err := g.call(ctx, g.ideas, ideaPrompt(ch))
	if err != nil {
		g.log.Warn("idea generation failed, using fallback", "character", ch.Key, "err", err)
		return fallbackIdea(ch)
	}
	return parseIdea(ch, text)
}

// GenerateResult Реакция персонажа на исход раунда
func (g *Generator) GenerateResult(ctx context.Context, ch model.Character, ideaTitle string, success bool) model.Narrative {
	text, err := g.call(ctx, g.results, resultPrompt(ch, ideaTitle, success))
	if err != nil {
		g.log.Warn("result generation failed, using fallback", "character", ch.Key, "success", success, "err", err)
		return fallbackResult(ch, success)
	}
	return parseResult(text)
}

func (g *Generator) call(ctx context.Context, text TextGenerator, prompt string) (string, error) {
	if text == nil {
		return "", ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := text.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, nil
}

// Offline Генератор без внешнего сервиса: все запросы падают, работают заглушки
type Offline struct{}

func (Offline) Generate(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

package env

import (
	"fmt"
	"pitch_backend/internal/config"
	"time"

	cenv "github.com/caarlos0/env/v11"
)

type generatorConfig struct {
	Key       string        `env:"GEMINI_API_KEY"`
	ModelName string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	Deadline  time.Duration `env:"GENERATOR_TIMEOUT" envDefault:"15s"`
}

// NewGeneratorConfig Пустой ключ допустим: тогда весь текст берется из заглушек
func NewGeneratorConfig() (config.GeneratorConfig, error) {
	cfg, err := cenv.ParseAs[generatorConfig]()
	if err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	if cfg.Deadline <= 0 {
		return nil, fmt.Errorf("generator timeout must be positive")
	}
	return &cfg, nil
}

func (c *generatorConfig) APIKey() string {
	return c.Key
}

func (c *generatorConfig) Model() string {
	return c.ModelName
}

func (c *generatorConfig) Timeout() time.Duration {
	return c.Deadline
}

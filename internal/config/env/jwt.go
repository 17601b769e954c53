package env

import (
	"fmt"
	"pitch_backend/internal/config"
	"time"

	cenv "github.com/caarlos0/env/v11"
)

type jwtConfig struct {
	SecretKey string        `env:"ACCESS_TOKEN"`
	Duration  time.Duration `env:"ACCESS_TOKEN_DURATION" envDefault:"24h"`
}

func NewJWTConfig() (config.JWTConfig, error) {
	cfg, err := cenv.ParseAs[jwtConfig]()
	if err != nil {
		return nil, fmt.Errorf("invalid jwt config: %w", err)
	}
	if len(cfg.SecretKey) == 0 {
		return nil, fmt.Errorf("access token secret key not found")
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("access token duration must be positive")
	}

	return &cfg, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.SecretKey)
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.Duration
}

package env

import (
	"fmt"
	"pitch_backend/internal/config"
	"time"

	cenv "github.com/caarlos0/env/v11"
)

type rankingConfig struct {
	TZ  string `env:"RANKING_TZ" envDefault:"UTC"`
	loc *time.Location
}

func NewRankingConfig() (config.RankingConfig, error) {
	cfg, err := cenv.ParseAs[rankingConfig]()
	if err != nil {
		return nil, err
	}
	cfg.loc, err = time.LoadLocation(cfg.TZ)
	if err != nil {
		return nil, fmt.Errorf("invalid ranking time zone %q: %w", cfg.TZ, err)
	}
	return &cfg, nil
}

func (c *rankingConfig) Location() *time.Location {
	return c.loc
}

package env

import (
	"errors"
	"fmt"
	"pitch_backend/internal/config"
	"time"

	cenv "github.com/caarlos0/env/v11"
)

type gameConfig struct {
	Capital  int64         `env:"GAME_START_CAPITAL" envDefault:"10000"`
	Chances  int           `env:"GAME_START_CHANCES" envDefault:"5"`
	Rerolls  int           `env:"GAME_START_REROLLS" envDefault:"5"`
	Stake    int64         `env:"GAME_MIN_STAKE" envDefault:"2000"`
	Cost     int64         `env:"GAME_ENCHANT_COST" envDefault:"2000"`
	BoostMin int           `env:"GAME_ENCHANT_BOOST_MIN" envDefault:"10"`
	BoostMax int           `env:"GAME_ENCHANT_BOOST_MAX" envDefault:"50"`
	TTL      time.Duration `env:"ROUND_TTL" envDefault:"30m"`
}

// NewGameConfig Правила партии. Значения по умолчанию соответствуют исходным правилам игры
func NewGameConfig() (config.GameConfig, error) {
	cfg, err := cenv.ParseAs[gameConfig]()
	if err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *gameConfig) validate() error {
	switch {
	case c.Capital <= 0:
		return errors.New("start capital must be positive")
	case c.Chances <= 0:
		return errors.New("start chances must be positive")
	case c.Rerolls < 0:
		return errors.New("start rerolls must not be negative")
	case c.Stake <= 0:
		return errors.New("min stake must be positive")
	case c.Cost <= 0:
		return errors.New("enchant cost must be positive")
	case c.BoostMin < 0 || c.BoostMin > c.BoostMax || c.BoostMax > 100:
		return errors.New("enchant boost range must satisfy 0 <= min <= max <= 100")
	case c.TTL <= 0:
		return errors.New("round ttl must be positive")
	}
	return nil
}

func (c *gameConfig) StartCapital() int64 {
	return c.Capital
}

func (c *gameConfig) StartChances() int {
	return c.Chances
}

func (c *gameConfig) StartRerolls() int {
	return c.Rerolls
}

func (c *gameConfig) MinStake() int64 {
	return c.Stake
}

func (c *gameConfig) EnchantCost() int64 {
	return c.Cost
}

func (c *gameConfig) EnchantBoostMin() int {
	return c.BoostMin
}

func (c *gameConfig) EnchantBoostMax() int {
	return c.BoostMax
}

func (c *gameConfig) RoundTTL() time.Duration {
	return c.TTL
}

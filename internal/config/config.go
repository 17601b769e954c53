package config

import (
	"pitch_backend/internal/model"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type CatalogConfig interface {
	Characters() []model.Character
}

type GameConfig interface {
	StartCapital() int64
	StartChances() int
	StartRerolls() int
	MinStake() int64
	EnchantCost() int64
	EnchantBoostMin() int
	EnchantBoostMax() int
	RoundTTL() time.Duration
}

type GeneratorConfig interface {
	APIKey() string
	Model() string
	Timeout() time.Duration
}

type RankingConfig interface {
	Location() *time.Location
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

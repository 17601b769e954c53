package env

import (
	"fmt"
	"os"
	"pitch_backend/internal/config"
	"pitch_backend/internal/model"

	"gopkg.in/yaml.v3"
)

type catalogConfig struct {
	List []model.Character `yaml:"characters"`
}

// NewCatalogConfigFromYAML Читает таблицу персонажей из yaml файла.
// Проверка значений делается при сборке каталога
func NewCatalogConfigFromYAML(path string) (config.CatalogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*catalogConfig, error) {
	var cfg catalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	if len(cfg.List) == 0 {
		return nil, fmt.Errorf("catalog has no characters")
	}
	return &cfg, nil
}

func (c *catalogConfig) Characters() []model.Character {
	out := make([]model.Character, len(c.List))
	copy(out, c.List)
	return out
}

// CatalogPath Путь к yaml с персонажами
func CatalogPath() string {
	if p := os.Getenv("CATALOG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

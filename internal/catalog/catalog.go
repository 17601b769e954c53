package catalog

import (
	"errors"
	"fmt"
	"pitch_backend/internal/model"
	"pitch_backend/pkg/rng"
	"unicode/utf8"
)

// MaxNameLen Длина колонки character_name; имя хранится в истории целиком
const MaxNameLen = 40

// Catalog Неизменяемая таблица персонажей
type Catalog struct {
	chars       []model.Character
	totalWeight int
}

// New Проверяет таблицу и собирает каталог
func New(chars []model.Character) (*Catalog, error) {
	if len(chars) == 0 {
		return nil, errors.New("catalog is empty")
	}

	seen := make(map[string]struct{}, len(chars))
	total := 0
	for _, c := range chars {
		if c.Key == "" || c.Name == "" {
			return nil, fmt.Errorf("character %q: key and name are required", c.Key)
		}
		if utf8.RuneCountInString(c.Name) > MaxNameLen {
			return nil, fmt.Errorf("character %q: name is longer than %d characters", c.Key, MaxNameLen)
		}
		if _, ok := seen[c.Key]; ok {
			return nil, fmt.Errorf("character %q: duplicate key", c.Key)
		}
		seen[c.Key] = struct{}{}

		if c.SpawnWeight <= 0 {
			return nil, fmt.Errorf("character %q: spawn weight must be positive", c.Key)
		}
		if c.SuccessRate < 0 || c.SuccessRate > 1 {
			return nil, fmt.Errorf("character %q: success rate must be within [0,1]", c.Key)
		}
		if c.MinROI > c.MaxROI {
			return nil, fmt.Errorf("character %q: min roi is greater than max roi", c.Key)
		}
		total += c.SpawnWeight
	}

	list := make([]model.Character, len(chars))
	copy(list, chars)

	return &Catalog{chars: list, totalWeight: total}, nil
}

// Select Взвешенный случайный выбор персонажа
func (c *Catalog) Select(src rng.Source) model.Character {
	num := src.Intn(c.totalWeight)
	cumulative := 0
	for _, ch := range c.chars {
		cumulative += ch.SpawnWeight
		if num < cumulative {
			return ch
		}
	}
	// сюда не попадаем: num < totalWeight
	return c.chars[len(c.chars)-1]
}

// KeyByName Ключ персонажа по отображаемому имени (для картинки на экране результата)
func (c *Catalog) KeyByName(name string) (string, bool) {
	for _, ch := range c.chars {
		if ch.Name == name {
			return ch.Key, true
		}
	}
	return "", false
}

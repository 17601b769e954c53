package model

// Character Персонаж, который приходит с питчем
type Character struct {
	Key         string  `yaml:"key"`
	Name        string  `yaml:"name"`
	Concept     string  `yaml:"concept"`
	SpawnWeight int     `yaml:"spawn_weight"` // Относительная частота появления
	SuccessRate float64 `yaml:"success_rate"` // Базовая вероятность успеха 0..1
	MinROI      int     `yaml:"min_roi"`      // Минимальный ROI в процентах при успехе
	MaxROI      int     `yaml:"max_roi"`      // Максимальный ROI в процентах при успехе
	Persona     string  `yaml:"persona"`      // Характер и манера речи
	IdeaFormat  string  `yaml:"idea_format"`  // Структура питча
}

// Idea Питч персонажа
type Idea struct {
	Title       string
	Description string
}

// Narrative Реакция на исход раунда
type Narrative struct {
	SystemMsg string
	Reaction  string
}

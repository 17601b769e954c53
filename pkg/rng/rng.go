package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Source Источник случайности для игровой логики.
// В тестах подменяется детерминированной реализацией
type Source interface {
	Intn(n int) int
	Float64() float64
}

type locked struct {
	mtx sync.Mutex
	r   *rand.Rand
}

// New Потокобезопасный источник с заданным seed
func New(seed int64) Source {
	return &locked{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded Источник с seed от текущего времени
func NewTimeSeeded() Source {
	return New(time.Now().UnixNano())
}

func (l *locked) Intn(n int) int {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.r.Intn(n)
}

func (l *locked) Float64() float64 {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.r.Float64()
}

// IntRange Равномерное целое из [lo, hi] включительно
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

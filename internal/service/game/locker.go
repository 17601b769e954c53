package game

import "sync"

// keyedMutex Мьютекс на каждый ключ. Неиспользуемые записи удаляются
type keyedMutex struct {
	mtx   sync.Mutex
	locks map[int64]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*refMutex)}
}

// Lock Блокирует ключ и возвращает функцию разблокировки
func (k *keyedMutex) Lock(key int64) func() {
	k.mtx.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mtx.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mtx.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mtx.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mtx.Lock()
	defer k.mtx.Unlock()
	return len(k.locks)
}

package services

import "sync"

// WeekLocker serializes week-level batch operations (result processing,
// autopick passes) so no two run concurrently against the same week.
type WeekLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewWeekLocker creates a new week locker
func NewWeekLocker() *WeekLocker {
	return &WeekLocker{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for the week and returns its unlock function
func (l *WeekLocker) Lock(weekID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[weekID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[weekID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

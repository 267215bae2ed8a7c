package concurrency

import (
	"sync"
)

// LockManager handles named locks. Player-facing mutations lock on the
// player id so concurrent requests for the same player serialize.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// LockPair acquires the locks for two keys in a fixed global order
// (ascending key) so two concurrent opposite-direction transfers cannot
// deadlock. The returned function releases both locks.
func (lm *LockManager) LockPair(a, b string) func() {
	if a == b {
		mu := lm.GetLock(a)
		mu.Lock()
		return mu.Unlock
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	mu1 := lm.GetLock(first)
	mu2 := lm.GetLock(second)
	mu1.Lock()
	mu2.Lock()
	return func() {
		mu2.Unlock()
		mu1.Unlock()
	}
}

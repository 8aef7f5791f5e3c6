package server

import "sync"

// mutexedBool is a lock-protected boolean value.
type mutexedBool struct {
	m sync.RWMutex
	v bool
}

// Set sets the value for this instance.
func (b *mutexedBool) Set(v bool) {
	b.m.Lock()
	b.v = v
	b.m.Unlock()
}

// Get gets the value from this instance.
func (b *mutexedBool) Get() bool {
	b.m.RLock()
	defer b.m.RUnlock()
	return b.v
}

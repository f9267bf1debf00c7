package keylock

import "sync"

// KeyLock provides mutual exclusion per string key. Operations that
// read-modify-write the record behind a key hold that key's lock for the
// whole cycle; operations on different keys proceed in parallel.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates a new KeyLock
func New() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*entry),
	}
}

// Lock acquires the lock for key, blocking until it is available
func (k *KeyLock) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the lock for key. The entry is dropped once no goroutine
// holds or waits on it, so the map does not grow with the keyspace.
func (k *KeyLock) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keylock: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}

// WithLock runs fn while holding the lock for key
func (k *KeyLock) WithLock(key string, fn func() error) error {
	k.Lock(key)
	defer k.Unlock(key)
	return fn()
}

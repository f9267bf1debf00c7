package storage

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// Pool is a handle onto one logical table in the shared store. All keys
// pass through the pool prefix, keeping the table's keyspace disjoint from
// every other table's.
type Pool struct {
	prefix byte
	db     *leveldb.DB
}

// prefixKey prepends the namespace prefix onto the key
func (p *Pool) prefixKey(key string) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get reads the value stored under key. The second return is false when
// the key is absent; absence is not an error.
func (p *Pool) Get(key string) ([]byte, bool, error) {
	value, err := p.db.Get(p.prefixKey(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store get %q: %w", key, err)
	}
	return value, true, nil
}

// Has reports whether key exists in the pool
func (p *Pool) Has(key string) (bool, error) {
	ok, err := p.db.Has(p.prefixKey(key), nil)
	if err != nil {
		return false, fmt.Errorf("store has %q: %w", key, err)
	}
	return ok, nil
}

// Put stores value under key, overwriting any previous value
func (p *Pool) Put(key string, value []byte) error {
	if err := p.db.Put(p.prefixKey(key), value, nil); err != nil {
		return fmt.Errorf("store put %q: %w", key, err)
	}
	return nil
}

// Delete removes key from the pool. Deleting an absent key is not an error.
func (p *Pool) Delete(key string) error {
	if err := p.db.Delete(p.prefixKey(key), nil); err != nil {
		return fmt.Errorf("store delete %q: %w", key, err)
	}
	return nil
}

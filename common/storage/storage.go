package storage

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	ldbstorage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/provenio/registry/common/config"
	"github.com/provenio/registry/common/logger"
)

// Store wraps a single LevelDB database shared by all logical tables.
// Each table claims a distinct namespace prefix via Pool, so keys from
// different tables can never collide.
type Store struct {
	db  *leveldb.DB
	log *logger.Logger
}

// Open opens the durable store at the configured path, or an in-memory
// store when cfg.Store.InMemory is set
func Open(cfg *config.Config, log *logger.Logger) (*Store, error) {
	if cfg.Store.InMemory {
		return OpenMemory(log)
	}

	db, err := leveldb.OpenFile(cfg.Store.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", cfg.Store.Path, err)
	}

	log.Info("store opened", "path", cfg.Store.Path)

	return &Store{
		db:  db,
		log: log,
	}, nil
}

// OpenMemory opens a store backed by volatile memory. Contents are lost on
// Close; intended for tests.
func OpenMemory(log *logger.Logger) (*Store, error) {
	db, err := leveldb.Open(ldbstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}

	return &Store{
		db:  db,
		log: log,
	}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Pool returns a handle onto the logical table identified by prefix
func (s *Store) Pool(prefix byte) *Pool {
	return &Pool{
		prefix: prefix,
		db:     s.db,
	}
}

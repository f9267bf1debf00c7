package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/provenio/registry/common/keylock"
	"github.com/provenio/registry/common/storage"
)

// CreatorIndex owns the reverse mapping from creator ID to the ordered
// list of asset IDs that creator currently owns. Entries are mutated only
// by asset creation and FULL transfers.
//
// Index mutations are read-modify-write cycles over a single key, so the
// index serializes them per creator with its own key lock. Entries that
// become empty are written back as empty lists, not deleted; the read path
// treats a missing key and an empty list identically.
type CreatorIndex struct {
	pool  *storage.Pool
	locks *keylock.KeyLock
}

// NewCreatorIndex creates a new creator index
func NewCreatorIndex(store *storage.Store) *CreatorIndex {
	return &CreatorIndex{
		pool:  store.Pool(creatorIndexPrefix),
		locks: keylock.New(),
	}
}

// ListAssetIDs returns the ordered asset IDs owned by creatorID. An
// unknown creator yields an empty list, not an error.
func (r *CreatorIndex) ListAssetIDs(ctx context.Context, creatorID string) ([]string, error) {
	data, found, err := r.pool.Get(creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator index: %w", err)
	}
	if !found {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode creator index %s: %w", creatorID, err)
	}

	return ids, nil
}

// AddAsset appends assetID to the creator's entry if not already present
func (r *CreatorIndex) AddAsset(ctx context.Context, creatorID, assetID string) error {
	return r.locks.WithLock(creatorID, func() error {
		ids, err := r.ListAssetIDs(ctx, creatorID)
		if err != nil {
			return err
		}

		if slices.Contains(ids, assetID) {
			return nil
		}

		return r.write(creatorID, append(ids, assetID))
	})
}

// RemoveAsset removes assetID from the creator's entry if present
func (r *CreatorIndex) RemoveAsset(ctx context.Context, creatorID, assetID string) error {
	return r.locks.WithLock(creatorID, func() error {
		ids, err := r.ListAssetIDs(ctx, creatorID)
		if err != nil {
			return err
		}

		i := slices.Index(ids, assetID)
		if i < 0 {
			return nil
		}

		return r.write(creatorID, slices.Delete(ids, i, i+1))
	})
}

func (r *CreatorIndex) write(creatorID string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode creator index %s: %w", creatorID, err)
	}

	if err := r.pool.Put(creatorID, data); err != nil {
		return fmt.Errorf("failed to store creator index %s: %w", creatorID, err)
	}

	return nil
}

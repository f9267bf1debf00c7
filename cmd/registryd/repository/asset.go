package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/provenio/registry/cmd/registryd/models"
	"github.com/provenio/registry/common/storage"
)

// Namespace prefixes of the logical tables in the shared store
const (
	assetPrefix        = 'a'
	creatorIndexPrefix = 'c'
)

// Sentinel errors surfaced by the repositories
var (
	// ErrNotFound is returned when no asset exists at the requested ID
	ErrNotFound = errors.New("asset not found")

	// ErrDuplicateID is returned when Create hits an existing key. IDs are
	// generated UUIDs, so this indicates an internal invariant violation.
	ErrDuplicateID = errors.New("asset id already exists")
)

// AssetRepository owns the asset table: asset ID to asset record. It is
// the only writer of asset state.
type AssetRepository struct {
	pool *storage.Pool
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(store *storage.Store) *AssetRepository {
	return &AssetRepository{pool: store.Pool(assetPrefix)}
}

// Create inserts a new asset record keyed by asset.ID
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	exists, err := r.pool.Has(asset.ID)
	if err != nil {
		return fmt.Errorf("failed to check asset existence: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, asset.ID)
	}

	return r.write(asset)
}

// Get retrieves the asset stored under id
func (r *AssetRepository) Get(ctx context.Context, id string) (*models.Asset, error) {
	data, found, err := r.pool.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	asset := &models.Asset{}
	if err := json.Unmarshal(data, asset); err != nil {
		return nil, fmt.Errorf("failed to decode asset %s: %w", id, err)
	}

	return asset, nil
}

// Put overwrites the record at asset.ID with the full asset. Callers
// mutate a copy and write it back whole; the stored record is never
// partially updated in place.
func (r *AssetRepository) Put(ctx context.Context, asset *models.Asset) error {
	return r.write(asset)
}

func (r *AssetRepository) write(asset *models.Asset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("failed to encode asset %s: %w", asset.ID, err)
	}

	if err := r.pool.Put(asset.ID, data); err != nil {
		return fmt.Errorf("failed to store asset %s: %w", asset.ID, err)
	}

	return nil
}

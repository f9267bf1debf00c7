package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"

	"github.com/provenio/registry/cmd/registryd/models"
	"github.com/provenio/registry/cmd/registryd/repository"
	"github.com/provenio/registry/common/keylock"
	"github.com/provenio/registry/common/logger"
	"github.com/provenio/registry/common/ratelimit"
)

// Pagination bounds for GetAssetsByCreator. Non-positive page/limit values
// are clamped rather than rejected; limits above MaxPageLimit are capped.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// RegistryService implements the registry operations over the asset store
// and creator index. Every operation that reads-then-writes an asset holds
// that asset's key lock for the whole cycle, so concurrent mutations of
// the same asset serialize and the index stays consistent with the store.
type RegistryService struct {
	assets  *repository.AssetRepository
	index   *repository.CreatorIndex
	limiter ratelimit.Limiter
	events  EventPublisher
	filter  *Filter
	locks   *keylock.KeyLock
	log     *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewRegistryService creates a new registry service
func NewRegistryService(
	assets *repository.AssetRepository,
	index *repository.CreatorIndex,
	limiter ratelimit.Limiter,
	events EventPublisher,
	log *logger.Logger,
) *RegistryService {
	return &RegistryService{
		assets:  assets,
		index:   index,
		limiter: limiter,
		events:  events,
		filter:  NewFilter(),
		locks:   keylock.New(),
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// SetClock replaces the service's time source (tests)
func (s *RegistryService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateAsset registers a new asset owned by the requesting creator
func (s *RegistryService) CreateAsset(ctx context.Context, req *models.CreateAssetRequest) (*models.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidInput("%s", err.Error())
	}

	if result, err := s.limiter.Allow(ctx, req.CreatorID); err != nil {
		// Throttling is advisory; a broken limiter must not block writes
		s.log.Warn("rate limit check failed, admitting request", "creator_id", req.CreatorID, "error", err)
	} else if !result.Allowed {
		return nil, rateLimited(result.RetryAfterSeconds)
	}

	now := s.now()
	asset := &models.Asset{
		ID:               s.newID(),
		Title:            req.Title,
		Description:      req.Description,
		AssetType:        req.AssetType,
		CreatorID:        req.CreatorID,
		ContentHash:      req.ContentHash,
		RegistrationDate: now,
		LastModified:     now,
		TransferHistory:  []models.Transfer{},
		Status:           models.StatusActive,
		Metadata:         *req.Metadata,
	}

	if err := s.assets.Create(ctx, asset); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, duplicateID(asset.ID)
		}
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	if err := s.index.AddAsset(ctx, asset.CreatorID, asset.ID); err != nil {
		return nil, fmt.Errorf("failed to index asset: %w", err)
	}

	s.log.Info("created asset",
		"asset_id", asset.ID,
		"creator_id", asset.CreatorID,
		"asset_type", asset.AssetType,
	)

	s.events.Publish(ctx, &Event{
		Event:     EventAssetCreated,
		AssetID:   asset.ID,
		CreatorID: asset.CreatorID,
		At:        now,
	})

	return asset, nil
}

// GetAssetByID retrieves an asset. Reads require no authorization.
func (s *RegistryService) GetAssetByID(ctx context.Context, id string) (*models.Asset, error) {
	asset, err := s.assets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("asset not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

// GetAssetsByCreator returns one page of the creator's assets in index
// order. Total counts the creator's full holdings before pagination and
// filtering. An unknown creator yields an empty page, not an error.
// filterExpr, when non-empty, is a CEL expression pruning the returned
// page (see Filter).
func (s *RegistryService) GetAssetsByCreator(ctx context.Context, creatorID string, page, limit int, filterExpr string) (*models.AssetPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	ids, err := s.index.ListAssetIDs(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list creator assets: %w", err)
	}

	total := len(ids)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	assets := make([]*models.Asset, 0, end-start)
	for _, id := range ids[start:end] {
		asset, err := s.assets.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Index/store divergence must not happen (the index is
				// updated under the asset's key lock), but a dangling ID
				// is dropped rather than failing the whole read
				s.log.Warn("indexed asset missing from store", "asset_id", id, "creator_id", creatorID)
				continue
			}
			return nil, fmt.Errorf("failed to resolve asset %s: %w", id, err)
		}

		if filterExpr != "" {
			match, err := s.filter.Match(filterExpr, asset)
			if err != nil {
				return nil, invalidInput("invalid filter: %s", err.Error())
			}
			if !match {
				continue
			}
		}

		assets = append(assets, asset)
	}

	return &models.AssetPage{
		Assets: assets,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

// TransferAsset records a transfer on an ACTIVE asset. A FULL transfer
// moves ownership and reindexes the asset; a LICENSE transfer only appends
// to the audit trail.
func (s *RegistryService) TransferAsset(ctx context.Context, assetID string, req *models.TransferAssetRequest) (*models.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidInput("%s", err.Error())
	}

	var updated *models.Asset
	var transfer models.Transfer

	err := s.locks.WithLock(assetID, func() error {
		asset, err := s.getForUpdate(ctx, assetID, req.FromID)
		if err != nil {
			return err
		}

		if asset.Status != models.StatusActive {
			return invalidState("asset %s is not available for transfer", assetID)
		}

		now := s.now()
		transfer = models.Transfer{
			ID:           s.newID(),
			FromID:       asset.CreatorID,
			ToID:         req.ToID,
			TransferDate: now,
			TransferType: req.TransferType,
		}

		asset.TransferHistory = append(asset.TransferHistory, transfer)
		asset.LastModified = now

		if req.TransferType == models.TransferFull {
			oldCreator := asset.CreatorID
			asset.Status = models.StatusTransferred
			asset.CreatorID = req.ToID

			// Write order: new index entry, asset, old index entry. A
			// reader racing this sequence may see the asset under both
			// creators briefly, never under neither.
			if err := s.index.AddAsset(ctx, req.ToID, asset.ID); err != nil {
				return fmt.Errorf("failed to index asset for new creator: %w", err)
			}
			if err := s.assets.Put(ctx, asset); err != nil {
				return fmt.Errorf("failed to store transferred asset: %w", err)
			}
			if err := s.index.RemoveAsset(ctx, oldCreator, asset.ID); err != nil {
				return fmt.Errorf("failed to deindex asset from old creator: %w", err)
			}
		} else {
			if err := s.assets.Put(ctx, asset); err != nil {
				return fmt.Errorf("failed to store licensed asset: %w", err)
			}
		}

		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("transferred asset",
		"asset_id", assetID,
		"from_id", transfer.FromID,
		"to_id", transfer.ToID,
		"transfer_type", transfer.TransferType,
	)

	eventName := EventAssetLicensed
	if req.TransferType == models.TransferFull {
		eventName = EventAssetTransferred
	}
	s.events.Publish(ctx, &Event{
		Event:      eventName,
		AssetID:    assetID,
		CreatorID:  transfer.FromID,
		At:         transfer.TransferDate,
		TransferID: transfer.ID,
		ToID:       transfer.ToID,
	})

	return updated, nil
}

// UpdateAssetMetadata merges the supplied metadata fields over the stored
// metadata. Supplied fields overwrite, omitted fields are retained. No
// status restriction: non-ACTIVE assets accept metadata updates.
func (s *RegistryService) UpdateAssetMetadata(ctx context.Context, assetID, actorID string, update *models.MetadataUpdate) (*models.Asset, error) {
	if update == nil {
		return nil, invalidInput("metadata is required")
	}

	var updated *models.Asset

	err := s.locks.WithLock(assetID, func() error {
		asset, err := s.getForUpdate(ctx, assetID, actorID)
		if err != nil {
			return err
		}

		merged, err := mergeMetadata(&asset.Metadata, update)
		if err != nil {
			return err
		}

		asset.Metadata = *merged
		asset.LastModified = s.now()

		if err := s.assets.Put(ctx, asset); err != nil {
			return fmt.Errorf("failed to store updated asset: %w", err)
		}

		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("updated asset metadata", "asset_id", assetID, "creator_id", actorID)

	s.events.Publish(ctx, &Event{
		Event:     EventAssetMetadataUpdated,
		AssetID:   assetID,
		CreatorID: updated.CreatorID,
		At:        updated.LastModified,
	})

	return updated, nil
}

// RevokeAsset marks an asset REVOKED. Revoking an already-revoked asset
// fails; the transfer history and creator index are untouched.
func (s *RegistryService) RevokeAsset(ctx context.Context, assetID, actorID string) (*models.Asset, error) {
	var updated *models.Asset

	err := s.locks.WithLock(assetID, func() error {
		asset, err := s.getForUpdate(ctx, assetID, actorID)
		if err != nil {
			return err
		}

		if asset.Status == models.StatusRevoked {
			return invalidState("asset %s is already revoked", assetID)
		}

		asset.Status = models.StatusRevoked
		asset.LastModified = s.now()

		if err := s.assets.Put(ctx, asset); err != nil {
			return fmt.Errorf("failed to store revoked asset: %w", err)
		}

		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("revoked asset", "asset_id", assetID, "creator_id", actorID)

	s.events.Publish(ctx, &Event{
		Event:     EventAssetRevoked,
		AssetID:   assetID,
		CreatorID: updated.CreatorID,
		At:        updated.LastModified,
	})

	return updated, nil
}

// DeleteAsset marks an asset DELETED. The record stays in the store for
// historical lookups by ID. Deleting an already-deleted asset succeeds;
// delete carries no status guard, unlike revoke.
func (s *RegistryService) DeleteAsset(ctx context.Context, assetID, actorID string) error {
	var deleted *models.Asset

	err := s.locks.WithLock(assetID, func() error {
		asset, err := s.getForUpdate(ctx, assetID, actorID)
		if err != nil {
			return err
		}

		asset.Status = models.StatusDeleted
		asset.LastModified = s.now()

		if err := s.assets.Put(ctx, asset); err != nil {
			return fmt.Errorf("failed to store deleted asset: %w", err)
		}

		deleted = asset
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("deleted asset", "asset_id", assetID, "creator_id", actorID)

	s.events.Publish(ctx, &Event{
		Event:     EventAssetDeleted,
		AssetID:   assetID,
		CreatorID: deleted.CreatorID,
		At:        deleted.LastModified,
	})

	return nil
}

// getForUpdate resolves the asset and checks the actor owns it. Must be
// called with the asset's key lock held.
func (s *RegistryService) getForUpdate(ctx context.Context, assetID, actorID string) (*models.Asset, error) {
	asset, err := s.assets.Get(ctx, assetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("asset not found: %s", assetID)
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	if asset.CreatorID != actorID {
		return nil, unauthorized("actor %s is not the owner of asset %s", actorID, assetID)
	}

	return asset, nil
}

// mergeMetadata applies update over current as an RFC 7386 merge patch:
// the update marshals with omitempty, so only supplied fields appear in
// the patch and everything else is retained.
func mergeMetadata(current *models.Metadata, update *models.MetadataUpdate) (*models.Metadata, error) {
	original, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	patch, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata update: %w", err)
	}

	mergedJSON, err := jsonpatch.MergePatch(original, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to merge metadata: %w", err)
	}

	merged := &models.Metadata{}
	if err := json.Unmarshal(mergedJSON, merged); err != nil {
		return nil, fmt.Errorf("failed to decode merged metadata: %w", err)
	}

	return merged, nil
}

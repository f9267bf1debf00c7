package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenio/registry/cmd/registryd/models"
	"github.com/provenio/registry/cmd/registryd/repository"
	"github.com/provenio/registry/common/logger"
	"github.com/provenio/registry/common/ratelimit"
	"github.com/provenio/registry/common/storage"
)

const (
	creatorU1 = "11111111-1111-4111-8111-111111111111"
	creatorU2 = "22222222-2222-4222-8222-222222222222"
	creatorU3 = "33333333-3333-4333-8333-333333333333"
)

var zeroHash = strings.Repeat("0", 64)

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	events []*Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event *Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.events))
	for i, e := range p.events {
		names[i] = e.Event
	}
	return names
}

type testEnv struct {
	svc    *RegistryService
	assets *repository.AssetRepository
	index  *repository.CreatorIndex
	events *recordingPublisher
}

func newTestEnv(t *testing.T, limiter ratelimit.Limiter) *testEnv {
	t.Helper()

	store, err := storage.OpenMemory(logger.New("error", "text"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if limiter == nil {
		limiter = ratelimit.NewMemoryLimiter(1000, time.Minute)
	}

	assets := repository.NewAssetRepository(store)
	index := repository.NewCreatorIndex(store)
	events := &recordingPublisher{}
	svc := NewRegistryService(assets, index, limiter, events, logger.New("error", "text"))

	return &testEnv{svc: svc, assets: assets, index: index, events: events}
}

func createRequest(creatorID string) *models.CreateAssetRequest {
	return &models.CreateAssetRequest{
		Title:       "Mona Lisa Digital",
		Description: "a study in pigment",
		AssetType:   models.AssetTypeImage,
		CreatorID:   creatorID,
		ContentHash: zeroHash,
		Metadata: &models.Metadata{
			FileFormat:     "png",
			FileSize:       2048,
			AdditionalTags: []string{"art"},
		},
	}
}

func mustCreate(t *testing.T, env *testEnv, creatorID string) *models.Asset {
	t.Helper()
	asset, err := env.svc.CreateAsset(context.Background(), createRequest(creatorID))
	require.NoError(t, err)
	return asset
}

// requireIndexed asserts the asset appears in exactly the given creator's
// index entry among the known test creators
func requireIndexed(t *testing.T, env *testEnv, assetID, owner string) {
	t.Helper()
	ctx := context.Background()
	for _, creator := range []string{creatorU1, creatorU2, creatorU3} {
		ids, err := env.index.ListAssetIDs(ctx, creator)
		require.NoError(t, err)
		if creator == owner {
			assert.Contains(t, ids, assetID, "asset missing from owner %s index", creator)
		} else {
			assert.NotContains(t, ids, assetID, "asset leaked into %s index", creator)
		}
	}
}

func TestCreateAsset(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	env.svc.SetClock(func() time.Time { return now })

	asset, err := env.svc.CreateAsset(ctx, createRequest(creatorU1))
	require.NoError(t, err)

	assert.NotEmpty(t, asset.ID)
	assert.Equal(t, models.StatusActive, asset.Status)
	assert.Equal(t, creatorU1, asset.CreatorID)
	assert.Equal(t, zeroHash, asset.ContentHash)
	assert.Empty(t, asset.TransferHistory)
	assert.Equal(t, now, asset.RegistrationDate)
	assert.Equal(t, now, asset.LastModified)

	// Round-trips through the store
	stored, err := env.svc.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset, stored)

	requireIndexed(t, env, asset.ID, creatorU1)
	assert.Equal(t, []string{EventAssetCreated}, env.events.names())
}

func TestCreateAssetInvalidInput(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	req := createRequest(creatorU1)
	req.ContentHash = "short"

	_, err := env.svc.CreateAsset(ctx, req)
	require.Error(t, err)

	regErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidInput, regErr.Code)

	ids, err := env.index.ListAssetIDs(ctx, creatorU1)
	require.NoError(t, err)
	assert.Empty(t, ids, "failed create must not touch the index")
}

func TestCreateAssetRateLimited(t *testing.T) {
	env := newTestEnv(t, ratelimit.NewMemoryLimiter(2, time.Minute))
	ctx := context.Background()

	mustCreate(t, env, creatorU1)
	mustCreate(t, env, creatorU1)

	_, err := env.svc.CreateAsset(ctx, createRequest(creatorU1))
	require.Error(t, err)

	regErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeRateLimited, regErr.Code)
	assert.Greater(t, regErr.RetryAfterSeconds, int64(0))

	// Another creator is unaffected
	mustCreate(t, env, creatorU2)
}

func TestFullTransfer(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	updated, err := env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
		FromID:       creatorU1,
		ToID:         creatorU2,
		TransferType: models.TransferFull,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusTransferred, updated.Status)
	assert.Equal(t, creatorU2, updated.CreatorID)
	require.Len(t, updated.TransferHistory, 1)

	transfer := updated.TransferHistory[0]
	assert.Equal(t, creatorU1, transfer.FromID)
	assert.Equal(t, creatorU2, transfer.ToID)
	assert.Equal(t, models.TransferFull, transfer.TransferType)
	assert.NotEmpty(t, transfer.ID)

	requireIndexed(t, env, asset.ID, creatorU2)
	assert.Contains(t, env.events.names(), EventAssetTransferred)
}

func TestLicenseTransfer(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	updated, err := env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
		FromID:       creatorU1,
		ToID:         creatorU2,
		TransferType: models.TransferLicense,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusActive, updated.Status)
	assert.Equal(t, creatorU1, updated.CreatorID)
	require.Len(t, updated.TransferHistory, 1)
	assert.Equal(t, models.TransferLicense, updated.TransferHistory[0].TransferType)

	// Ownership and index unchanged
	requireIndexed(t, env, asset.ID, creatorU1)
	assert.Contains(t, env.events.names(), EventAssetLicensed)

	// A licensed asset can still be licensed again
	again, err := env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
		FromID:       creatorU1,
		ToID:         creatorU3,
		TransferType: models.TransferLicense,
	})
	require.NoError(t, err)
	assert.Len(t, again.TransferHistory, 2)
}

func TestTransferredAssetCannotBeTransferredAgain(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	_, err := env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
		FromID:       creatorU1,
		ToID:         creatorU2,
		TransferType: models.TransferFull,
	})
	require.NoError(t, err)

	// New owner attempts another transfer on the TRANSFERRED asset
	_, err = env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
		FromID:       creatorU2,
		ToID:         creatorU3,
		TransferType: models.TransferFull,
	})
	require.Error(t, err)

	regErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidState, regErr.Code)

	stored, err := env.svc.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Len(t, stored.TransferHistory, 1, "failed transfer must not grow history")
	assert.Equal(t, creatorU2, stored.CreatorID)
}

func TestTransferUnauthorizedLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	_, err := env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
		FromID:       creatorU3, // not the owner
		ToID:         creatorU2,
		TransferType: models.TransferFull,
	})
	require.Error(t, err)

	regErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnauthorized, regErr.Code)

	stored, err := env.svc.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, stored.Status)
	assert.Equal(t, creatorU1, stored.CreatorID)
	assert.Empty(t, stored.TransferHistory)
	requireIndexed(t, env, asset.ID, creatorU1)
}

func TestTransferMissingAsset(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.svc.TransferAsset(context.Background(), "no-such-asset", &models.TransferAssetRequest{
		FromID:       creatorU1,
		ToID:         creatorU2,
		TransferType: models.TransferFull,
	})
	require.Error(t, err)

	regErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, regErr.Code)
}

func TestConcurrentFullTransfersSerialize(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	recipients := []string{creatorU2, creatorU3}
	const attempts = 16

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
				FromID:       creatorU1,
				ToID:         recipients[i%len(recipients)],
				TransferType: models.TransferFull,
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one concurrent transfer may win")

	stored, err := env.svc.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Len(t, stored.TransferHistory, 1)
	assert.Equal(t, models.StatusTransferred, stored.Status)
	requireIndexed(t, env, asset.ID, stored.CreatorID)
}

func TestUpdateAssetMetadataMerge(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	format := "tiff"
	tags := []string{"remastered", "archive"}
	updated, err := env.svc.UpdateAssetMetadata(ctx, asset.ID, creatorU1, &models.MetadataUpdate{
		FileFormat:     &format,
		AdditionalTags: &tags,
	})
	require.NoError(t, err)

	assert.Equal(t, "tiff", updated.Metadata.FileFormat)
	assert.Equal(t, int64(2048), updated.Metadata.FileSize, "omitted field retained")
	assert.Equal(t, []string{"remastered", "archive"}, updated.Metadata.AdditionalTags)

	// Dimensions replace wholesale when supplied
	updated, err = env.svc.UpdateAssetMetadata(ctx, asset.ID, creatorU1, &models.MetadataUpdate{
		Dimensions: &models.Dimensions{Width: 800, Height: 600},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Metadata.Dimensions)
	assert.Equal(t, 800, updated.Metadata.Dimensions.Width)
	assert.Equal(t, "tiff", updated.Metadata.FileFormat, "earlier update retained")
}

func TestUpdateAssetMetadataClearsTags(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)
	require.Equal(t, []string{"art"}, asset.Metadata.AdditionalTags)

	// An explicit empty array, as the API receives it, wipes the tags
	update := &models.MetadataUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"additional_tags": []}`), update))
	require.NotNil(t, update.AdditionalTags)

	updated, err := env.svc.UpdateAssetMetadata(ctx, asset.ID, creatorU1, update)
	require.NoError(t, err)
	assert.Empty(t, updated.Metadata.AdditionalTags)
	assert.Equal(t, "png", updated.Metadata.FileFormat, "omitted fields retained")

	stored, err := env.svc.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Metadata.AdditionalTags)
}

func TestUpdateAssetMetadataAllowedOnRevokedAsset(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)
	_, err := env.svc.RevokeAsset(ctx, asset.ID, creatorU1)
	require.NoError(t, err)

	size := int64(4096)
	updated, err := env.svc.UpdateAssetMetadata(ctx, asset.ID, creatorU1, &models.MetadataUpdate{
		FileSize: &size,
	})
	require.NoError(t, err, "metadata updates carry no status guard")
	assert.Equal(t, int64(4096), updated.Metadata.FileSize)
	assert.Equal(t, models.StatusRevoked, updated.Status)
}

func TestUpdateAssetMetadataUnauthorized(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	format := "bmp"
	_, err := env.svc.UpdateAssetMetadata(ctx, asset.ID, creatorU2, &models.MetadataUpdate{
		FileFormat: &format,
	})
	require.Error(t, err)

	regErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnauthorized, regErr.Code)

	stored, err := env.svc.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "png", stored.Metadata.FileFormat)
}

func TestRevokeAssetTwice(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	updated, err := env.svc.RevokeAsset(ctx, asset.ID, creatorU1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRevoked, updated.Status)

	_, err = env.svc.RevokeAsset(ctx, asset.ID, creatorU1)
	require.Error(t, err)

	regErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidState, regErr.Code)
}

func TestRevokedAssetCanBeDeleted(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)
	_, err := env.svc.RevokeAsset(ctx, asset.ID, creatorU1)
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteAsset(ctx, asset.ID, creatorU1))

	stored, err := env.svc.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, stored.Status)
}

func TestDeleteAssetIsIdempotent(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	require.NoError(t, env.svc.DeleteAsset(ctx, asset.ID, creatorU1))
	require.NoError(t, env.svc.DeleteAsset(ctx, asset.ID, creatorU1), "no already-deleted guard")

	// Record survives for historical lookup
	stored, err := env.svc.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, stored.Status)
}

func TestDeleteAssetUnauthorized(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	err := env.svc.DeleteAsset(ctx, asset.ID, creatorU2)
	require.Error(t, err)

	regErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnauthorized, regErr.Code)
}

func TestGetAssetsByCreatorPagination(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	created := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		asset := mustCreate(t, env, creatorU1)
		created = append(created, asset.ID)
	}

	page, err := env.svc.GetAssetsByCreator(ctx, creatorU1, 1, 10, "")
	require.NoError(t, err)
	assert.Len(t, page.Assets, 10)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)

	page, err = env.svc.GetAssetsByCreator(ctx, creatorU1, 2, 10, "")
	require.NoError(t, err)
	assert.Len(t, page.Assets, 5)
	assert.Equal(t, 15, page.Total)

	// Page order follows index (registration) order
	gotIDs := make([]string, 0, 5)
	for _, a := range page.Assets {
		gotIDs = append(gotIDs, a.ID)
	}
	assert.Equal(t, created[10:], gotIDs)

	// Past the end
	page, err = env.svc.GetAssetsByCreator(ctx, creatorU1, 3, 10, "")
	require.NoError(t, err)
	assert.Empty(t, page.Assets)
	assert.Equal(t, 15, page.Total)
}

func TestGetAssetsByCreatorClampsBounds(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	mustCreate(t, env, creatorU1)

	page, err := env.svc.GetAssetsByCreator(ctx, creatorU1, 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageLimit, page.Limit)
	assert.Len(t, page.Assets, 1)

	page, err = env.svc.GetAssetsByCreator(ctx, creatorU1, -3, 5000, "")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, MaxPageLimit, page.Limit)
}

func TestGetAssetsByCreatorUnknownCreator(t *testing.T) {
	env := newTestEnv(t, nil)

	page, err := env.svc.GetAssetsByCreator(context.Background(), creatorU3, 1, 10, "")
	require.NoError(t, err)
	assert.Empty(t, page.Assets)
	assert.Equal(t, 0, page.Total)
}

func TestGetAssetsByCreatorFilter(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	active := mustCreate(t, env, creatorU1)
	revoked := mustCreate(t, env, creatorU1)
	_, err := env.svc.RevokeAsset(ctx, revoked.ID, creatorU1)
	require.NoError(t, err)

	page, err := env.svc.GetAssetsByCreator(ctx, creatorU1, 1, 10, `asset.status == "ACTIVE"`)
	require.NoError(t, err)
	require.Len(t, page.Assets, 1)
	assert.Equal(t, active.ID, page.Assets[0].ID)
	assert.Equal(t, 2, page.Total, "total counts holdings before filtering")

	_, err = env.svc.GetAssetsByCreator(ctx, creatorU1, 1, 10, `asset.status ==`)
	require.Error(t, err)
	regErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidInput, regErr.Code)
}

func TestTransferHistoryIsAppendOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	var first models.Transfer
	for i := 0; i < 3; i++ {
		updated, err := env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
			FromID:       creatorU1,
			ToID:         creatorU2,
			TransferType: models.TransferLicense,
		})
		require.NoError(t, err)
		require.Len(t, updated.TransferHistory, i+1)

		if i == 0 {
			first = updated.TransferHistory[0]
		} else {
			assert.Equal(t, first, updated.TransferHistory[0], "appended transfers never change")
		}
	}
}

func TestGetAssetsByCreatorSkipsDanglingIndexEntries(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	// Force index/store divergence, which I1 forbids but reads tolerate
	require.NoError(t, env.index.AddAsset(ctx, creatorU1, "dangling-id"))

	page, err := env.svc.GetAssetsByCreator(ctx, creatorU1, 1, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Assets, 1)
	assert.Equal(t, asset.ID, page.Assets[0].ID)
	assert.Equal(t, 2, page.Total)
}

func TestOperationTimestamps(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	env.svc.SetClock(func() time.Time { return created })
	asset := mustCreate(t, env, creatorU1)

	later := created.Add(2 * time.Hour)
	env.svc.SetClock(func() time.Time { return later })

	updated, err := env.svc.RevokeAsset(ctx, asset.ID, creatorU1)
	require.NoError(t, err)
	assert.Equal(t, created, updated.RegistrationDate, "registration date immutable")
	assert.Equal(t, later, updated.LastModified)
}

func TestEventStream(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	_, err := env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
		FromID:       creatorU1,
		ToID:         creatorU2,
		TransferType: models.TransferFull,
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.DeleteAsset(ctx, asset.ID, creatorU2))

	names := env.events.names()
	assert.Equal(t, []string{EventAssetCreated, EventAssetTransferred, EventAssetDeleted}, names)

	transferEvent := env.events.events[1]
	assert.Equal(t, asset.ID, transferEvent.AssetID)
	assert.Equal(t, creatorU1, transferEvent.CreatorID)
	assert.Equal(t, creatorU2, transferEvent.ToID)
	assert.NotEmpty(t, transferEvent.TransferID)
}

func TestConcurrentMixedMutationsKeepHistoryMonotone(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	asset := mustCreate(t, env, creatorU1)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			switch i % 2 {
			case 0:
				env.svc.TransferAsset(ctx, asset.ID, &models.TransferAssetRequest{
					FromID:       creatorU1,
					ToID:         creatorU2,
					TransferType: models.TransferLicense,
				})
			case 1:
				size := int64(i)
				env.svc.UpdateAssetMetadata(ctx, asset.ID, creatorU1, &models.MetadataUpdate{
					FileSize: &size,
				})
			}
		}(i)
	}
	wg.Wait()

	stored, err := env.svc.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Len(t, stored.TransferHistory, workers/2, "every license transfer recorded exactly once")

	seen := map[string]bool{}
	for _, tr := range stored.TransferHistory {
		assert.False(t, seen[tr.ID], "duplicate transfer id %s", tr.ID)
		seen[tr.ID] = true
	}
}

func TestManyCreatorsStayIsolated(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreate(t, env, creatorU1)
	}
	for i := 0; i < 3; i++ {
		mustCreate(t, env, creatorU2)
	}

	page1, err := env.svc.GetAssetsByCreator(ctx, creatorU1, 1, 100, "")
	require.NoError(t, err)
	page2, err := env.svc.GetAssetsByCreator(ctx, creatorU2, 1, 100, "")
	require.NoError(t, err)

	assert.Equal(t, 5, page1.Total)
	assert.Equal(t, 3, page2.Total)

	for _, a := range page1.Assets {
		assert.Equal(t, creatorU1, a.CreatorID)
	}
	for _, a := range page2.Assets {
		assert.Equal(t, creatorU2, a.CreatorID)
	}
}

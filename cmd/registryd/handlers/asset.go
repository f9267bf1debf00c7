package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/provenio/registry/cmd/registryd/middleware"
	"github.com/provenio/registry/cmd/registryd/models"
	"github.com/provenio/registry/cmd/registryd/service"
	"github.com/provenio/registry/common/logger"
)

// AssetHandler handles asset-related requests
type AssetHandler struct {
	registry *service.RegistryService
	log      *logger.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(registry *service.RegistryService, log *logger.Logger) *AssetHandler {
	return &AssetHandler{
		registry: registry,
		log:      log,
	}
}

// CreateAsset registers a new asset
// POST /api/v1/assets
func (h *AssetHandler) CreateAsset(c echo.Context) error {
	req := &models.CreateAssetRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"code":  service.CodeInvalidInput,
			"error": "malformed request body",
		})
	}

	asset, err := h.registry.CreateAsset(c.Request().Context(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, asset)
}

// GetAsset retrieves an asset by ID (public read)
// GET /api/v1/assets/:id
func (h *AssetHandler) GetAsset(c echo.Context) error {
	asset, err := h.registry.GetAssetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, asset)
}

// ListAssets lists a creator's assets with pagination and optional filter
// GET /api/v1/assets?creator_id=...&page=1&limit=20&filter=...
func (h *AssetHandler) ListAssets(c echo.Context) error {
	creatorID := c.QueryParam("creator_id")
	if creatorID == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"code":  service.CodeInvalidInput,
			"error": "creator_id query parameter is required",
		})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.registry.GetAssetsByCreator(
		c.Request().Context(),
		creatorID,
		page,
		limit,
		c.QueryParam("filter"),
	)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// TransferAsset records a FULL or LICENSE transfer
// POST /api/v1/assets/:id/transfer
func (h *AssetHandler) TransferAsset(c echo.Context) error {
	req := &models.TransferAssetRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"code":  service.CodeInvalidInput,
			"error": "malformed request body",
		})
	}

	asset, err := h.registry.TransferAsset(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, asset)
}

// UpdateMetadata merges supplied metadata fields into the asset
// PATCH /api/v1/assets/:id/metadata
func (h *AssetHandler) UpdateMetadata(c echo.Context) error {
	update := &models.MetadataUpdate{}
	if err := c.Bind(update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"code":  service.CodeInvalidInput,
			"error": "malformed request body",
		})
	}

	asset, err := h.registry.UpdateAssetMetadata(
		c.Request().Context(),
		c.Param("id"),
		middleware.GetActor(c),
		update,
	)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, asset)
}

// RevokeAsset marks an asset revoked
// POST /api/v1/assets/:id/revoke
func (h *AssetHandler) RevokeAsset(c echo.Context) error {
	asset, err := h.registry.RevokeAsset(c.Request().Context(), c.Param("id"), middleware.GetActor(c))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, asset)
}

// DeleteAsset soft-deletes an asset
// DELETE /api/v1/assets/:id
func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	assetID := c.Param("id")

	if err := h.registry.DeleteAsset(c.Request().Context(), assetID, middleware.GetActor(c)); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "asset deleted",
		"asset_id": assetID,
	})
}

// respondError maps a registry error to its HTTP status. Unclassified
// errors are logged and surfaced as a generic server fault.
func (h *AssetHandler) respondError(c echo.Context, err error) error {
	regErr, ok := service.AsError(err)
	if !ok {
		h.log.Error("internal error", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"code":  "INTERNAL",
			"error": "internal server error",
		})
	}

	status := statusForCode(regErr.Code)
	if regErr.Code == service.CodeRateLimited && regErr.RetryAfterSeconds > 0 {
		c.Response().Header().Set("Retry-After", strconv.FormatInt(regErr.RetryAfterSeconds, 10))
	}
	if regErr.Code == service.CodeDuplicateID {
		// Should be unreachable: generated IDs are unique
		h.log.Error("duplicate asset id", "path", c.Path(), "error", err)
	}

	return c.JSON(status, map[string]interface{}{
		"code":  regErr.Code,
		"error": regErr.Message,
	})
}

func statusForCode(code service.ErrorCode) int {
	switch code {
	case service.CodeInvalidInput, service.CodeInvalidState:
		return http.StatusBadRequest
	case service.CodeUnauthorized:
		return http.StatusForbidden
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

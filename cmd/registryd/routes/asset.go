package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/provenio/registry/cmd/registryd/container"
	"github.com/provenio/registry/cmd/registryd/handlers"
	"github.com/provenio/registry/cmd/registryd/middleware"
)

// RegisterAssetRoutes registers all asset-related routes
func RegisterAssetRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewAssetHandler(c.RegistryService, c.Components.Logger)

	// Actor identity rides on every request; only the owner-scoped
	// mutations below reject when it is absent
	assets := e.Group("/api/v1/assets", middleware.ExtractActor())
	{
		// Public reads
		assets.GET("/:id", h.GetAsset) // GET /api/v1/assets/:id
		assets.GET("", h.ListAssets)   // GET /api/v1/assets?creator_id=...
		assets.POST("", h.CreateAsset) // POST /api/v1/assets

		// Transfer authorization uses from_id from the request body
		assets.POST("/:id/transfer", h.TransferAsset) // POST /api/v1/assets/:id/transfer

		// Owner-only mutations; actor identity comes from X-Actor-ID
		owned := assets.Group("", middleware.RequireActor())
		owned.PATCH("/:id/metadata", h.UpdateMetadata) // PATCH /api/v1/assets/:id/metadata
		owned.POST("/:id/revoke", h.RevokeAsset)       // POST /api/v1/assets/:id/revoke
		owned.DELETE("/:id", h.DeleteAsset)            // DELETE /api/v1/assets/:id
	}
}

package container

import (
	"github.com/redis/go-redis/v9"

	"github.com/provenio/registry/cmd/registryd/repository"
	"github.com/provenio/registry/cmd/registryd/service"
	"github.com/provenio/registry/common/bootstrap"
	"github.com/provenio/registry/common/ratelimit"
	rediscommon "github.com/provenio/registry/common/redis"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components *bootstrap.Components
	Redis      *rediscommon.Client // nil when Redis is disabled

	// Repositories
	AssetRepo    *repository.AssetRepository
	CreatorIndex *repository.CreatorIndex

	// Services
	RegistryService *service.RegistryService
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	cfg := components.Config
	log := components.Logger

	var redisClient *rediscommon.Client
	if cfg.Redis.Enabled {
		raw := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisClient = rediscommon.NewClient(raw, log)
	}

	// Initialize repositories
	assetRepo := repository.NewAssetRepository(components.Store)
	creatorIndex := repository.NewCreatorIndex(components.Store)

	// Initialize services (bottom-up: dependencies first)
	limiter := buildLimiter(components, redisClient)
	events := buildEventPublisher(components, redisClient)

	registryService := service.NewRegistryService(
		assetRepo,
		creatorIndex,
		limiter,
		events,
		log,
	)

	return &Container{
		Components:      components,
		Redis:           redisClient,
		AssetRepo:       assetRepo,
		CreatorIndex:    creatorIndex,
		RegistryService: registryService,
	}, nil
}

// buildLimiter selects the rate limit backend configured for this deployment.
func buildLimiter(components *bootstrap.Components, redisClient *rediscommon.Client) ratelimit.Limiter {
	cfg := components.Config.RateLimit

	if components.Config.Redis.Enabled && cfg.Backend == "redis" {
		return ratelimit.NewRedisLimiter(
			redisClient.GetUnderlying(),
			cfg.Limit,
			cfg.Window,
			components.Logger,
		)
	}

	return ratelimit.NewMemoryLimiter(cfg.Limit, cfg.Window)
}

// buildEventPublisher wires the Redis event stream when available.
// Without Redis the registry still works, it just emits no events.
func buildEventPublisher(components *bootstrap.Components, redisClient *rediscommon.Client) service.EventPublisher {
	if redisClient == nil {
		components.Logger.Warn("redis disabled, asset events will not be published")
		return service.NopEventPublisher{}
	}
	return service.NewRedisEventPublisher(redisClient, components.Logger)
}

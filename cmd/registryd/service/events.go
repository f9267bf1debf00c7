package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	rediscommon "github.com/provenio/registry/common/redis"
)

// Event names published on the registry event stream
const (
	EventAssetCreated         = "asset.created"
	EventAssetTransferred     = "asset.transferred"
	EventAssetLicensed        = "asset.licensed"
	EventAssetMetadataUpdated = "asset.metadata_updated"
	EventAssetRevoked         = "asset.revoked"
	EventAssetDeleted         = "asset.deleted"
)

// Event is one registry event, published to the creator's channel after a
// successful mutating operation
type Event struct {
	Event      string    `json:"event"`
	AssetID    string    `json:"asset_id"`
	CreatorID  string    `json:"creator_id"`
	At         time.Time `json:"at"`
	TransferID string    `json:"transfer_id,omitempty"`
	ToID       string    `json:"to_id,omitempty"`
}

// EventPublisher pushes registry events to interested listeners.
// Publishing is best-effort: the transfer history is the durable audit
// record, events only feed live subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event)
}

// Logger interface for event publishing
type eventLogger interface {
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// RedisEventPublisher publishes events to per-creator Redis channels,
// which the fanout service forwards to websocket subscribers
type RedisEventPublisher struct {
	client *rediscommon.Client
	log    eventLogger
}

// NewRedisEventPublisher creates a Redis-backed event publisher
func NewRedisEventPublisher(client *rediscommon.Client, log eventLogger) *RedisEventPublisher {
	return &RedisEventPublisher{
		client: client,
		log:    log,
	}
}

// Publish sends the event to registry:events:{creatorId}. Failures are
// logged, never propagated.
func (p *RedisEventPublisher) Publish(ctx context.Context, event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("failed to encode event", "event", event.Event, "asset_id", event.AssetID, "error", err)
		return
	}

	channel := fmt.Sprintf("registry:events:%s", event.CreatorID)
	if err := p.client.PublishEvent(ctx, channel, string(payload)); err != nil {
		p.log.Warn("failed to publish event", "channel", channel, "error", err)
		return
	}

	p.log.Debug("published event", "event", event.Event, "asset_id", event.AssetID)
}

// NopEventPublisher discards events; used when Redis is disabled
type NopEventPublisher struct{}

// Publish discards the event
func (NopEventPublisher) Publish(ctx context.Context, event *Event) {}

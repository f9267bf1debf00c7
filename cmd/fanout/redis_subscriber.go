package main

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisSubscriber listens to Redis PubSub and forwards asset events to the Hub
type RedisSubscriber struct {
	redis *redis.Client
	hub   *Hub
}

// NewRedisSubscriber creates a new RedisSubscriber instance
func NewRedisSubscriber(redisClient *redis.Client, hub *Hub) *RedisSubscriber {
	return &RedisSubscriber{
		redis: redisClient,
		hub:   hub,
	}
}

// Start begins listening to Redis PubSub channels.
// Subscribes to pattern registry:events:* so events for every creator
// arrive on a single subscription.
func (s *RedisSubscriber) Start(ctx context.Context) {
	pubsub := s.redis.PSubscribe(ctx, "registry:events:*")
	defer pubsub.Close()

	log.Println("Redis subscriber started, listening to: registry:events:*")

	// Wait for confirmation that subscription was successful
	_, err := pubsub.Receive(ctx)
	if err != nil {
		log.Fatalf("Failed to subscribe to Redis: %v", err)
	}

	log.Println("Redis subscription confirmed")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Println("Redis subscriber stopping")
			return

		case msg := <-ch:
			if msg == nil {
				continue
			}

			// Channel format: registry:events:{creatorID}
			creatorID := extractCreatorFromChannel(msg.Channel)
			if creatorID == "" {
				log.Printf("Invalid channel format: %s", msg.Channel)
				continue
			}

			log.Printf("Received event for creator_id=%s, size=%d bytes", creatorID, len(msg.Payload))

			s.hub.broadcast <- &Message{
				CreatorID: creatorID,
				Data:      []byte(msg.Payload),
			}
		}
	}
}

// extractCreatorFromChannel extracts the creator ID from a channel name
// Example: "registry:events:6c5e3f0a-..." → "6c5e3f0a-..."
func extractCreatorFromChannel(channel string) string {
	parts := strings.Split(channel, ":")
	if len(parts) != 3 || parts[0] != "registry" || parts[1] != "events" {
		return ""
	}
	return parts[2]
}

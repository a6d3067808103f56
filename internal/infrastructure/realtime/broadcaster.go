package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// =====================================================
// EVENT NAMES
// =====================================================
const (
	EventCommissionUpdated = "commission_updated"
	EventNewMessage        = "new_message"
	EventMessageDeleted    = "message_deleted"
)

// Channel all events are published on. Connected gateways subscribe here
// and fan out to open admin/client sessions; payloads are advisory only,
// consumers re-fetch on receipt.
const channel = "realtime:events"

// Event is the wire format published to the channel
type Event struct {
	Name    string                 `json:"name"`
	Payload map[string]interface{} `json:"payload"`
}

// Broadcaster pushes named events to connected sessions.
// Delivery is at-most-once and best-effort.
type Broadcaster interface {
	Broadcast(ctx context.Context, name string, payload map[string]interface{}) error
}

// =====================================================
// REDIS PUB/SUB IMPLEMENTATION
// =====================================================

type redisBroadcaster struct {
	client *redis.Client
}

// NewRedisBroadcaster creates a broadcaster backed by Redis pub/sub
func NewRedisBroadcaster(client *redis.Client) Broadcaster {
	return &redisBroadcaster{client: client}
}

func (b *redisBroadcaster) Broadcast(ctx context.Context, name string, payload map[string]interface{}) error {
	event := Event{Name: name, Payload: payload}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().
		Str("event", name).
		Msg("[Realtime] Event published")

	return nil
}

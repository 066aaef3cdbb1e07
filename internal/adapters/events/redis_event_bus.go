package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/providers"
	redisclient "github.com/edutour/discovery/backend/internal/infrastructure/clients/redis"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
)

const subscriberBuffer = 16

// topic is one Redis subscription fanned out to local subscribers
type topic struct {
	name        string
	pubsub      *redis.PubSub
	subscribers map[chan *entities.CatalogEvent]struct{}
}

// RedisEventBus implements the EventBus interface using Redis Pub/Sub
type RedisEventBus struct {
	client *redisclient.Client

	mu     sync.Mutex
	topics map[string]*topic
	closed bool
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	return &RedisEventBus{
		client: client,
		topics: make(map[string]*topic),
	}
}

// Publish broadcasts a catalog event to every subscriber of channel
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error {
	if event == nil {
		return errors.New("cannot publish nil catalog event")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	receivers, err := b.client.Client().Publish(ctx, channel, data).Result()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("channel", channel).
		Str("event_id", event.ID).
		Str("event_type", string(event.EventType)).
		Int64("receivers", receivers).
		Msg("Published catalog event")
	return nil
}

// Subscribe returns a channel of events published on channel. The returned
// channel is closed once ctx is done or the bus is closed.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errors.New("event bus is closed")
	}

	t, ok := b.topics[channel]
	if !ok {
		pubsub := b.client.Client().Subscribe(context.Background(), channel)
		// confirmation must arrive before returning or early publishes are lost
		if _, err := pubsub.Receive(ctx); err != nil {
			_ = pubsub.Close()
			return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
		}
		t = &topic{
			name:        channel,
			pubsub:      pubsub,
			subscribers: make(map[chan *entities.CatalogEvent]struct{}),
		}
		b.topics[channel] = t
		go b.fanOut(t)
	}

	events := make(chan *entities.CatalogEvent, subscriberBuffer)
	t.subscribers[events] = struct{}{}

	observability.GetLogger().Info().
		Str("channel", channel).
		Int("subscribers", len(t.subscribers)).
		Msg("Subscribed to channel")

	go func() {
		<-ctx.Done()
		b.unsubscribe(t, events)
	}()

	return events, nil
}

// fanOut delivers messages from Redis until the subscription is closed.
// Slow subscribers miss events rather than blocking the others.
func (b *RedisEventBus) fanOut(t *topic) {
	logger := observability.GetLogger().With().Str("channel", t.name).Logger()

	for msg := range t.pubsub.Channel() {
		var event entities.CatalogEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			logger.Warn().Err(err).Msg("Failed to unmarshal event")
			continue
		}

		b.mu.Lock()
		for subscriber := range t.subscribers {
			select {
			case subscriber <- &event:
			default:
				logger.Warn().Str("event_id", event.ID).Msg("Subscriber channel full, skipping event")
			}
		}
		b.mu.Unlock()
	}

	b.mu.Lock()
	b.dropTopic(t)
	b.mu.Unlock()
}

func (b *RedisEventBus) unsubscribe(t *topic, events chan *entities.CatalogEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := t.subscribers[events]; !ok {
		return
	}
	delete(t.subscribers, events)
	close(events)

	if len(t.subscribers) == 0 {
		b.dropTopic(t)
	}
}

// dropTopic closes every subscriber of t and its Redis subscription. The
// caller must hold b.mu. A topic that has already been replaced under the
// same name is left alone.
func (b *RedisEventBus) dropTopic(t *topic) error {
	for subscriber := range t.subscribers {
		close(subscriber)
	}
	t.subscribers = map[chan *entities.CatalogEvent]struct{}{}

	if current, ok := b.topics[t.name]; ok && current == t {
		delete(b.topics, t.name)
	}
	if err := t.pubsub.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("failed to close subscription %s: %w", t.name, err)
	}
	return nil
}

// Close closes every subscription. Further Subscribe calls fail.
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true

	var errs []error
	for _, t := range b.topics {
		if err := b.dropTopic(t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
